package spline

import "errors"

var (
	// ErrEmptyPath is returned when a curve with no control points is evaluated.
	ErrEmptyPath = errors.New("spline: path has no control points")

	// ErrDegenerateTangent is returned when the path tangent used by FollowPath
	// has zero length, as on a single-point path.
	ErrDegenerateTangent = errors.New("spline: path tangent has zero length")

	// ErrMissingLookAtTarget is returned by LookAtTarget views without a target.
	ErrMissingLookAtTarget = errors.New("spline: look-at view has no target")

	// ErrDetached is returned when a control point is not part of the queried curve.
	ErrDetached = errors.New("spline: control point is not on this curve")

	// ErrAttached is returned when adding a point that already belongs to a curve.
	ErrAttached = errors.New("spline: control point already belongs to a curve")

	// ErrIndex is returned for out-of-range point indices.
	ErrIndex = errors.New("spline: point index out of range")

	// ErrInvalidEasing is returned for malformed keyframes or unknown presets.
	ErrInvalidEasing = errors.New("spline: invalid easing curve")
)
