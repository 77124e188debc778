package spline

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
)

// DefaultFOV is the field of view, in degrees, of a freshly created point.
const DefaultFOV = 60.0

// ControlPoint is a single waypoint of a Curve.
//
// Offset is the tangent handle relative to Position: the curve leaves the
// point towards Position+Offset and arrives at it from Position-Offset.
// A point is owned by at most one Curve; membership is tracked by the curve
// through an id, so a point never points back at its curve.
type ControlPoint struct {
	Position r3.Vec
	Offset   r3.Vec
	Rotation r3.Rotation
	FOV      float64

	// Easing reshapes the local fraction of the segment that starts at this
	// point. Nil means linear.
	Easing *Easing

	id uint64 // assigned by the owning curve, 0 while detached
}

// NewControlPoint creates a point at pos with identity rotation, the default
// field of view and linear easing.
func NewControlPoint(pos r3.Vec) *ControlPoint {
	return &ControlPoint{
		Position: pos,
		Rotation: geom.Identity,
		FOV:      DefaultFOV,
		Easing:   Linear(),
	}
}

// ForwardHandle returns the world-space handle of the segment leaving this point.
func (p *ControlPoint) ForwardHandle() r3.Vec {
	return r3.Add(p.Position, p.Offset)
}

// BackwardHandle returns the world-space handle of the segment arriving at this point.
func (p *ControlPoint) BackwardHandle() r3.Vec {
	return r3.Sub(p.Position, p.Offset)
}

// EasingOrDefault returns the point's easing, or linear easing when unset.
func (p *ControlPoint) EasingOrDefault() *Easing {
	if p.Easing == nil {
		return linear
	}
	return p.Easing
}

// Attached reports whether the point currently belongs to a curve.
func (p *ControlPoint) Attached() bool {
	return p.id != 0
}
