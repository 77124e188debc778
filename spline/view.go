package spline

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
)

// ViewMode selects how orientation is derived along a path.
type ViewMode uint8

const (
	UserControlled ViewMode = iota // Interpolate the points' own rotations
	LookAtTarget                   // Always face View.Target
	FollowPath                     // Face along the path tangent
)

// String returns the config name of the mode.
func (m ViewMode) String() string {
	switch m {
	case UserControlled:
		return "user"
	case LookAtTarget:
		return "target"
	case FollowPath:
		return "follow"
	default:
		return fmt.Sprintf("ViewMode(%d)", m)
	}
}

// ParseViewMode parses a config name produced by ViewMode.String.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "", "user":
		return UserControlled, nil
	case "target":
		return LookAtTarget, nil
	case "follow":
		return FollowPath, nil
	}
	return 0, fmt.Errorf("spline: unknown view mode %q", s)
}

// Locator is anything with a world position, such as a scene entity the
// camera should keep in frame.
type Locator interface {
	Position() r3.Vec
}

// Point is a fixed Locator.
type Point r3.Vec

// Position implements Locator.
func (p Point) Position() r3.Vec {
	return r3.Vec(p)
}

// View is the orientation strategy of a curve. Target is only consulted in
// LookAtTarget mode.
type View struct {
	Mode   ViewMode
	Target Locator
}

// Orientation is an evaluated view direction. For UserControlled it carries a
// Rotation; for the other modes it carries the world point to look at from
// the evaluated position From.
type Orientation struct {
	Mode     ViewMode
	From     r3.Vec
	Rotation r3.Rotation
	LookAt   r3.Vec
}

// Resolve returns the orientation as a rotation. It reports false when a
// look-at orientation has its target at the evaluated position.
func (o Orientation) Resolve() (r3.Rotation, bool) {
	if o.Mode == UserControlled {
		return o.Rotation, true
	}
	return geom.LookRotation(r3.Sub(o.LookAt, o.From), geom.Up)
}
