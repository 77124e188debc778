// Package camera provides a 3D camera rig that path animators and triggers drive.
package camera

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/geom"
	"github.com/pthm-cable/dolly/trigger"
)

// Rig is a free camera: a position, an orientation and a vertical field of view.
// It implements animator.Target and trigger.Camera.
type Rig struct {
	Position r3.Vec
	Rotation r3.Rotation

	// Vertical field of view in degrees
	FOV float64

	// FOV constraints
	MinFOV, MaxFOV float64

	// Home is the pose restored by Reset
	Home trigger.Pose
}

// New creates a rig at pos looking down +Z.
func New(pos r3.Vec, fov, minFOV, maxFOV float64) *Rig {
	r := &Rig{
		Position: pos,
		Rotation: geom.Identity,
		MinFOV:   minFOV,
		MaxFOV:   maxFOV,
	}
	r.SetFieldOfView(fov)
	r.Home = r.Pose()
	return r
}

// SetPosition moves the rig.
func (r *Rig) SetPosition(pos r3.Vec) {
	r.Position = pos
}

// SetFieldOfView sets the field of view, clamped to min/max.
func (r *Rig) SetFieldOfView(fov float64) {
	if r.MaxFOV > r.MinFOV {
		fov = clamp(fov, r.MinFOV, r.MaxFOV)
	}
	r.FOV = fov
}

// SetOrientation replaces the rig's rotation.
func (r *Rig) SetOrientation(rot r3.Rotation) {
	r.Rotation = geom.Normalize(rot)
}

// LookAt turns the rig to face point, keeping +Y up.
// The rotation is unchanged when point is the rig's own position.
func (r *Rig) LookAt(point r3.Vec) {
	if rot, ok := geom.LookRotation(r3.Sub(point, r.Position), geom.Up); ok {
		r.Rotation = rot
	}
}

// Forward returns the unit view direction.
func (r *Rig) Forward() r3.Vec {
	return r.Rotation.Rotate(geom.Forward)
}

// Up returns the unit up direction of the view.
func (r *Rig) Up() r3.Vec {
	return r.Rotation.Rotate(geom.Up)
}

// Right returns the unit right direction of the view.
func (r *Rig) Right() r3.Vec {
	return r.Rotation.Rotate(geom.Right)
}

// Target returns the point one unit in front of the rig.
func (r *Rig) Target() r3.Vec {
	return r3.Add(r.Position, r.Forward())
}

// Pose implements trigger.Camera.
func (r *Rig) Pose() trigger.Pose {
	return trigger.Pose{Position: r.Position, Rotation: r.Rotation, FOV: r.FOV}
}

// SetPose implements trigger.Camera.
func (r *Rig) SetPose(p trigger.Pose) {
	r.Position = p.Position
	r.Rotation = geom.Normalize(p.Rotation)
	r.SetFieldOfView(p.FOV)
}

// Pan moves the rig in its own frame: dx along Right, dy along Up, dz along Forward.
func (r *Rig) Pan(dx, dy, dz float64) {
	local := r3.Vec{X: dx, Y: dy, Z: dz}
	r.Position = r3.Add(r.Position, r.Rotation.Rotate(local))
}

// ZoomBy narrows the field of view by factor (2 halves it).
func (r *Rig) ZoomBy(factor float64) {
	if factor <= 0 {
		return
	}
	r.SetFieldOfView(r.FOV / factor)
}

// Reset returns the rig to its home pose.
func (r *Rig) Reset() {
	r.SetPose(r.Home)
}

// clamp restricts a value to a range.
func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
