// Package components defines ECS components for the camera scene.
package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/spline"
	"github.com/pthm-cable/dolly/trigger"
)

// Position represents an entity's world position.
type Position struct {
	X, Y, Z float64
}

// Vec returns the position as a vector.
func (p Position) Vec() r3.Vec {
	return r3.Vec(p)
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	X, Y, Z float64
}

// Vec returns the velocity as a vector.
func (v Velocity) Vec() r3.Vec {
	return r3.Vec(v)
}

// Body is a named scene object that trigger volumes can watch.
type Body struct {
	Name   string
	Radius float64
}

// Path binds an authored curve to the animator that plays it.
type Path struct {
	Name     string
	Curve    *spline.Curve
	Animator *animator.Animator
}

// Volume is an axis-aligned trigger box. A body is inside when its sphere
// overlaps Box.
type Volume struct {
	Name     string
	PathName string
	Box      r3.Box
	Trigger  *trigger.Trigger[ecs.Entity]

	// Inside holds the bodies that overlapped on the previous update.
	Inside map[ecs.Entity]bool
}

// NewVolume creates a volume with an empty inside set.
func NewVolume(name, pathName string, box r3.Box, t *trigger.Trigger[ecs.Entity]) Volume {
	return Volume{
		Name:     name,
		PathName: pathName,
		Box:      box,
		Trigger:  t,
		Inside:   make(map[ecs.Entity]bool),
	}
}
