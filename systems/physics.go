// Package systems contains ECS systems for the camera scene.
package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/components"
)

// MotionSystem moves bodies along their velocity.
type MotionSystem struct {
	filter ecs.Filter2[components.Position, components.Velocity]
}

// NewMotionSystem creates a new motion system.
func NewMotionSystem(w *ecs.World) *MotionSystem {
	return &MotionSystem{
		filter: *ecs.NewFilter2[components.Position, components.Velocity](w),
	}
}

// Update advances every body by dt seconds.
func (s *MotionSystem) Update(w *ecs.World, dt float64) {
	query := s.filter.Query()
	for query.Next() {
		pos, vel := query.Get()
		*pos = components.Position(r3.Add(pos.Vec(), r3.Scale(dt, vel.Vec())))
	}
}
