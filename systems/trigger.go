package systems

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dolly/components"
	"github.com/pthm-cable/dolly/telemetry"
)

type bodyRef struct {
	entity ecs.Entity
	name   string
	pos    r3.Vec
	radius float64
}

// TriggerSystem detects bodies entering trigger volumes and drives the
// volumes' triggers. Only entry edges reach a trigger; a body that stays
// inside a volume is reported once.
type TriggerSystem struct {
	bodies  ecs.Filter2[components.Position, components.Body]
	volumes ecs.Filter1[components.Volume]

	refs   []bodyRef
	events []telemetry.Event
}

// NewTriggerSystem creates a new trigger system.
func NewTriggerSystem(w *ecs.World) *TriggerSystem {
	return &TriggerSystem{
		bodies:  *ecs.NewFilter2[components.Position, components.Body](w),
		volumes: *ecs.NewFilter1[components.Volume](w),
	}
}

// Update checks every volume against every body, then lets each trigger
// restore its camera if its path has stopped. The returned events are valid
// until the next call.
func (s *TriggerSystem) Update(w *ecs.World) []telemetry.Event {
	s.events = s.events[:0]

	s.refs = s.refs[:0]
	bq := s.bodies.Query()
	for bq.Next() {
		pos, body := bq.Get()
		s.refs = append(s.refs, bodyRef{
			entity: bq.Entity(),
			name:   body.Name,
			pos:    pos.Vec(),
			radius: body.Radius,
		})
	}

	vq := s.volumes.Query()
	for vq.Next() {
		vol := vq.Get()
		for _, b := range s.refs {
			inside := Overlaps(vol.Box, b.pos, b.radius)
			if !inside {
				delete(vol.Inside, b.entity)
				continue
			}
			if vol.Inside[b.entity] {
				continue
			}
			vol.Inside[b.entity] = true
			if vol.Trigger != nil && vol.Trigger.Enter(b.entity) {
				s.events = append(s.events, telemetry.Event{
					Type:    telemetry.EventEnter,
					Path:    vol.PathName,
					Trigger: vol.Name,
					Detail:  b.name,
				})
			}
		}
		if vol.Trigger != nil && vol.Trigger.Tick() {
			s.events = append(s.events, telemetry.Event{
				Type:    telemetry.EventRestore,
				Path:    vol.PathName,
				Trigger: vol.Name,
			})
		}
	}
	return s.events
}

// Overlaps reports whether a sphere at center with the given radius touches box.
func Overlaps(box r3.Box, center r3.Vec, radius float64) bool {
	closest := r3.Vec{
		X: clamp(center.X, box.Min.X, box.Max.X),
		Y: clamp(center.Y, box.Min.Y, box.Max.Y),
		Z: clamp(center.Z, box.Min.Z, box.Max.Z),
	}
	return r3.Norm2(r3.Sub(center, closest)) <= radius*radius
}
