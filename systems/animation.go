package systems

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/components"
	"github.com/pthm-cable/dolly/telemetry"
)

type pathRef struct {
	entity ecs.Entity
	path   *components.Path
}

// AnimationSystem ticks every path animator once per update.
type AnimationSystem struct {
	filter ecs.Filter1[components.Path]

	refs    []pathRef
	names   map[*animator.Animator]string
	lastErr map[ecs.Entity]string
	events  []telemetry.Event
}

// NewAnimationSystem creates a new animation system.
func NewAnimationSystem(w *ecs.World) *AnimationSystem {
	return &AnimationSystem{
		filter:  *ecs.NewFilter1[components.Path](w),
		names:   make(map[*animator.Animator]string),
		lastErr: make(map[ecs.Entity]string),
	}
}

// Update ticks all animators by dt and reports finishes, chains and new
// tick errors. A tick error is logged once until it changes or clears; it
// never stops the update. The returned events are valid until the next call.
func (s *AnimationSystem) Update(w *ecs.World, dt float64) []telemetry.Event {
	s.events = s.events[:0]

	// Collect first so chained successors can be named whatever the query order.
	s.refs = s.refs[:0]
	clear(s.names)
	query := s.filter.Query()
	for query.Next() {
		p := query.Get()
		s.refs = append(s.refs, pathRef{entity: query.Entity(), path: p})
		if p.Animator != nil {
			s.names[p.Animator] = p.Name
		}
	}

	for _, ref := range s.refs {
		anim := ref.path.Animator
		if anim == nil {
			continue
		}
		before := anim.State()
		next := anim.Next

		err := anim.Tick(dt)
		s.noteError(ref, err)

		if before != animator.Finished && anim.State() == animator.Finished {
			s.events = append(s.events, telemetry.Event{Type: telemetry.EventFinish, Path: ref.path.Name})
		}
		if next != nil && anim.Next == nil {
			s.events = append(s.events, telemetry.Event{
				Type:   telemetry.EventChain,
				Path:   ref.path.Name,
				Detail: s.names[next],
			})
		}
	}
	return s.events
}

func (s *AnimationSystem) noteError(ref pathRef, err error) {
	if err == nil {
		delete(s.lastErr, ref.entity)
		return
	}
	msg := err.Error()
	if s.lastErr[ref.entity] == msg {
		return
	}
	s.lastErr[ref.entity] = msg
	slog.Warn("path_tick_failed", "path", ref.path.Name, "error", err)
	s.events = append(s.events, telemetry.Event{
		Type:   telemetry.EventTickError,
		Path:   ref.path.Name,
		Detail: msg,
	})
}
