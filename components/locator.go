package components

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"
)

// EntityLocator follows the Position of an entity, so a look-at path can keep
// a moving body in frame. Once the entity is removed it reports the last
// position it saw.
type EntityLocator struct {
	world  *ecs.World
	posMap *ecs.Map1[Position]
	entity ecs.Entity
	last   r3.Vec
}

// NewEntityLocator creates a locator for entity.
func NewEntityLocator(w *ecs.World, entity ecs.Entity) *EntityLocator {
	l := &EntityLocator{
		world:  w,
		posMap: ecs.NewMap1[Position](w),
		entity: entity,
	}
	l.Position()
	return l
}

// Entity returns the tracked entity.
func (l *EntityLocator) Entity() ecs.Entity {
	return l.entity
}

// Position implements spline.Locator.
func (l *EntityLocator) Position() r3.Vec {
	if l.world.Alive(l.entity) && l.posMap.HasAll(l.entity) {
		l.last = l.posMap.Get(l.entity).Vec()
	}
	return l.last
}
