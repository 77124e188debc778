package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/components"
	"github.com/pthm-cable/dolly/config"
	"github.com/pthm-cable/dolly/geom"
	"github.com/pthm-cable/dolly/spline"
	"github.com/pthm-cable/dolly/trigger"
)

// BuildCurve creates the curve for an authored path. target is the look-at
// locator used in target view mode and may be nil otherwise.
func BuildCurve(spec config.PathSpec, pc config.PathConfig, target spline.Locator) (*spline.Curve, error) {
	mode, err := spline.ParseViewMode(spec.View)
	if err != nil {
		return nil, err
	}
	c := &spline.Curve{
		Loop:           spec.Loop,
		View:           spline.View{Mode: mode, Target: target},
		TangentEpsilon: pc.TangentEpsilon,
		ArcSamples:     pc.ArcSamples,
	}
	for i, ps := range spec.Points {
		p := spline.NewControlPoint(ps.Position.R3())
		p.Offset = ps.Offset.R3()
		p.Rotation = geom.Euler(ps.Rotation[0], ps.Rotation[1], ps.Rotation[2])
		p.FOV = pc.FOV
		if ps.FOV > 0 {
			p.FOV = ps.FOV
		}
		if p.Easing, err = ps.BuildEasing(); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		if err := c.Add(p); err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
	}
	return c, nil
}

// spawnBodies creates one entity per configured body.
func (g *Game) spawnBodies() {
	for _, bs := range g.cfg.Bodies {
		pos := components.Position(bs.Position.R3())
		vel := components.Velocity(bs.Velocity.R3())
		body := components.Body{Name: bs.Name, Radius: bs.Radius}
		e := g.bodyMapper.NewEntity(&pos, &vel, &body)
		g.bodies = append(g.bodies, namedEntity{name: bs.Name, entity: e})
	}
}

// spawnPaths creates the path entities, then links chained paths. It returns
// the names of the paths that start playing.
func (g *Game) spawnPaths() ([]string, error) {
	anims := make([]*animator.Animator, len(g.cfg.Paths))
	for i, spec := range g.cfg.Paths {
		curve, err := BuildCurve(spec, g.cfg.Path, g.lookAtTarget(spec))
		if err != nil {
			return nil, fmt.Errorf("building path %q: %w", spec.Name, err)
		}
		anims[i] = animator.New(curve, g.rig, g.cfg.Derived.Playback[i].Options())

		e := g.pathMap.NewEntity(&components.Path{Name: spec.Name, Curve: curve, Animator: anims[i]})
		g.paths = append(g.paths, namedEntity{name: spec.Name, entity: e})
	}

	var started []string
	for i, spec := range g.cfg.Paths {
		if spec.Next != "" {
			anims[i].Next = anims[g.cfg.Derived.PathIndex[spec.Next]]
		}
		if anims[i].Playing() {
			started = append(started, spec.Name)
		}
	}
	return started, nil
}

// lookAtTarget resolves a path's look-at locator. A body wins over a fixed point.
func (g *Game) lookAtTarget(spec config.PathSpec) spline.Locator {
	if spec.LookAtBody != "" {
		if e, ok := g.bodyEntity(spec.LookAtBody); ok {
			return components.NewEntityLocator(g.world, e)
		}
	}
	if spec.LookAt != nil {
		return spline.Point(spec.LookAt.R3())
	}
	return nil
}

// spawnTriggers creates one volume entity per configured trigger.
func (g *Game) spawnTriggers() {
	for _, ts := range g.cfg.Triggers {
		watched, ok := g.bodyEntity(ts.Watch)
		path := g.Path(ts.Path)
		if !ok || path == nil {
			continue
		}
		box := r3.Box{Min: ts.Min.R3(), Max: ts.Max.R3()}
		vol := components.NewVolume(ts.Name, ts.Path, box, trigger.New[ecs.Entity](watched, g.rig, path.Animator))
		e := g.volumeMap.NewEntity(&vol)
		g.volumes = append(g.volumes, namedEntity{name: ts.Name, entity: e})
	}
}

func (g *Game) bodyEntity(name string) (ecs.Entity, bool) {
	for _, b := range g.bodies {
		if b.name == name {
			return b.entity, true
		}
	}
	return ecs.Entity{}, false
}
