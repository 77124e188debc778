// Package game assembles the camera scene from configuration and steps it:
// moving bodies, trigger volumes and the path animators that drive the
// camera rig.
package game

import (
	"fmt"
	"log/slog"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/camera"
	"github.com/pthm-cable/dolly/components"
	"github.com/pthm-cable/dolly/config"
	"github.com/pthm-cable/dolly/systems"
	"github.com/pthm-cable/dolly/telemetry"
)

// Options holds run settings that are not part of the scene.
type Options struct {
	OutputDir      string // CSV output directory (empty = off)
	StepsPerUpdate int    // Ticks per Update call (0 = config value)
	LogEvents      bool   // Log playback events via slog
}

type namedEntity struct {
	name   string
	entity ecs.Entity
}

// Game holds the complete scene state.
type Game struct {
	cfg   *config.Config
	world *ecs.World
	rig   *camera.Rig

	// Entity mappers
	bodyMapper *ecs.Map3[components.Position, components.Velocity, components.Body]
	pathMap    *ecs.Map1[components.Path]
	volumeMap  *ecs.Map1[components.Volume]
	posMap     *ecs.Map1[components.Position]
	bodyMap    *ecs.Map1[components.Body]

	// Config order
	paths   []namedEntity
	bodies  []namedEntity
	volumes []namedEntity

	// Systems
	motion    *systems.MotionSystem
	triggers  *systems.TriggerSystem
	animation *systems.AnimationSystem

	// Telemetry
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	events        []telemetry.Event
	logEvents     bool

	// State
	tick           int32
	simTime        float64
	paused         bool
	stepsPerUpdate int
}

// NewGame builds the scene described by cfg.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	steps := opts.StepsPerUpdate
	if steps <= 0 {
		steps = cfg.Simulation.StepsPerUpdate
	}

	g := &Game{
		perfCollector:  telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager:  om,
		logEvents:      opts.LogEvents,
		stepsPerUpdate: max(steps, 1),
	}
	started, err := g.build(cfg)
	if err != nil {
		om.Close()
		return nil, err
	}
	g.recordStarted(started)
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	return g, nil
}

// build replaces the world with the scene from cfg and returns the paths
// that autoplay.
func (g *Game) build(cfg *config.Config) ([]string, error) {
	world := ecs.NewWorld()

	c := cfg.Camera
	rig := camera.New(c.Position.R3(), c.FOV, c.MinFOV, c.MaxFOV)
	rig.LookAt(c.LookAt.R3())
	rig.Home = rig.Pose()

	g.cfg = cfg
	g.world = world
	g.rig = rig
	g.bodyMapper = ecs.NewMap3[components.Position, components.Velocity, components.Body](world)
	g.pathMap = ecs.NewMap1[components.Path](world)
	g.volumeMap = ecs.NewMap1[components.Volume](world)
	g.posMap = ecs.NewMap1[components.Position](world)
	g.bodyMap = ecs.NewMap1[components.Body](world)
	g.paths, g.bodies, g.volumes = nil, nil, nil

	g.motion = systems.NewMotionSystem(world)
	g.triggers = systems.NewTriggerSystem(world)
	g.animation = systems.NewAnimationSystem(world)

	g.spawnBodies()
	started, err := g.spawnPaths()
	if err != nil {
		return nil, err
	}
	g.spawnTriggers()
	return started, nil
}

// Config returns the configuration the scene was built from.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// Rig returns the camera rig.
func (g *Game) Rig() *camera.Rig {
	return g.rig
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// SimTime returns the simulated seconds since start.
func (g *Game) SimTime() float64 {
	return g.simTime
}

// Paused reports whether Update is suspended.
func (g *Game) Paused() bool {
	return g.paused
}

// SetPaused suspends or resumes Update.
func (g *Game) SetPaused(paused bool) {
	g.paused = paused
}

// StepsPerUpdate returns the number of ticks run per Update.
func (g *Game) StepsPerUpdate() int {
	return g.stepsPerUpdate
}

// SetStepsPerUpdate sets the number of ticks run per Update, at least 1.
func (g *Game) SetStepsPerUpdate(n int) {
	g.stepsPerUpdate = max(n, 1)
}

// Events returns every playback event recorded so far.
func (g *Game) Events() []telemetry.Event {
	return g.events
}

// PerfStats returns tick timing over the current window.
func (g *Game) PerfStats() telemetry.PerfStats {
	return g.perfCollector.Stats()
}

// PathNames returns the path names in config order.
func (g *Game) PathNames() []string {
	names := make([]string, len(g.paths))
	for i, p := range g.paths {
		names[i] = p.name
	}
	return names
}

// Path returns the named path component, or nil.
func (g *Game) Path(name string) *components.Path {
	for _, p := range g.paths {
		if p.name == name {
			return g.pathMap.Get(p.entity)
		}
	}
	return nil
}

// Playing returns the names of the paths that are playing.
func (g *Game) Playing() []string {
	var names []string
	for _, p := range g.paths {
		if path := g.pathMap.Get(p.entity); path.Animator.Playing() {
			names = append(names, p.name)
		}
	}
	return names
}

// BodyView is a read-only snapshot of a body.
type BodyView struct {
	Name     string
	Position r3.Vec
	Radius   float64
}

// Bodies returns the bodies in config order.
func (g *Game) Bodies() []BodyView {
	out := make([]BodyView, 0, len(g.bodies))
	for _, b := range g.bodies {
		if !g.world.Alive(b.entity) {
			continue
		}
		body := g.bodyMap.Get(b.entity)
		out = append(out, BodyView{Name: body.Name, Position: g.posMap.Get(b.entity).Vec(), Radius: body.Radius})
	}
	return out
}

// Body returns the named body's components, or nils.
func (g *Game) Body(name string) (*components.Position, *components.Body) {
	for _, b := range g.bodies {
		if b.name == name && g.world.Alive(b.entity) {
			return g.posMap.Get(b.entity), g.bodyMap.Get(b.entity)
		}
	}
	return nil, nil
}

// VolumeView is a read-only snapshot of a trigger volume.
type VolumeView struct {
	Name    string
	Path    string
	Watch   string // name of the watched body, empty once it is gone
	Box     r3.Box
	Latched bool
}

// Volumes returns the trigger volumes in config order.
func (g *Game) Volumes() []VolumeView {
	out := make([]VolumeView, 0, len(g.volumes))
	for _, v := range g.volumes {
		vol := g.volumeMap.Get(v.entity)
		view := VolumeView{Name: vol.Name, Path: vol.PathName, Box: vol.Box}
		if vol.Trigger != nil {
			view.Latched = vol.Trigger.Latched()
			if g.world.Alive(vol.Trigger.Watched) && g.bodyMap.HasAll(vol.Trigger.Watched) {
				view.Watch = g.bodyMap.Get(vol.Trigger.Watched).Name
			}
		}
		out = append(out, view)
	}
	return out
}

// Close flushes and closes telemetry output.
func (g *Game) Close() error {
	if err := g.outputManager.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}
	return nil
}
