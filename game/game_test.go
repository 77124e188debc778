package game

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/dolly/animator"
	"github.com/pthm-cable/dolly/config"
	"github.com/pthm-cable/dolly/geom"
	"github.com/pthm-cable/dolly/spline"
	"github.com/pthm-cable/dolly/telemetry"
)

func newDemo(t *testing.T, opts Options) *Game {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	g, err := NewGame(cfg, opts)
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func runFor(g *Game, seconds float64) {
	ticks := int(math.Round(seconds / g.Config().Simulation.DT))
	for i := 0; i < ticks; i++ {
		g.UpdateHeadless()
	}
}

func eventTypes(events []telemetry.Event) []telemetry.EventType {
	types := make([]telemetry.EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	return types
}

func TestNewGameBuildsDemoScene(t *testing.T) {
	g := newDemo(t, Options{})

	assert.Equal(t, []string{"intro", "flyby", "reveal"}, g.PathNames())
	assert.Equal(t, []string{"intro"}, g.Playing())
	require.Len(t, g.Bodies(), 1)
	assert.Equal(t, "hero", g.Bodies()[0].Name)
	require.Len(t, g.Volumes(), 1)
	assert.Equal(t, "reveal", g.Volumes()[0].Path)
	assert.False(t, g.Volumes()[0].Latched)
	assert.Equal(t, "hero", g.Volumes()[0].Watch)

	require.Len(t, g.Events(), 1)
	assert.Equal(t, telemetry.EventPlay, g.Events()[0].Type)
	assert.Equal(t, "intro", g.Events()[0].Path)

	intro := g.Path("intro")
	require.NotNil(t, intro)
	assert.Same(t, g.Path("flyby").Animator, intro.Animator.Next)
	assert.Nil(t, g.Path("missing"))
}

func TestDemoSceneRestoresCameraAfterReveal(t *testing.T) {
	g := newDemo(t, Options{})
	runFor(g, 16)

	assert.Equal(t, []telemetry.EventType{
		telemetry.EventPlay,
		telemetry.EventFinish,
		telemetry.EventChain,
		telemetry.EventFinish,
		telemetry.EventEnter,
		telemetry.EventFinish,
		telemetry.EventRestore,
	}, eventTypes(g.Events()))

	var enter, restore telemetry.Event
	for _, e := range g.Events() {
		switch e.Type {
		case telemetry.EventEnter:
			enter = e
		case telemetry.EventRestore:
			restore = e
		}
	}
	assert.Equal(t, "gate", enter.Trigger)
	assert.Equal(t, "hero", enter.Detail)
	assert.InDelta(t, 9.375*60, float64(enter.Tick), 2)
	assert.InDelta(t, float64(enter.Tick)+5*60, float64(restore.Tick), 2)

	// The pose saved on entry is where the flyby left the camera.
	rig := g.Rig()
	assert.InDelta(t, 8, rig.Position.X, 1e-6)
	assert.InDelta(t, 4, rig.Position.Y, 1e-6)
	assert.InDelta(t, 14, rig.Position.Z, 1e-6)
	assert.InDelta(t, 45, rig.FOV, 1e-6)

	assert.Empty(t, g.Playing())
	assert.True(t, g.Volumes()[0].Latched)
	assert.InDelta(t, 16, g.SimTime(), 1e-6)
}

func TestUpdateRespectsPauseAndSteps(t *testing.T) {
	g := newDemo(t, Options{StepsPerUpdate: 3})
	assert.Equal(t, 3, g.StepsPerUpdate())

	g.Update()
	assert.Equal(t, int32(3), g.Tick())

	g.SetPaused(true)
	g.Update()
	assert.Equal(t, int32(3), g.Tick(), "paused update is a no-op")

	g.UpdateHeadless()
	assert.Equal(t, int32(6), g.Tick(), "headless update ignores pause")

	g.SetStepsPerUpdate(0)
	assert.Equal(t, 1, g.StepsPerUpdate())
}

func TestPreviewDoesNotTouchPlayback(t *testing.T) {
	g := newDemo(t, Options{})
	runFor(g, 1)

	intro := g.Path("intro").Animator
	before := intro.Time()

	s, err := g.Preview("intro", 0)
	require.NoError(t, err)
	assert.InDelta(t, -20, s.Position.X, 1e-9)
	assert.InDelta(t, 70, s.FOV, 1e-9)
	assert.True(t, geom.ApproxEqualRotation(geom.Euler(25, 30, 0), s.Rotation, 1e-9))

	end, err := g.Preview("intro", 1)
	require.NoError(t, err)
	assert.InDelta(t, 18, end.Position.X, 1e-9)

	assert.Equal(t, before, intro.Time())
	assert.Equal(t, animator.Playing, intro.State())

	_, err = g.Preview("nowhere", 0.5)
	assert.ErrorIs(t, err, ErrUnknownPath)
	assert.Nil(t, g.PreviewGizmos("nowhere", 0.5))
	assert.NotEmpty(t, g.PreviewGizmos("intro", 0.5))
}

func TestApplyPreviewMovesRig(t *testing.T) {
	g := newDemo(t, Options{})

	require.NoError(t, g.ApplyPreview("reveal", 1))
	assert.InDelta(t, 6, g.Rig().Position.X, 1e-9)
	assert.InDelta(t, 6, g.Rig().Position.Z, 1e-9)
	assert.InDelta(t, 40, g.Rig().FOV, 1e-9)

	assert.ErrorIs(t, g.ApplyPreview("nowhere", 0), ErrUnknownPath)
}

func TestPlayAndStop(t *testing.T) {
	g := newDemo(t, Options{})

	require.NoError(t, g.Play("reveal"))
	require.NoError(t, g.Play("reveal"))
	assert.Contains(t, g.Playing(), "reveal")

	plays := 0
	for _, e := range g.Events() {
		if e.Type == telemetry.EventPlay && e.Path == "reveal" {
			plays++
		}
	}
	assert.Equal(t, 1, plays, "playing an already playing path is not a new start")

	runFor(g, 1)
	require.NoError(t, g.Stop("reveal"))
	assert.NotContains(t, g.Playing(), "reveal")
	assert.Zero(t, g.Path("reveal").Animator.Time())

	assert.ErrorIs(t, g.Play("nowhere"), ErrUnknownPath)
	assert.ErrorIs(t, g.Stop("nowhere"), ErrUnknownPath)
}

func TestBuildCurve(t *testing.T) {
	pc := config.PathConfig{FOV: 55, TangentEpsilon: 0.01, ArcSamples: 16}
	spec := config.PathSpec{
		Name: "orbit",
		Loop: true,
		View: "target",
		Points: []config.PointSpec{
			{Position: config.Vec3{5, 0, 0}, Rotation: config.Vec3{0, 90, 0}},
			{Position: config.Vec3{0, 0, 5}, FOV: 30, Easing: "in-quad"},
			{Position: config.Vec3{-5, 0, 0}},
		},
	}
	c, err := BuildCurve(spec, pc, spline.Point(r3.Vec{}))
	require.NoError(t, err)

	assert.True(t, c.Loop)
	assert.Equal(t, spline.LookAtTarget, c.View.Mode)
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 3, c.SegmentCount())
	assert.Equal(t, 55.0, c.Point(0).FOV, "path default")
	assert.Equal(t, 30.0, c.Point(1).FOV)
	assert.Equal(t, "in-quad", c.Point(1).Easing.Name())
	assert.Equal(t, "linear", c.Point(2).Easing.Name())
	assert.True(t, geom.ApproxEqualRotation(geom.Euler(0, 90, 0), c.Point(0).Rotation, 1e-12))

	spec.Points[2].Easing = "wobble"
	_, err = BuildCurve(spec, pc, nil)
	assert.ErrorIs(t, err, spline.ErrInvalidEasing)

	spec.View = "sideways"
	_, err = BuildCurve(spec, pc, nil)
	assert.Error(t, err)
}

func TestReload(t *testing.T) {
	g := newDemo(t, Options{})
	runFor(g, 1)
	tick := g.Tick()

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
paths:
  - name: sweep
    autoplay: true
    mode: loop
    duration: 2
    constant_speed: true
    points:
      - position: [0, 0, 0]
      - position: [4, 0, 0]
bodies: []
triggers: []
`), 0644))
	require.NoError(t, g.ReloadFrom(path))

	assert.Equal(t, tick, g.Tick(), "ticks carry over")
	assert.Equal(t, []string{"sweep"}, g.PathNames())
	assert.Empty(t, g.Bodies())
	assert.Empty(t, g.Volumes())

	n := len(g.Events())
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, telemetry.EventReload, g.Events()[n-2].Type)
	assert.Equal(t, telemetry.EventPlay, g.Events()[n-1].Type)
	assert.Equal(t, "sweep", g.Events()[n-1].Path)

	runFor(g, 0.5)
	assert.InDelta(t, 1, g.Rig().Position.X, 0.05, "a quarter of the way at constant speed")
}

func TestReloadFailureKeepsScene(t *testing.T) {
	g := newDemo(t, Options{})
	events := len(g.Events())

	bad, err := config.Load("")
	require.NoError(t, err)
	bad.Paths[0].Points[0].Easing = "wobble"

	err = g.Reload(bad)
	require.Error(t, err)
	assert.True(t, errors.Is(err, spline.ErrInvalidEasing))
	assert.Equal(t, []string{"intro", "flyby", "reveal"}, g.PathNames())
	assert.Len(t, g.Events(), events)

	assert.ErrorContains(t, g.ReloadFrom(filepath.Join(t.TempDir(), "missing.yaml")), "reading config file")
}

func TestReloadIfChanged(t *testing.T) {
	g := newDemo(t, Options{})
	assert.False(t, g.ReloadIfChanged(nil))

	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte("playback: {duration: 3}\n"), 0644))
	w, err := config.Watch(path)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte("playback: {duration: 2}\n"), 0644))
	require.Eventually(t, func() bool { return g.ReloadIfChanged(w) }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, 2.0, g.Config().Playback.Duration)
}

func TestOutputFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	g := newDemo(t, Options{OutputDir: dir})
	runFor(g, 5)
	require.NoError(t, g.Close())

	for _, name := range []string{"samples.csv", "events.csv", "perf.csv", "config.yaml"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Positive(t, info.Size(), name)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "samples.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "tick,time,path,state"))
	assert.Contains(t, lines[1], "intro")
}
