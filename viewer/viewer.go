// Package viewer is the windowed front end: keyboard and mouse input, the
// 3D scene and the HUD panels.
package viewer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dolly/components"
	"github.com/pthm-cable/dolly/game"
	"github.com/pthm-cable/dolly/renderer"
	"github.com/pthm-cable/dolly/systems"
	"github.com/pthm-cable/dolly/telemetry"
	"github.com/pthm-cable/dolly/ui"
)

// Viewer draws a game and forwards input to it.
type Viewer struct {
	game *game.Game

	background *renderer.BackgroundRenderer
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	pathPanel  *ui.PathPanel
	registry   *systems.SystemRegistry
	perf       *telemetry.PerfCollector

	selected   int // index into the game's path names
	showGizmos bool
	showPerf   bool

	screenWidth, screenHeight int32
}

// New creates a viewer for g. The raylib window must already be open.
func New(g *game.Game) *Viewer {
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	registry := systems.NewSystemRegistry()
	return &Viewer{
		game:         g,
		background:   renderer.NewBackgroundRenderer(w, h, rl.Color{R: 24, G: 32, B: 48, A: 255}, rl.Color{R: 70, G: 80, B: 90, A: 255}),
		hud:          ui.NewHUD(),
		perfPanel:    ui.NewPerfPanel(w-220, 10, registry),
		pathPanel:    ui.NewPathPanel(10, 100, 260),
		registry:     registry,
		perf:         telemetry.NewPerfCollector(60),
		showGizmos:   true,
		screenWidth:  w,
		screenHeight: h,
	}
}

// SelectedPath returns the name of the path shown in the side panel.
func (v *Viewer) SelectedPath() string {
	names := v.game.PathNames()
	if len(names) == 0 {
		return ""
	}
	if v.selected >= len(names) {
		v.selected = 0
	}
	return names[v.selected]
}

// watchedBody returns the body watched by the first volume that starts path.
func (v *Viewer) watchedBody(path string) (*components.Position, *components.Body) {
	for _, vol := range v.game.Volumes() {
		if vol.Path == path && vol.Watch != "" {
			return v.game.Body(vol.Watch)
		}
	}
	return nil, nil
}

// Draw renders one frame.
func (v *Viewer) Draw() {
	v.perf.RecordFrame()
	g := v.game
	cfg := g.Config()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)
	v.background.Draw()

	rl.BeginMode3D(renderer.ToCamera3D(g.Rig()))
	rl.DrawGrid(40, 1)
	for _, name := range g.PathNames() {
		if p := g.Path(name); p != nil {
			renderer.DrawPath(p.Curve, cfg.Path.DrawSamples)
		}
	}
	if v.showGizmos {
		if name := v.SelectedPath(); name != "" {
			renderer.DrawLines(g.PreviewGizmos(name, g.Path(name).Animator.Time()))
		}
	}
	for _, vol := range g.Volumes() {
		renderer.DrawVolume(vol.Box, vol.Latched)
	}
	for _, b := range g.Bodies() {
		renderer.DrawBody(b.Position, b.Radius)
	}
	rl.EndMode3D()

	v.hud.Draw(ui.HUDData{
		Title:   "dolly",
		Tick:    g.Tick(),
		SimTime: g.SimTime(),
		Speed:   g.StepsPerUpdate(),
		FPS:     rl.GetFPS(),
		Paused:  g.Paused(),
		Playing: g.Playing(),
	})

	if name := v.SelectedPath(); name != "" {
		pos, body := v.watchedBody(name)
		v.pathPanel.Draw(g.Path(name), pos, body)
	}

	if v.showPerf {
		stats := g.PerfStats()
		stats.FPS = v.perf.Stats().FPS
		v.perfPanel.Draw(stats)
	}

	v.hud.DrawControls(v.screenHeight,
		"SPACE: Pause | < >: Speed | TAB: Path | P: Play | S: Stop | G: Gizmos | F: Perf | Arrows/PgUp/PgDn: Pan | Wheel: Zoom | HOME: Reset")

	rl.EndDrawing()
}
