// Path preview tool - scrub a configured camera path with a time slider.
//
// Usage: go run ./cmd/pathpreview -config scene.yaml -path intro
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"slices"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dolly/config"
	"github.com/pthm-cable/dolly/game"
	"github.com/pthm-cable/dolly/renderer"
)

const (
	windowWidth  = 1200
	windowHeight = 720
	panelWidth   = 320
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	pathName := flag.String("path", "", "Path to preview (empty = first path)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	g, err := game.NewGame(cfg, game.Options{})
	if err != nil {
		slog.Error("failed to build scene", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	names := g.PathNames()
	if len(names) == 0 {
		slog.Error("config has no paths")
		os.Exit(1)
	}
	selected := 0
	if *pathName != "" {
		if selected = slices.Index(names, *pathName); selected < 0 {
			slog.Error("unknown path", "path", *pathName, "paths", names)
			os.Exit(1)
		}
	}

	rl.InitWindow(windowWidth, windowHeight, "Path Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	overview := rl.Camera3D{
		Position:   rl.NewVector3(30, 35, -45),
		Target:     rl.NewVector3(0, 0, 0),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       50,
		Projection: rl.CameraPerspective,
	}

	var t float32
	animating := false
	throughRig := false

	for !rl.WindowShouldClose() {
		name := names[selected]
		path := g.Path(name)

		if animating {
			t += rl.GetFrameTime() / float32(path.Animator.Duration)
			if t > 1 {
				t = 0
			}
		}

		previewErr := g.ApplyPreview(name, float64(t))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 24, G: 28, B: 36, A: 255})

		cam := overview
		if throughRig {
			cam = renderer.ToCamera3D(g.Rig())
		}
		rl.BeginMode3D(cam)
		rl.DrawGrid(40, 1)
		renderer.DrawPath(path.Curve, cfg.Path.DrawSamples)
		renderer.DrawLines(g.PreviewGizmos(name, float64(t)))
		for _, vol := range g.Volumes() {
			renderer.DrawVolume(vol.Box, false)
		}
		for _, b := range g.Bodies() {
			renderer.DrawBody(b.Position, b.Radius)
		}
		if !throughRig {
			rig := g.Rig()
			rl.DrawSphere(renderer.Vec3(rig.Position), 0.3, rl.Red)
			rl.DrawLine3D(renderer.Vec3(rig.Position), renderer.Vec3(rig.Target()), rl.Red)
		}
		rl.EndMode3D()

		// Control panel
		panelX := float32(windowWidth - panelWidth)
		panelY := float32(10)
		rl.DrawRectangle(int32(panelX)-10, 0, panelWidth+10, windowHeight, rl.Color{R: 20, G: 25, B: 30, A: 230})

		rl.DrawText(fmt.Sprintf("Path: %s (%d/%d)", name, selected+1, len(names)), int32(panelX), int32(panelY), 20, rl.White)
		panelY += 30
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 60, Height: 26}, "<") {
			selected = (selected + len(names) - 1) % len(names)
		}
		if gui.Button(rl.Rectangle{X: panelX + 70, Y: panelY, Width: 60, Height: 26}, ">") {
			selected = (selected + 1) % len(names)
		}
		panelY += 40

		rl.DrawText("Time", int32(panelX), int32(panelY), 14, rl.LightGray)
		panelY += 18
		t = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0", "1",
			t, 0, 1,
		)
		rl.DrawText(fmt.Sprintf("%.3f", t), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.LightGray)
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 140, Height: 30}, toggleText(throughRig, "Overview", "Camera view")) {
			throughRig = !throughRig
		}
		panelY += 50

		if s, err := g.Preview(name, float64(t)); err == nil {
			rl.DrawText(fmt.Sprintf("Param: %.3f", s.T), int32(panelX), int32(panelY), 16, rl.LightGray)
			rl.DrawText(fmt.Sprintf("Pos: %.2f %.2f %.2f", s.Position.X, s.Position.Y, s.Position.Z), int32(panelX), int32(panelY+20), 16, rl.LightGray)
			rl.DrawText(fmt.Sprintf("FOV: %.1f", s.FOV), int32(panelX), int32(panelY+40), 16, rl.LightGray)
			rl.DrawText(fmt.Sprintf("View: %s", s.Orientation.Mode), int32(panelX), int32(panelY+60), 16, rl.LightGray)
		}
		if previewErr != nil {
			rl.DrawText(previewErr.Error(), int32(panelX), int32(panelY+90), 14, rl.Orange)
		}

		rl.EndDrawing()
	}
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
