package viewer

import rl "github.com/gen2brain/raylib-go/raylib"

// HandleInput processes keyboard and mouse input.
func (v *Viewer) HandleInput() {
	v.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	g := v.game
	if rl.IsKeyPressed(rl.KeySpace) {
		g.SetPaused(!g.Paused())
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.StepsPerUpdate() > 1 {
		g.SetStepsPerUpdate(g.StepsPerUpdate() - 1)
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.StepsPerUpdate() < 10 {
		g.SetStepsPerUpdate(g.StepsPerUpdate() + 1)
	}

	if rl.IsKeyPressed(rl.KeyTab) {
		if n := len(g.PathNames()); n > 0 {
			v.selected = (v.selected + 1) % n
		}
	}
	if name := v.SelectedPath(); name != "" {
		if rl.IsKeyPressed(rl.KeyP) {
			g.Play(name)
		}
		if rl.IsKeyPressed(rl.KeyS) {
			g.Stop(name)
		}
	}

	if rl.IsKeyPressed(rl.KeyG) {
		v.showGizmos = !v.showGizmos
	}
	if rl.IsKeyPressed(rl.KeyF) {
		v.showPerf = !v.showPerf
	}

	v.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (v *Viewer) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == v.screenWidth && h == v.screenHeight {
		return
	}
	v.screenWidth = w
	v.screenHeight = h
	v.background.Resize(w, h)
	v.perfPanel.SetPosition(w-220, 10)
}

// handleCameraInput processes free-camera pan/zoom controls. Playing paths
// overwrite the rig on their next tick.
func (v *Viewer) handleCameraInput() {
	rig := v.game.Rig()

	// Pan speed scales with the field of view for a steady on-screen feel
	panSpeed := 0.2 * rig.FOV / 60

	if rl.IsKeyDown(rl.KeyRight) {
		rig.Pan(panSpeed, 0, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		rig.Pan(-panSpeed, 0, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		rig.Pan(0, 0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		rig.Pan(0, 0, -panSpeed)
	}
	if rl.IsKeyDown(rl.KeyPageUp) {
		rig.Pan(0, panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyPageDown) {
		rig.Pan(0, -panSpeed, 0)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		rig.ZoomBy(1 + float64(wheel)*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		rig.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		rig.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		rig.Reset()
	}
}
