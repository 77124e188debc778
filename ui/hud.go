package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dolly/components"
	"github.com/pthm-cable/dolly/systems"
	"github.com/pthm-cable/dolly/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title   string
	Tick    int32
	SimTime float64
	Speed   int
	FPS     int32
	Paused  bool
	Playing []string // names of paths currently playing
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Tick: %d | Time: %.2fs | Speed: %dx | FPS: %d", data.Tick, data.SimTime, data.Speed, data.FPS),
		10, 35, 16, rl.LightGray,
	)

	playing := "idle"
	if len(data.Playing) > 0 {
		playing = fmt.Sprint(data.Playing)
	}
	rl.DrawText("Playing: "+playing, 10, 55, 16, rl.LightGray)

	if data.Paused {
		rl.DrawText("PAUSED", 10, 75, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase tick timing.
type PerfPanel struct {
	x, y     int32
	registry *systems.SystemRegistry
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32, registry *systems.SystemRegistry) *PerfPanel {
	return &PerfPanel{x: x, y: y, registry: registry}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	x, y := p.x, p.y

	rl.DrawText("System Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(fmt.Sprintf("Tick: %s  TPS: %.0f", stats.AvgTick.Round(time.Microsecond), stats.TicksPerSecond), x, y, 14, rl.Yellow)
	y += 16

	for ph, pct := range stats.PhasePct {
		id := telemetry.Phase(ph).String()
		name := id
		if p.registry != nil {
			name = p.registry.GetName(id)
		}

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-12s %5.1f%%", name, pct), x, y, 12, color)
		y += 14
	}
}

// PathPanel shows the playback state of one path and its watched body.
type PathPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPathPanel creates a path panel.
func NewPathPanel(x, y, width int32) *PathPanel {
	return &PathPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PathPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the path fields, then the body fields when body is non-nil.
func (p *PathPanel) Draw(path *components.Path, pos *components.Position, body *components.Body) {
	if path == nil {
		return
	}
	t := p.renderer.Theme
	rows := len(components.PathFieldDescriptors()) + 2
	if body != nil {
		rows += len(components.BodyFieldDescriptors()) + 1
	}
	height := int32(rows)*(t.LineHeight+2) + 2*t.Padding
	p.renderer.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + t.Padding
	y := p.y + t.Padding
	inner := p.width - 2*t.Padding

	state := "none"
	if path.Animator != nil {
		state = path.Animator.State().String()
	}
	y = p.renderer.DrawSectionHeader(x, y, fmt.Sprintf("%s (%s)", path.Name, state))
	for _, fd := range components.PathFieldDescriptors() {
		y = p.renderer.DrawField(x, y, fd, components.GetPathValue(path, fd.ID), inner)
	}

	if body != nil && pos != nil {
		y = p.renderer.DrawSectionHeader(x, y+4, body.Name)
		for _, fd := range components.BodyFieldDescriptors() {
			y = p.renderer.DrawField(x, y, fd, components.GetBodyValue(pos, body, fd.ID), inner)
		}
	}
}
