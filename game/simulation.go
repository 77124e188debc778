package game

import (
	"github.com/pthm-cable/dolly/telemetry"
)

// Update runs StepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	if g.paused {
		return
	}
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// UpdateHeadless runs StepsPerUpdate ticks regardless of pause.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs a single tick: bodies move, volumes fire, animators write the rig.
func (g *Game) step() {
	dt := g.cfg.Simulation.DT
	g.perfCollector.StartTick()

	// 1. Move bodies
	g.perfCollector.StartPhase(telemetry.PhaseMotion)
	g.motion.Update(g.world, dt)

	// 2. Detect volume entries and restore finished cinematics
	g.perfCollector.StartPhase(telemetry.PhaseTriggers)
	g.recordEvents(g.triggers.Update(g.world))

	// 3. Advance animators
	g.perfCollector.StartPhase(telemetry.PhaseAnimation)
	g.recordEvents(g.animation.Update(g.world, dt))

	// 4. Sample the camera
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.sampleCamera()

	g.perfCollector.EndTick()
	g.tick++
	g.simTime += dt
	g.flushPerf()
}
