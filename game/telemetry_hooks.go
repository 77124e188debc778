package game

import (
	"log/slog"

	"github.com/pthm-cable/dolly/telemetry"
)

// recordEvents stamps and records the events of the current tick.
func (g *Game) recordEvents(events []telemetry.Event) {
	for _, e := range events {
		g.recordEvent(e)
	}
}

// recordStarted records a play event for each autoplaying path.
func (g *Game) recordStarted(names []string) {
	for _, name := range names {
		g.recordEvent(telemetry.Event{Type: telemetry.EventPlay, Path: name})
	}
}

func (g *Game) recordEvent(e telemetry.Event) {
	e.Tick = g.tick
	g.events = append(g.events, e)
	if g.logEvents {
		e.Log()
	}
	if err := g.outputManager.WriteEvent(e); err != nil {
		slog.Error("failed to write event", "error", err)
	}
}

// sampleCamera writes one row per playing path every SampleEvery ticks.
func (g *Game) sampleCamera() {
	every := g.cfg.Telemetry.SampleEvery
	if g.outputManager == nil || every <= 0 || int(g.tick)%every != 0 {
		return
	}
	var rows []telemetry.SampleRow
	for _, p := range g.paths {
		path := g.pathMap.Get(p.entity)
		anim := path.Animator
		if !anim.Playing() {
			continue
		}
		s, err := anim.Evaluate(anim.Remap(anim.Time()))
		if err != nil {
			continue
		}
		rows = append(rows, telemetry.NewSampleRow(g.tick, g.simTime+g.cfg.Simulation.DT, path.Name, anim.State(), anim.Time(), s))
	}
	if err := g.outputManager.WriteSamples(rows); err != nil {
		slog.Error("failed to write samples", "error", err)
	}
}

// flushPerf writes and logs timing stats once per perf window.
func (g *Game) flushPerf() {
	window := g.cfg.Telemetry.PerfWindow
	if window <= 0 || int(g.tick)%window != 0 {
		return
	}
	stats := g.perfCollector.Stats()
	if g.logEvents {
		slog.Info("perf", "tick", g.tick, "stats", stats)
	}
	if err := g.outputManager.WritePerf(stats, g.tick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
