package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/dolly/config"
	"github.com/pthm-cable/dolly/telemetry"
)

// Reload rebuilds the scene from cfg. Tick count, simulated time, pause
// state and telemetry output carry over; bodies, paths and the rig start
// over. On error the running scene is kept.
func (g *Game) Reload(cfg *config.Config) error {
	prev := *g
	started, err := g.build(cfg)
	if err != nil {
		*g = prev
		return fmt.Errorf("reloading scene: %w", err)
	}
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	g.recordEvent(telemetry.Event{Type: telemetry.EventReload, Detail: fmt.Sprintf("%d paths", len(cfg.Paths))})
	g.recordStarted(started)
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}
	return nil
}

// ReloadFrom loads the config file at path and reloads the scene with it.
func (g *Game) ReloadFrom(path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	return g.Reload(cfg)
}

// ReloadIfChanged reloads from w's file when it has changed since the last
// call. Failed reloads are logged and the running scene is kept.
func (g *Game) ReloadIfChanged(w *config.Watcher) bool {
	if w == nil || !w.Changed() {
		return false
	}
	if err := g.ReloadFrom(w.Path()); err != nil {
		slog.Warn("config reload failed", "path", w.Path(), "error", err)
		return false
	}
	slog.Info("config reloaded", "path", w.Path())
	return true
}
