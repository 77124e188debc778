// Package telemetry records camera samples, playback events and tick timing
// to CSV for offline inspection.
package telemetry

import "log/slog"

// EventType identifies playback events.
type EventType string

const (
	EventPlay      EventType = "play"          // Animator started on load
	EventFinish    EventType = "finish"        // Animator reached its end
	EventChain     EventType = "chain"         // Finished animator started its successor
	EventEnter     EventType = "trigger_enter" // Watched body entered a trigger volume
	EventRestore   EventType = "restore"       // Trigger put the camera back
	EventTickError EventType = "tick_error"    // Animator tick returned a new error
	EventReload    EventType = "reload"        // Scene rebuilt from an edited config
)

// Event is one playback event.
type Event struct {
	Tick    int32     `csv:"tick"`
	Type    EventType `csv:"type"`
	Path    string    `csv:"path"`
	Trigger string    `csv:"trigger"`
	Detail  string    `csv:"detail"`
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", string(e.Type)),
		slog.Int("tick", int(e.Tick)),
	}
	if e.Path != "" {
		attrs = append(attrs, slog.String("path", e.Path))
	}
	if e.Trigger != "" {
		attrs = append(attrs, slog.String("trigger", e.Trigger))
	}
	if e.Detail != "" {
		attrs = append(attrs, slog.String("detail", e.Detail))
	}
	return slog.GroupValue(attrs...)
}

// Log logs the event using slog. Tick errors log at warn level.
func (e Event) Log() {
	if e.Type == EventTickError {
		slog.Warn("path_event", "event", e)
		return
	}
	slog.Info("path_event", "event", e)
}
