package animator

import "fmt"

// Mode selects what happens when playback reaches the end of the path.
type Mode uint8

const (
	Once     Mode = iota // Stop at the end
	Loop                 // Wrap back to the start
	PingPong             // Reverse direction at either end
)

func (m Mode) String() string {
	switch m {
	case Once:
		return "once"
	case Loop:
		return "loop"
	case PingPong:
		return "pingpong"
	default:
		return fmt.Sprintf("Mode(%d)", m)
	}
}

// ParseMode parses a config name produced by Mode.String. An empty string is Once.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "once":
		return Once, nil
	case "loop":
		return Loop, nil
	case "pingpong", "ping-pong":
		return PingPong, nil
	}
	return 0, fmt.Errorf("animator: unknown mode %q", s)
}

// State is the playback state.
type State uint8

const (
	Stopped  State = iota // Rewound to time 0
	Playing               // Advancing on every tick
	Paused                // Holding the current time
	Finished              // Once mode reached time 1
)

func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("State(%d)", s)
	}
}
