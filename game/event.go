package game

// Event is a single input to the state machine: one key command or one
// gravity tick. The core processes exactly one event per step.
//
// The first eight values match the positions of the key-binding string
// ("hjkl pqr" by default), so a raw key byte maps to its event by position
// and the core never compares against hardcoded characters.
type Event int

const (
	EventLeft Event = iota
	EventRotateBack
	EventRotate
	EventRight
	EventDrop
	EventPause
	EventQuit
	EventRestart
	EventTick

	// NumKeyEvents is the number of key-bound events, i.e. the required
	// length of a binding string.
	NumKeyEvents = int(EventTick)
)

// EventFromKey maps a raw key byte through the binding string. The binding
// order is: left, rotate back, rotate, right, drop, pause, quit, restart.
func EventFromKey(keys string, key byte) (Event, bool) {
	for i := 0; i < len(keys) && i < NumKeyEvents; i++ {
		if keys[i] == key {
			return Event(i), true
		}
	}
	return 0, false
}

// Phase is the lifecycle state of a session as observed between steps.
// Spawning and lock resolution are transient inside a single step and never
// observable from outside.
type Phase int

const (
	PhaseFalling Phase = iota
	PhasePaused
	PhaseGameOver
	PhaseWon
)

func (p Phase) String() string {
	switch p {
	case PhaseFalling:
		return "falling"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	case PhaseWon:
		return "won"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the game.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWon
}
