package game

// --- Actor Messages ---

// GameTick is one gravity timer event. Delivered through the same mailbox as
// key presses, so the session only ever sees a serialized event stream.
type GameTick struct{}

// KeyPressed carries one raw key byte from an input surface. The actor maps
// it through the configured binding string.
type KeyPressed struct {
	Key byte
}

// --- WebSocket Messages (Client <-> Server) ---

// MessageHeader identifies message types after unmarshalling from JSON.
type MessageHeader struct {
	MessageType string `json:"messageType"`
}

// KeyMessage is a client -> server key press.
type KeyMessage struct {
	MessageType string `json:"messageType"` // "key"
	Key         string `json:"key"`
}

// FrameMessage is a server -> client render-feed frame.
type FrameMessage struct {
	MessageType string   `json:"messageType"` // "frame"
	Snapshot    Snapshot `json:"snapshot"`
}

// ScoreMessage is the server -> client score feed, sent when a session
// reaches a terminal state.
type ScoreMessage struct {
	MessageType string     `json:"messageType"` // "finalScore"
	Score       FinalScore `json:"score"`
}
