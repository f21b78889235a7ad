package game

// Snapshot is the render feed: the full cell contents after one
// state-machine step, with the active piece overlaid. Renderers diff
// consecutive snapshots against their own last-drawn copy; the core knows
// nothing about screen coordinates or escape codes, only color tags.
type Snapshot struct {
	Cells     []Cell `json:"cells"`
	Piece     [4]int `json:"piece"`
	NextShape int    `json:"nextShape"`
	Points    int64  `json:"points"`
	Level     int    `json:"level"`
	Phase     Phase  `json:"phase"`
}

// FrameSink consumes snapshots. A sink is called on the session's goroutine
// after every step and at every intra-lock redraw point, so it must not
// block.
type FrameSink func(Snapshot)
