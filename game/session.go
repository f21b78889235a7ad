package game

import "math/rand"

// GameSession owns the whole state of one game: board, active piece,
// next-piece lookahead and score progression. It is a plain state machine;
// the GameActor feeds it one event at a time, so no locking happens here.
type GameSession struct {
	board    *Board
	spawner  *Spawner
	piece    Piece
	progress Progress
	phase    Phase
	sink     FrameSink
}

// NewSession creates a session with a fresh board and spawns the first
// piece. The random source drives the piece sequence; a fixed seed gives a
// reproducible game.
func NewSession(rng *rand.Rand) *GameSession {
	s := &GameSession{
		board:    NewBoard(),
		spawner:  NewSpawner(rng),
		progress: NewProgress(),
		phase:    PhaseFalling,
	}
	s.spawn()
	return s
}

// SetSink installs the render feed. Pass nil to disable.
func (s *GameSession) SetSink(sink FrameSink) {
	s.sink = sink
}

// Phase returns the current lifecycle phase.
func (s *GameSession) Phase() Phase {
	return s.phase
}

// Progress returns the current score state.
func (s *GameSession) Progress() Progress {
	return s.progress
}

// Piece returns the active piece.
func (s *GameSession) Piece() Piece {
	return s.piece
}

// PeekNext returns the catalog index of the previewed next piece.
func (s *GameSession) PeekNext() int {
	return s.spawner.Peek()
}

// Board returns the authoritative board.
func (s *GameSession) Board() *Board {
	return s.board
}

// Step feeds exactly one event into the state machine and emits a frame.
// Rejected moves are normal negative results: the prior state is kept and
// the step still completes.
func (s *GameSession) Step(ev Event) {
	switch s.phase {
	case PhasePaused:
		// Only the pause toggle resumes; everything else is swallowed.
		if ev == EventPause {
			s.phase = PhaseFalling
			s.emit()
		}
		return

	case PhaseGameOver, PhaseWon:
		if ev == EventRestart {
			s.restart()
			s.emit()
		}
		return
	}

	switch ev {
	case EventTick:
		if !s.moveBy(BoardCols) {
			s.lock()
		}
	case EventLeft:
		s.moveBy(-1)
	case EventRight:
		s.moveBy(1)
	case EventRotate:
		// Reverse rotation: the catalog only stores forward links, so the
		// predecessor is found by scanning the table.
		s.tryShape(Predecessor(s.piece.Shape))
	case EventRotateBack:
		s.tryShape(Successor(s.piece.Shape))
	case EventDrop:
		s.hardDrop()
	case EventPause:
		s.phase = PhasePaused
	case EventRestart:
		s.restart()
	case EventQuit:
		// Teardown is the owner's concern; the session state is left as is.
	}
	s.emit()
}

// moveBy shifts the anchor by delta if the piece fits there. Returns false
// and leaves the anchor unchanged on collision.
func (s *GameSession) moveBy(delta int) bool {
	if !s.board.Fits(ShapeAt(s.piece.Shape), s.piece.Pos+delta) {
		return false
	}
	s.piece.Pos += delta
	return true
}

// tryShape swaps the piece's rotation state in place, reverting when the new
// shape does not fit at the current anchor. No wall-kick search.
func (s *GameSession) tryShape(index int) bool {
	if !s.board.Fits(ShapeAt(index), s.piece.Pos) {
		return false
	}
	s.piece.Shape = index
	return true
}

// hardDrop moves the piece down until it collides, earning one point per
// row. The piece locks on the next gravity tick, like any grounded piece.
func (s *GameSession) hardDrop() {
	rows := 0
	for s.moveBy(BoardCols) {
		rows++
	}
	if !s.progress.AwardDrop(rows) {
		s.phase = PhaseWon
	}
}

// lock writes the piece into the board permanently, runs the clear-cycle,
// applies scoring and spawns the next piece. Ran when a gravity move fails.
func (s *GameSession) lock() {
	s.board.Place(ShapeAt(s.piece.Shape), s.piece.Pos, s.piece.Color())

	clears := 0
	for row := 1; row < BoardRows-2; row++ {
		if !s.board.RowFull(row) {
			continue
		}
		clears++
		s.board.ClearRow(row)
		s.emit()
		s.board.ShiftRowsDown(row)
		s.emit()
		// The shift may have made this same row full again; re-examine it
		// before advancing.
		row--
	}

	if clears > 0 && !s.progress.AwardClears(clears) {
		s.phase = PhaseWon
		return
	}

	if !s.spawn() {
		s.phase = PhaseGameOver
	}
}

// spawn promotes the previewed piece to active. Returns false when it has no
// room at the spawn anchor, which ends the game.
func (s *GameSession) spawn() bool {
	s.piece = s.spawner.Next()
	return s.board.Fits(ShapeAt(s.piece.Shape), s.piece.Pos)
}

// restart reinitializes board and score state and spawns fresh pieces. The
// random source carries over.
func (s *GameSession) restart() {
	s.board.Reset()
	s.progress = NewProgress()
	s.phase = PhaseFalling
	s.spawn()
}

// Final returns the score feed for the session's current progress.
func (s *GameSession) Final() FinalScore {
	return s.progress.Final(s.phase == PhaseWon)
}

// Snapshot builds the render feed for the current state.
func (s *GameSession) Snapshot() Snapshot {
	cells := s.board.Cells()
	pieceCells := s.piece.Cells()
	if !s.phase.Terminal() {
		color := s.piece.Color()
		for _, pos := range pieceCells {
			cells[pos] = color
		}
	}
	return Snapshot{
		Cells:     cells,
		Piece:     pieceCells,
		NextShape: s.spawner.Peek(),
		Points:    s.progress.Points,
		Level:     s.progress.Level,
		Phase:     s.phase,
	}
}

func (s *GameSession) emit() {
	if s.sink != nil {
		s.sink(s.Snapshot())
	}
}
