package game

// Board geometry. The logical grid is fixed: the playing field is framed by
// a border ring (columns 0 and 11 plus the two bottom rows) that is occupied
// from init to teardown.
const (
	BoardCols = 12
	BoardRows = 23
	BoardSize = BoardRows * BoardCols

	// SpawnPos is the anchor every new piece starts from: row 1, column 5.
	SpawnPos = BoardCols + 5
)

// Board is the authoritative playing grid, stored flat and indexed
// row*BoardCols+col.
//
// Fits performs no explicit bounds checks: any shape/anchor combination that
// would leave the field runs into the permanently occupied border ring
// first. The ring is never cleared or overwritten by placement or
// compaction.
type Board struct {
	cells [BoardSize]Cell
}

// NewBoard returns a board with the border ring set and the field empty.
func NewBoard() *Board {
	b := &Board{}
	b.Reset()
	return b
}

// Reset empties the field and repaints the border ring.
func (b *Board) Reset() {
	for i := range b.cells {
		row, col := i/BoardCols, i%BoardCols
		if row >= BoardRows-2 || col == 0 || col == BoardCols-1 {
			b.cells[i] = Border
		} else {
			b.cells[i] = Empty
		}
	}
}

// At returns the cell at the given flat index.
func (b *Board) At(pos int) Cell {
	return b.cells[pos]
}

// Fits reports whether all four cells of the shape anchored at pos are
// empty. The anchor is tested first so that an anchor resting on the border
// rejects the move before any offset could index outside the grid.
func (b *Board) Fits(sh Shape, pos int) bool {
	if b.cells[pos].Occupied() {
		return false
	}
	for _, off := range sh.Offsets {
		if b.cells[pos+off].Occupied() {
			return false
		}
	}
	return true
}

// Place unconditionally writes color into the four cells of the shape
// anchored at pos. Callers check Fits first; writing Empty erases.
func (b *Board) Place(sh Shape, pos int, color Cell) {
	b.cells[pos] = color
	for _, off := range sh.Offsets {
		b.cells[pos+off] = color
	}
}

// RowFull reports whether every non-border cell of row is occupied.
func (b *Board) RowFull(row int) bool {
	for col := 1; col < BoardCols-1; col++ {
		if !b.cells[row*BoardCols+col].Occupied() {
			return false
		}
	}
	return true
}

// ClearRow empties the non-border cells of row.
func (b *Board) ClearRow(row int) {
	for col := 1; col < BoardCols-1; col++ {
		b.cells[row*BoardCols+col] = Empty
	}
}

// ShiftRowsDown copies every row above from one row down, starting at
// from and walking up, then empties row 0. Border columns are untouched.
func (b *Board) ShiftRowsDown(from int) {
	for row := from; row > 0; row-- {
		for col := 1; col < BoardCols-1; col++ {
			b.cells[row*BoardCols+col] = b.cells[(row-1)*BoardCols+col]
		}
	}
	b.ClearRow(0)
}

// Cells returns a copy of the grid contents.
func (b *Board) Cells() []Cell {
	out := make([]Cell, BoardSize)
	copy(out, b.cells[:])
	return out
}
