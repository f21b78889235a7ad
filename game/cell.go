package game

// Cell is the occupancy/color tag of a single board position. Zero means
// empty, 1..7 are the piece display colors, Border marks the immovable
// boundary ring.
type Cell int

const (
	Empty  Cell = 0
	Border Cell = 60
)

// Occupied reports whether the cell blocks a piece.
func (c Cell) Occupied() bool {
	return c != Empty
}
