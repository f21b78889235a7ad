package game

// Cell offsets are flat board-index deltas, packed against the board width:
// moving one row down is +BoardCols, one column right is +1.
const (
	offTL = -BoardCols - 1
	offTC = -BoardCols
	offTR = -BoardCols + 1
	offML = -1
	offMR = 1
	offBL = BoardCols - 1
	offBC = BoardCols
	offBR = BoardCols + 1
)

// Shape is one entry of the rotation catalog: the catalog index of the next
// rotation state, the offsets of the three non-anchor cells and the display
// color. Offsets never change after catalog construction; applied to a valid
// anchor they always describe a connected tetromino.
type Shape struct {
	Succ    int
	Offsets [3]int
	Color   Cell
}

// The full catalog: 19 rotation states covering the 7 base pieces. The first
// NumBaseShapes entries are the spawnable ones. The Succ links form a
// permutation of the catalog, so every entry has exactly one predecessor.
var catalog = [...]Shape{
	{7, [3]int{offTL, offTC, offMR}, 2},              // S
	{8, [3]int{offTR, offTC, offML}, 3},              // Z
	{9, [3]int{offML, offMR, offBC}, 1},              // T
	{3, [3]int{offTL, offTC, offML}, 4},              // O
	{12, [3]int{offML, offBL, offMR}, 5},             // J
	{15, [3]int{offML, offBR, offMR}, 6},             // L
	{18, [3]int{offML, offMR, 2}, 7},                 // I, horizontal
	{0, [3]int{offTC, offML, offBL}, 2},              // S rotated
	{1, [3]int{offTC, offMR, offBR}, 3},              // Z rotated
	{10, [3]int{offTC, offMR, offBC}, 1},             // T pointing left
	{11, [3]int{offTC, offML, offMR}, 1},             // T pointing up
	{2, [3]int{offTC, offML, offBC}, 1},              // T pointing right
	{13, [3]int{offTC, offBC, offBR}, 5},             // J states
	{14, [3]int{offTR, offML, offMR}, 5},             //
	{4, [3]int{offTL, offTC, offBC}, 5},              //
	{16, [3]int{offTR, offTC, offBC}, 6},             // L states
	{17, [3]int{offTL, offMR, offML}, 6},             //
	{5, [3]int{offTC, offBC, offBL}, 6},              //
	{6, [3]int{offTC, offBC, 2 * BoardCols}, 7},      // I, vertical
}

const (
	// NumShapes is the total number of rotation states in the catalog.
	NumShapes = len(catalog)
	// NumBaseShapes is the number of distinct spawnable pieces.
	NumBaseShapes = 7
)

// ShapeAt returns the catalog entry at index.
func ShapeAt(index int) Shape {
	return catalog[index]
}

// Successor returns the catalog index of the next rotation state. This is a
// direct table lookup.
func Successor(index int) int {
	return catalog[index].Succ
}

// Predecessor returns the catalog index whose successor link points at
// index, i.e. the previous rotation state. Unlike Successor this walks the
// whole catalog; the table only encodes forward links. Returns index itself
// if no predecessor exists, which cannot happen with the built-in catalog.
func Predecessor(index int) int {
	for i := 0; i < NumShapes; i++ {
		if catalog[i].Succ == index {
			return i
		}
	}
	return index
}

// SplitOffset decodes a flat-index delta into row and column deltas.
// Renderers use it to draw shapes outside the board, e.g. the preview box.
// Column deltas are at most half a row wide, so rounding the quotient to the
// nearest row recovers the split exactly.
func SplitOffset(off int) (dr, dc int) {
	const bias = 6 * BoardCols
	dr = (off+bias+BoardCols/2)/BoardCols - 6
	dc = off - dr*BoardCols
	return dr, dc
}
