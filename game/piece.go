package game

import "math/rand"

// Piece is an active falling piece: a catalog index plus the board anchor
// its offsets are applied to.
type Piece struct {
	Shape int `json:"shape"`
	Pos   int `json:"pos"`
}

// Color returns the display color of the piece.
func (p Piece) Color() Cell {
	return catalog[p.Shape].Color
}

// Cells returns the four absolute board indices covered by the piece.
func (p Piece) Cells() [4]int {
	sh := catalog[p.Shape]
	return [4]int{
		p.Pos,
		p.Pos + sh.Offsets[0],
		p.Pos + sh.Offsets[1],
		p.Pos + sh.Offsets[2],
	}
}

// Spawner draws new pieces with a one-piece lookahead: the preview is drawn
// eagerly so the UI can show it before it becomes the active piece. The
// random source is injected so spawn sequences are reproducible under a
// fixed seed.
type Spawner struct {
	rng  *rand.Rand
	next int
}

// NewSpawner creates a spawner and draws the initial preview.
func NewSpawner(rng *rand.Rand) *Spawner {
	s := &Spawner{rng: rng}
	s.next = s.draw()
	return s
}

func (s *Spawner) draw() int {
	return s.rng.Intn(NumBaseShapes)
}

// Peek returns the catalog index of the piece that will spawn next.
func (s *Spawner) Peek() int {
	return s.next
}

// Next promotes the previewed piece to an active piece at the spawn anchor
// and draws a fresh preview.
func (s *Spawner) Next() Piece {
	p := Piece{Shape: s.next, Pos: SpawnPos}
	s.next = s.draw()
	return p
}
