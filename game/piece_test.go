package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpawner_DeterministicUnderFixedSeed(t *testing.T) {
	a := NewSpawner(rand.New(rand.NewSource(42)))
	b := NewSpawner(rand.New(rand.NewSource(42)))

	for i := 0; i < 50; i++ {
		pa, pb := a.Next(), b.Next()
		assert.Equal(t, pa.Shape, pb.Shape, "draw %d", i)
	}
}

func TestSpawner_DrawsOnlyBaseShapes(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(7)))
	for i := 0; i < 200; i++ {
		p := s.Next()
		require.GreaterOrEqual(t, p.Shape, 0)
		require.Less(t, p.Shape, NumBaseShapes)
		assert.Equal(t, SpawnPos, p.Pos)
	}
}

// The preview must be exactly the piece that spawns next.
func TestSpawner_PeekMatchesNext(t *testing.T) {
	s := NewSpawner(rand.New(rand.NewSource(1)))
	for i := 0; i < 50; i++ {
		peeked := s.Peek()
		assert.Equal(t, peeked, s.Next().Shape, "draw %d", i)
	}
}

func TestPiece_Cells(t *testing.T) {
	p := Piece{Shape: 3, Pos: SpawnPos} // square: TL, TC, ML
	cells := p.Cells()
	assert.Equal(t, [4]int{SpawnPos, SpawnPos - BoardCols - 1, SpawnPos - BoardCols, SpawnPos - 1}, cells)
	assert.Equal(t, Cell(4), p.Color())
}
