package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_SuccessorLinksArePermutation(t *testing.T) {
	seen := map[int]bool{}
	for i := 0; i < NumShapes; i++ {
		succ := Successor(i)
		require.GreaterOrEqual(t, succ, 0)
		require.Less(t, succ, NumShapes)
		assert.False(t, seen[succ], "successor %d reached from two entries", succ)
		seen[succ] = true
	}
	assert.Len(t, seen, NumShapes)
}

// Successor and Predecessor must be exact inverses: rotating forward then
// backward from any state returns the original state.
func TestCatalog_PredecessorInvertsSuccessor(t *testing.T) {
	for i := 0; i < NumShapes; i++ {
		assert.Equal(t, i, Predecessor(Successor(i)), "entry %d", i)
		assert.Equal(t, i, Successor(Predecessor(i)), "entry %d", i)
	}
}

// Each base piece's rotation orbit must come back to itself and stay within
// the catalog.
func TestCatalog_RotationOrbitsClose(t *testing.T) {
	for base := 0; base < NumBaseShapes; base++ {
		idx := base
		for step := 0; step < NumShapes+1; step++ {
			idx = Successor(idx)
			if idx == base {
				break
			}
		}
		assert.Equal(t, base, idx, "orbit of base shape %d does not close", base)
	}
}

// Rotation states of one piece all share that piece's color.
func TestCatalog_OrbitsShareColor(t *testing.T) {
	for base := 0; base < NumBaseShapes; base++ {
		color := ShapeAt(base).Color
		idx := Successor(base)
		for idx != base {
			assert.Equal(t, color, ShapeAt(idx).Color, "orbit of base %d, entry %d", base, idx)
			idx = Successor(idx)
		}
	}
}

// Every entry must describe a connected tetromino: with the anchor, four
// cells where each cell touches another one orthogonally or diagonally.
func TestCatalog_ShapesAreConnected(t *testing.T) {
	for i := 0; i < NumShapes; i++ {
		sh := ShapeAt(i)
		coords := [4][2]int{{0, 0}}
		for j, off := range sh.Offsets {
			dr, dc := SplitOffset(off)
			coords[j+1] = [2]int{dr, dc}
		}

		adjacent := func(a, b [2]int) bool {
			dr, dc := a[0]-b[0], a[1]-b[1]
			return dr >= -1 && dr <= 1 && dc >= -2 && dc <= 2 && (dr != 0 || dc != 0)
		}

		reached := map[int]bool{0: true}
		for changed := true; changed; {
			changed = false
			for a := range coords {
				if reached[a] {
					continue
				}
				for b := range coords {
					if reached[b] && adjacent(coords[a], coords[b]) {
						reached[a] = true
						changed = true
					}
				}
			}
		}
		assert.Len(t, reached, 4, "entry %d is not connected", i)
	}
}

func TestSplitOffset(t *testing.T) {
	cases := []struct {
		off    int
		dr, dc int
	}{
		{offTL, -1, -1},
		{offTC, -1, 0},
		{offTR, -1, 1},
		{offML, 0, -1},
		{offMR, 0, 1},
		{offBL, 1, -1},
		{offBC, 1, 0},
		{offBR, 1, 1},
		{2, 0, 2},
		{2 * BoardCols, 2, 0},
	}
	for _, tc := range cases {
		dr, dc := SplitOffset(tc.off)
		assert.Equal(t, tc.dr, dr, "offset %d row", tc.off)
		assert.Equal(t, tc.dc, dc, "offset %d col", tc.off)
	}
}
