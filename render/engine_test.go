package render

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julmajustus/tetris/game"
	"github.com/julmajustus/tetris/utils"
)

func newTestEngine() (*Engine, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewEngine(&buf, utils.DefaultConfig()), &buf
}

func snapshotAt(seed int64) game.Snapshot {
	return game.NewSession(rand.New(rand.NewSource(seed))).Snapshot()
}

func TestEngine_FirstFramePaintsEverything(t *testing.T) {
	e, buf := newTestEngine()
	require.NoError(t, e.Frame(snapshotAt(1)))

	out := buf.String()
	assert.Contains(t, out, ClearScreen)
	assert.Contains(t, out, HideCursor)
	assert.Contains(t, out, "Level  : 1")
	assert.Contains(t, out, "Points : 0")
	assert.Contains(t, out, "Preview:")
	assert.Contains(t, out, "space - drop")
	assert.Contains(t, out, "h     - left")
	// Border cells render on the bright-black background.
	assert.Contains(t, out, "\x1b[100m")
}

func TestEngine_IdenticalFrameEmitsNothing(t *testing.T) {
	e, buf := newTestEngine()
	snap := snapshotAt(1)
	require.NoError(t, e.Frame(snap))
	full := buf.Len()

	require.NoError(t, e.Frame(snap))
	assert.Equal(t, full, buf.Len(), "an unchanged frame must write zero bytes")
}

func TestEngine_DiffTouchesOnlyChangedCells(t *testing.T) {
	e, buf := newTestEngine()
	s := game.NewSession(rand.New(rand.NewSource(1)))
	require.NoError(t, e.Frame(s.Snapshot()))
	full := buf.Len()

	s.Step(game.EventTick)
	require.NoError(t, e.Frame(s.Snapshot()))
	delta := buf.Len() - full

	assert.Greater(t, delta, 0)
	assert.Less(t, delta, full/4, "a one-row fall must be a small diff, not a repaint")
}

func TestEngine_PauseFreezesAndResumeRepaints(t *testing.T) {
	e, buf := newTestEngine()
	s := game.NewSession(rand.New(rand.NewSource(1)))
	require.NoError(t, e.Frame(s.Snapshot()))

	s.Step(game.EventPause)
	buf.Reset()
	require.NoError(t, e.Frame(s.Snapshot()))
	assert.Contains(t, buf.String(), "*paused*")

	s.Step(game.EventPause)
	buf.Reset()
	require.NoError(t, e.Frame(s.Snapshot()))
	assert.Contains(t, buf.String(), ClearScreen, "resume must repaint the frozen board")
	assert.Contains(t, buf.String(), "Preview:")
}

func TestEngine_EndScreens(t *testing.T) {
	cases := []struct {
		phase    game.Phase
		headline string
	}{
		{game.PhaseGameOver, "YOU HAVE FAILED!"},
		{game.PhaseWon, "YOU HAVE WON"},
	}
	for _, tc := range cases {
		t.Run(tc.phase.String(), func(t *testing.T) {
			e, buf := newTestEngine()
			require.NoError(t, e.Frame(snapshotAt(1)))
			buf.Reset()

			snap := snapshotAt(1)
			snap.Phase = tc.phase
			snap.Points = 1200
			snap.Level = 3
			require.NoError(t, e.Frame(snap))

			out := buf.String()
			assert.Contains(t, out, tc.headline)
			assert.Contains(t, out, "1200 points x level 3 = 3600")
			assert.Contains(t, out, "Press 'r' for replay or 'q' for quit!")

			// The same terminal frame again must not redraw the screen.
			buf.Reset()
			require.NoError(t, e.Frame(snap))
			assert.Equal(t, 0, buf.Len())
		})
	}
}

func TestEngine_PreviewRedrawsOnShapeChange(t *testing.T) {
	e, buf := newTestEngine()
	snap := snapshotAt(1)
	require.NoError(t, e.Frame(snap))

	next := snap
	next.NextShape = (snap.NextShape + 1) % game.NumBaseShapes
	buf.Reset()
	require.NoError(t, e.Frame(next))
	assert.Greater(t, buf.Len(), 0, "a new preview shape must redraw the preview grid")
}

func TestEngine_RestoreResetsTerminal(t *testing.T) {
	e, buf := newTestEngine()
	require.NoError(t, e.Restore())
	assert.Contains(t, buf.String(), ShowCursor)
	assert.True(t, strings.HasPrefix(buf.String(), Reset))
}
