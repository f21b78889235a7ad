package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/julmajustus/tetris/game"
	"github.com/julmajustus/tetris/utils"
)

// Screen layout, in 1-based terminal coordinates. Each board cell is two
// columns wide so the well looks roughly square.
const (
	cellWidth = 2

	boardLeft = 28
	hudLeft   = boardLeft + 26

	previewRows = 4
	previewTop  = 5

	helpTop = 11
)

// Engine is a per-terminal shadow-buffer renderer. It keeps the last drawn
// copy of the board and the preview and emits escape sequences only for
// cells that changed, so a frame under steady gravity costs a handful of
// bytes instead of a full repaint.
//
// Engine is not safe for concurrent use; drive it from one goroutine.
type Engine struct {
	w    io.Writer
	keys string

	shadow        []game.Cell
	shadowPreview []game.Cell

	statics    bool
	boardDirty bool
	lastLevel  int
	lastPoints int64
	lastPhase  game.Phase
}

// NewEngine creates a renderer writing to w. The key bindings only feed the
// on-screen help text.
func NewEngine(w io.Writer, cfg utils.Config) *Engine {
	e := &Engine{
		w:             w,
		keys:          cfg.Keys,
		shadow:        make([]game.Cell, game.BoardSize),
		shadowPreview: make([]game.Cell, previewRows*game.BoardCols),
		lastLevel:     -1,
		lastPoints:    -1,
	}
	return e
}

// Invalidate forces the next frame to clear the terminal and repaint
// everything. Call it after anything else touched the screen.
func (e *Engine) Invalidate() {
	e.statics = false
}

// Restore makes the terminal usable again: cursor back, attributes reset.
func (e *Engine) Restore() error {
	_, err := io.WriteString(e.w, Reset+ShowCursor+ClearScreen)
	return err
}

// Frame draws one snapshot. Terminal phases replace the board with an end
// screen; the paused phase freezes the board behind a notice. Everything is
// batched into one write.
func (e *Engine) Frame(snap game.Snapshot) error {
	var sb strings.Builder

	switch {
	case snap.Phase.Terminal():
		if e.lastPhase != snap.Phase {
			e.endScreen(&sb, snap)
		}
	case snap.Phase == game.PhasePaused:
		if e.lastPhase != game.PhasePaused {
			sb.WriteString(moveTo(hudLeft, helpTop-1))
			sb.WriteString(Reset + "*paused*")
			e.markBoardDirty()
		}
	default:
		if !e.statics || e.boardDirty {
			// First frame, or coming back from a pause or an end screen.
			e.repaintStatics(&sb)
		}
		e.drawBoard(&sb, snap.Cells)
		e.drawPreview(&sb, snap.NextShape)
		e.drawScore(&sb, snap)
	}
	e.lastPhase = snap.Phase

	if sb.Len() == 0 {
		return nil
	}
	_, err := io.WriteString(e.w, sb.String())
	return err
}

// markBoardDirty zeroes the shadows so the next falling frame redraws every
// occupied cell.
func (e *Engine) markBoardDirty() {
	for i := range e.shadow {
		e.shadow[i] = game.Empty
	}
	for i := range e.shadowPreview {
		e.shadowPreview[i] = game.Empty
	}
	e.lastLevel, e.lastPoints = -1, -1
	e.boardDirty = true
}

func (e *Engine) repaintStatics(sb *strings.Builder) {
	sb.WriteString(ClearScreen)
	sb.WriteString(HideCursor)

	sb.WriteString(moveTo(hudLeft, previewTop))
	sb.WriteString(Reset + "Preview:")
	sb.WriteString(moveTo(hudLeft, helpTop))
	sb.WriteString("Keys:")

	labels := []string{"left", "reverse rotate", "rotate", "right", "drop", "pause", "quit", "restart"}
	for i, label := range labels {
		key := keyName(e.keys[i])
		sb.WriteString(moveTo(hudLeft, helpTop+1+i))
		fmt.Fprintf(sb, "%-5s - %s", key, label)
	}

	e.statics = true
	e.markBoardDirty()
	e.boardDirty = false
}

func keyName(k byte) string {
	if k == ' ' {
		return "space"
	}
	return string(k)
}

// drawBoard diffs the visible rows against the shadow. The top spawn row and
// the lowest border row stay off screen, as does nothing else: borders are
// cells like any other and render bright black.
func (e *Engine) drawBoard(sb *strings.Builder, cells []game.Cell) {
	e.boardDirty = false
	for row := 1; row < game.BoardRows-1; row++ {
		for col := 0; col < game.BoardCols; col++ {
			i := row*game.BoardCols + col
			if cells[i] == e.shadow[i] {
				continue
			}
			e.shadow[i] = cells[i]
			sb.WriteString(moveTo(col*cellWidth+boardLeft, row))
			sb.WriteString(bgColor(cells[i]))
			sb.WriteString("  ")
		}
	}
}

// drawPreview renders the next shape on its own small diffed grid, anchored
// so every catalog entry's offsets stay inside it.
func (e *Engine) drawPreview(sb *strings.Builder, next int) {
	grid := make([]game.Cell, previewRows*game.BoardCols)
	sh := game.ShapeAt(next)
	anchor := 2*game.BoardCols + 1
	grid[anchor] = sh.Color
	for _, off := range sh.Offsets {
		grid[anchor+off] = sh.Color
	}

	for row := 0; row < previewRows; row++ {
		for col := 0; col < game.BoardCols; col++ {
			i := row*game.BoardCols + col
			if grid[i] == e.shadowPreview[i] {
				continue
			}
			e.shadowPreview[i] = grid[i]
			sb.WriteString(moveTo(col*cellWidth+hudLeft, previewTop+1+row))
			sb.WriteString(bgColor(grid[i]))
			sb.WriteString("  ")
		}
	}
}

func (e *Engine) drawScore(sb *strings.Builder, snap game.Snapshot) {
	if snap.Level != e.lastLevel {
		e.lastLevel = snap.Level
		sb.WriteString(moveTo(hudLeft, 2))
		fmt.Fprintf(sb, "%sLevel  : %d", Reset, snap.Level)
	}
	if snap.Points != e.lastPoints {
		e.lastPoints = snap.Points
		sb.WriteString(moveTo(hudLeft, 3))
		fmt.Fprintf(sb, "%sPoints : %d", Reset, snap.Points)
	}
}

// endScreen replaces the playfield with the classic closing text. The next
// falling frame repaints from scratch.
func (e *Engine) endScreen(sb *strings.Builder, snap game.Snapshot) {
	sb.WriteString(ClearScreen)
	sb.WriteString(Reset)

	headline := "YOU HAVE FAILED!"
	if snap.Phase == game.PhaseWon {
		headline = "YOU HAVE WON"
	}
	fmt.Fprintf(sb, "\n\n%s\n\n", headline)
	fmt.Fprintf(sb, "Your score: %d points x level %d = %d\n\n",
		snap.Points, snap.Level, snap.Points*int64(snap.Level))
	fmt.Fprintf(sb, "Press '%s' for replay or '%s' for quit!\n",
		keyName(e.keys[7]), keyName(e.keys[6]))

	e.statics = false
}
