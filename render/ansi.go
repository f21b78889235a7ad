package render

import (
	"fmt"

	"github.com/julmajustus/tetris/game"
)

const (
	esc = "\x1b"
	csi = esc + "["

	// Reset drops all SGR attributes.
	Reset = csi + "0m"

	// ClearScreen wipes the terminal and homes the cursor.
	ClearScreen = csi + "2J" + csi + "1;1H"

	// HideCursor and ShowCursor toggle the terminal cursor.
	HideCursor = csi + "?25l"
	ShowCursor = csi + "?25h"
)

// moveTo positions the cursor at col, row (1-based).
func moveTo(col, row int) string {
	return fmt.Sprintf("%s%d;%dH", csi, row, col)
}

// bgColor selects the background for a board cell. Tags map straight onto
// SGR background codes: 1..7 become 41..47 and the border tag lands on the
// bright-black 100. Empty resets instead, so cleared cells show the
// terminal's own background.
func bgColor(c game.Cell) string {
	if c == game.Empty {
		return Reset
	}
	return fmt.Sprintf("%s%dm", csi, int(c)+40)
}
