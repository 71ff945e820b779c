// ABOUTME: ANSI escape sequences used by the terminal: cursor, erase, SGR colors
// ABOUTME: Byte-exact constants plus small builders for parameterised sequences

package ansi

import "strconv"

// CSI is the Control Sequence Introducer.
const CSI = "\x1b["

const (
	SaveCursor    = CSI + "s"
	RestoreCursor = CSI + "u"
	Reset         = CSI + "0m"
	ShowCursor    = CSI + "?25h"
)

// Erase display modes accepted by EraseDisplay.
const (
	EraseFromCursor = 0
	EraseScrollback = 3
)

// Color is one of the eight basic terminal colors.
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// CursorPosition moves the cursor to the 1-based row and column.
func CursorPosition(row, col int) string {
	return CSI + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "H"
}

// EraseDisplay emits ED with an explicit parameter, ESC[0J included.
func EraseDisplay(n int) string {
	return CSI + strconv.Itoa(n) + "J"
}

// Fg returns the SGR sequence selecting c as foreground (30-37).
func Fg(c Color) string {
	return CSI + strconv.Itoa(30+int(c&7)) + "m"
}

// Bg returns the SGR sequence selecting c as background (40-47).
func Bg(c Color) string {
	return CSI + strconv.Itoa(40+int(c&7)) + "m"
}
