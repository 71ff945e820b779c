// ABOUTME: Banner draws a fixed string on one row, optionally centred on the terminal width
// ABOUTME: The cursor is saved and restored around it so the rest of the frame is unaffected

package component

import (
	"github.com/mauromedda/gterm/pkg/tui"
	"github.com/mauromedda/gterm/pkg/tui/width"
)

// Banner is render-only; it takes neither keys nor text.
type Banner struct {
	tui.Base
	text     string
	centered bool
	row      int
}

var _ tui.Element = (*Banner)(nil)

// NewBanner returns a banner on row 1.
func NewBanner(text string, centered bool) *Banner {
	return &Banner{text: text, centered: centered, row: 1}
}

// Capabilities implements tui.Element.
func (b *Banner) Capabilities() tui.Capability {
	return tui.CapRender
}

// Render implements tui.Element.
func (b *Banner) Render(s *tui.Scope) {
	col := 1
	if b.centered {
		col = width.Centre(width.VisibleWidth(b.text), s.Size().Columns)
	}
	s.SaveCursorPosition()
	s.MoveCursor(b.row, col)
	s.WriteString(b.text)
	s.RestoreCursorPosition()
}

// SetText replaces the displayed string.
func (b *Banner) SetText(text string) {
	b.Change(func() { b.text = text })
}

// SetRow moves the banner to the 1-based row. Values below 1 become 1.
func (b *Banner) SetRow(row int) {
	if row < 1 {
		row = 1
	}
	b.Change(func() { b.row = row })
}

// SetCentered toggles centring.
func (b *Banner) SetCentered(centered bool) {
	b.Change(func() { b.centered = centered })
}

// Text returns the displayed string.
func (b *Banner) Text() string {
	var text string
	b.Locked(func() { text = b.text })
	return text
}
