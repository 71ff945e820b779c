// ABOUTME: TextOutputStream is a scrolling log of text lines, optionally capped
// ABOUTME: It accepts injected text, so the first one added becomes a Terminal's default output

package component

import "github.com/mauromedda/gterm/pkg/tui"

// TextOutputStream renders its lines in arrival order. With a non-zero
// limit the oldest lines are dropped once the count exceeds it.
type TextOutputStream struct {
	tui.Base
	lines []string
	limit int
}

var _ tui.Element = (*TextOutputStream)(nil)

// NewTextOutputStream returns a stream keeping at most limit lines.
// A limit of 0 (or less) keeps everything.
func NewTextOutputStream(limit int) *TextOutputStream {
	if limit < 0 {
		limit = 0
	}
	return &TextOutputStream{limit: limit}
}

// Capabilities implements tui.Element.
func (o *TextOutputStream) Capabilities() tui.Capability {
	return tui.CapRender | tui.CapTextInput
}

// OnInput appends text verbatim and trims to the limit.
func (o *TextOutputStream) OnInput(s *tui.Scope, text string) {
	o.lines = append(o.lines, text)
	o.evict()
	s.Invalidate()
}

func (o *TextOutputStream) evict() {
	if o.limit == 0 || len(o.lines) <= o.limit {
		return
	}
	drop := len(o.lines) - o.limit
	clear(o.lines[:drop])
	o.lines = append(o.lines[:0], o.lines[drop:]...)
}

// Render writes every line as stored; lines carry their own newlines.
func (o *TextOutputStream) Render(s *tui.Scope) {
	for _, line := range o.lines {
		s.WriteString(line)
	}
}

// Lines returns a copy of the current content.
func (o *TextOutputStream) Lines() []string {
	var out []string
	o.Locked(func() {
		out = make([]string, len(o.lines))
		copy(out, o.lines)
	})
	return out
}

// Clear drops every line.
func (o *TextOutputStream) Clear() {
	o.Change(func() {
		clear(o.lines)
		o.lines = o.lines[:0]
	})
}

// Limit returns the line cap, 0 meaning unbounded.
func (o *TextOutputStream) Limit() int {
	var n int
	o.Locked(func() { n = o.limit })
	return n
}

// SetLimit changes the cap and trims immediately.
func (o *TextOutputStream) SetLimit(limit int) {
	if limit < 0 {
		limit = 0
	}
	o.Change(func() {
		o.limit = limit
		o.evict()
	})
}
