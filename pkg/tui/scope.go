// ABOUTME: Scope is the Terminal as seen from inside its lock
// ABOUTME: Elements call back through it instead of re-entering the Terminal's mutex

package tui

import (
	"fmt"
	"io"

	"github.com/mauromedda/gterm/pkg/tui/ansi"
)

// Scope is only valid for the duration of the call it was passed to.
type Scope struct {
	t        *Terminal
	out      io.Writer
	deferred []func()
}

// Terminal returns the owning Terminal. Do not call its public methods while
// the Scope is live; use Defer for that.
func (s *Scope) Terminal() *Terminal {
	return s.t
}

// Output formats a line and hands it to the default output sink.
// An empty format or a missing sink is silently ignored.
func (s *Scope) Output(format string, args ...any) {
	if format == "" || s.t.defaultSink == nil {
		return
	}
	s.t.defaultSink.OnInput(s, fmt.Sprintf(format, args...))
}

// Invalidate marks the screen stale so the next Render redraws it.
func (s *Scope) Invalidate() {
	s.t.dirty = true
}

// Size returns the current geometry.
func (s *Scope) Size() BufferSize {
	return s.t.size
}

// RowOffset returns the number of reserved header rows.
func (s *Scope) RowOffset() int {
	return s.t.rowOffset
}

// Write sends bytes to the current frame while rendering, otherwise to the device.
func (s *Scope) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

// WriteString is Write for strings.
func (s *Scope) WriteString(str string) {
	_, _ = io.WriteString(s.out, str)
}

// SaveCursorPosition emits ESC[s.
func (s *Scope) SaveCursorPosition() {
	s.WriteString(ansi.SaveCursor)
}

// RestoreCursorPosition emits ESC[u.
func (s *Scope) RestoreCursorPosition() {
	s.WriteString(ansi.RestoreCursor)
}

// MoveCursor positions the cursor at the 1-based row and column.
func (s *Scope) MoveCursor(row, col int) {
	s.WriteString(ansi.CursorPosition(row, col))
}

// Defer queues fn to run on the same goroutine once the Terminal lock is
// released, in queue order. Callbacks that may call public Terminal methods
// go here.
func (s *Scope) Defer(fn func()) {
	if fn != nil {
		s.deferred = append(s.deferred, fn)
	}
}

func (s *Scope) runDeferred() {
	for _, fn := range s.deferred {
		fn()
	}
}
