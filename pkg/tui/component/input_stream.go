// ABOUTME: TextInputStream is a single-line byte editor rendered under a green prompt
// ABOUTME: Enter echoes the line to the default output and fires the commit callbacks

package component

import (
	"github.com/mauromedda/gterm/pkg/tui"
	"github.com/mauromedda/gterm/pkg/tui/ansi"
	"github.com/mauromedda/gterm/pkg/tui/callback"
	"github.com/mauromedda/gterm/pkg/tui/key"
)

// DefaultPrompt is the label drawn before the live buffer.
const DefaultPrompt = "INPUT> "

// TextInputStream edits raw bytes: printable keys append, Backspace removes
// the last byte, Enter commits. Alt chords and cursor movement are ignored.
type TextInputStream struct {
	tui.Base
	buf    []byte
	prompt string
	commit callback.Registry[string]
}

var _ tui.Element = (*TextInputStream)(nil)

// NewTextInputStream returns an empty editor with DefaultPrompt.
func NewTextInputStream() *TextInputStream {
	return &TextInputStream{prompt: DefaultPrompt}
}

// Capabilities implements tui.Element.
func (in *TextInputStream) Capabilities() tui.Capability {
	return tui.CapRender | tui.CapKeyInput
}

// OnCommit returns the registry fired with each committed line. Callbacks
// run after the Terminal lock is released, so they may call the Terminal.
func (in *TextInputStream) OnCommit() *callback.Registry[string] {
	return &in.commit
}

// OnKeyInput implements tui.Element. Key-up events are ignored.
func (in *TextInputStream) OnKeyInput(s *tui.Scope, ev key.Event) {
	if !ev.Pressed {
		return
	}

	switch {
	case ev.IsEnter():
		if len(in.buf) == 0 {
			return
		}
		line := string(in.buf)
		in.buf = in.buf[:0]
		s.Output("%s\n", line)
		s.Invalidate()
		s.Defer(func() { in.commit.Call(line) })

	case ev.IsBackspace():
		if len(in.buf) == 0 {
			return
		}
		in.buf = in.buf[:len(in.buf)-1]
		s.Invalidate()

	case ev.IsText():
		n := int(ev.RepeatCount)
		if n < 1 {
			n = 1
		}
		for range n {
			in.buf = append(in.buf, ev.Char)
		}
		s.Invalidate()
	}
}

// Render draws the prompt on a fresh line followed by the buffer.
func (in *TextInputStream) Render(s *tui.Scope) {
	s.WriteString("\n" + ansi.Fg(ansi.Green) + in.prompt + ansi.Reset)
	_, _ = s.Write(in.buf)
}

// Text returns the uncommitted buffer.
func (in *TextInputStream) Text() string {
	var text string
	in.Locked(func() { text = string(in.buf) })
	return text
}

// SetPrompt replaces the prompt label.
func (in *TextInputStream) SetPrompt(prompt string) {
	in.Change(func() { in.prompt = prompt })
}
