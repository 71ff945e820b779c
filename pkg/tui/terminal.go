// ABOUTME: Terminal coordinates one Device, an ordered list of Elements and an optional stdout redirection
// ABOUTME: All state sits behind one mutex; elements call back through a Scope instead of relocking

package tui

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mauromedda/gterm/internal/log"
	"github.com/mauromedda/gterm/pkg/tui/ansi"
	"github.com/mauromedda/gterm/pkg/tui/redirect"
	"github.com/mauromedda/gterm/pkg/tui/terminal"
)

// BufferSize is the terminal geometry in character cells.
type BufferSize = terminal.BufferSize

// ErrClosed is returned by Init after Close.
var ErrClosed = errors.New("terminal closed")

type state uint8

const (
	stateUninitialized state = iota
	stateInitialized
	stateClosed
)

// Option configures a Terminal.
type Option func(*Terminal)

// WithDevice replaces the process device, typically with a VirtualDevice.
func WithDevice(d terminal.Device) Option {
	return func(t *Terminal) { t.device = d }
}

// WithRedirectOptions configures the Redirector built by RedirectStdout.
func WithRedirectOptions(opts ...redirect.Option) Option {
	return func(t *Terminal) { t.redirectOpts = append(t.redirectOpts, opts...) }
}

// Terminal is safe for concurrent use. Typically one goroutine drives
// Update and Render while any number of producers call Output.
type Terminal struct {
	mu          sync.Mutex
	device      terminal.Device
	elements    []Element
	defaultSink Element
	size        BufferSize
	dirty       bool
	rowOffset   int
	state       state

	redirector   *redirect.Redirector
	redirectOpts []redirect.Option

	closeOnce sync.Once
}

var _ redirect.Sink = (*Terminal)(nil)

// New returns an uninitialised Terminal bound to the process's stdin and
// stdout unless WithDevice says otherwise.
func New(opts ...Option) *Terminal {
	t := &Terminal{}
	for _, opt := range opts {
		opt(t)
	}
	if t.device == nil {
		t.device = terminal.NewProcessDevice()
	}
	return t
}

// Device returns the underlying device, e.g. for terminal.RestoreOnPanic.
func (t *Terminal) Device() terminal.Device {
	return t.device
}

// Init opens the device, reads the geometry and enters raw mode. On error
// the Terminal stays unusable: Update and Render do nothing. Close is still
// required and undoes whatever part of Init succeeded.
func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch t.state {
	case stateInitialized:
		return nil
	case stateClosed:
		return fmt.Errorf("init terminal: %w", ErrClosed)
	}

	if err := t.device.Open(); err != nil {
		return fmt.Errorf("init terminal: open: %w", err)
	}
	size, err := t.device.Size()
	if err != nil {
		return fmt.Errorf("init terminal: size: %w", err)
	}
	if err := t.device.EnterRawMode(); err != nil {
		return fmt.Errorf("init terminal: raw mode: %w", err)
	}

	t.size = size
	t.state = stateInitialized
	t.dirty = true
	return nil
}

// Close uninstalls any redirection and restores the device mode. Only the
// first call does anything; teardown errors are logged and swallowed.
func (t *Terminal) Close() error {
	t.closeOnce.Do(func() {
		t.mu.Lock()
		r := t.redirector
		t.redirector = nil
		t.state = stateClosed
		t.mu.Unlock()

		// The pump delivers through Output, so the lock must be free here.
		if r != nil {
			r.Uninstall()
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		if err := t.device.ExitRawMode(); err != nil {
			log.Warn("terminal: exit raw mode: %v", err)
		}
		if err := t.device.Flush(); err != nil {
			log.Debug("terminal: flush on close: %v", err)
		}
	})
	return nil
}

// locked runs fn with the lock held and a Scope writing to out, then runs
// the callbacks fn deferred once the lock is released.
func (t *Terminal) locked(out io.Writer, fn func(*Scope)) {
	s := &Scope{t: t, out: out}
	func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		fn(s)
	}()
	s.runDeferred()
}

// Do runs fn under the Terminal lock. Element accessors use it to read
// state consistently with rendering.
func (t *Terminal) Do(fn func(*Scope)) {
	t.locked(t.device, fn)
}

// Output formats a line and delivers it to the default output element. It
// does nothing for an empty format or when no element accepts text.
func (t *Terminal) Output(format string, args ...any) {
	t.locked(t.device, func(s *Scope) {
		s.Output(format, args...)
	})
}

// AddElement appends e, binds it to t and returns it. The first element
// accepting text becomes the default output.
func (t *Terminal) AddElement(e Element) Element {
	if e == nil {
		return nil
	}
	e.Bind(t)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.elements = append(t.elements, e)
	if t.defaultSink == nil && e.Capabilities().Has(CapTextInput) {
		t.defaultSink = e
	}
	t.dirty = true
	return e
}

// Add is AddElement preserving the concrete type.
func Add[E Element](t *Terminal, e E) E {
	t.AddElement(e)
	return e
}

// DefaultOutput returns the element Output delivers to, or nil.
func (t *Terminal) DefaultOutput() Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.defaultSink
}

// Elements returns a copy of the element list in insertion order.
func (t *Terminal) Elements() []Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Element, len(t.elements))
	copy(out, t.elements)
	return out
}

// Update polls the device once without blocking, dispatches every key event
// to the key-input elements in insertion order and propagates a size change.
func (t *Terminal) Update() {
	t.locked(t.device, func(s *Scope) {
		if t.state != stateInitialized {
			return
		}

		in, err := t.device.Poll()
		if err != nil {
			log.Debug("terminal: poll: %v", err)
		}

		for _, ev := range in.Events {
			for _, e := range t.elements {
				if e.Capabilities().Has(CapKeyInput) {
					e.OnKeyInput(s, ev)
				}
			}
		}

		if in.Resized && in.Size != t.size {
			t.size = in.Size
			for _, e := range t.elements {
				e.OnSizeChanged(s, in.Size)
			}
			t.dirty = true
		}
	})
}

// Render redraws the whole screen if anything changed since the last call.
// The frame is assembled in memory and written with a single flush.
func (t *Terminal) Render() {
	frame := acquireFrame()
	defer releaseFrame(frame)

	t.locked(frame, func(s *Scope) {
		if !t.dirty || t.state != stateInitialized {
			return
		}
		t.dirty = false

		frame.WriteString(ansi.CursorPosition(1, 1))
		frame.WriteString(ansi.EraseDisplay(ansi.EraseFromCursor))
		frame.WriteString(ansi.EraseDisplay(ansi.EraseScrollback))
		if t.rowOffset > 0 {
			frame.WriteString(ansi.CursorPosition(t.rowOffset+1, 1))
		}

		for _, e := range t.elements {
			if e.Capabilities().Has(CapRender) {
				e.Render(s)
			}
		}

		if _, err := t.device.Write(frame.Bytes()); err != nil {
			log.Debug("terminal: write frame: %v", err)
		}
		if err := t.device.Flush(); err != nil {
			log.Debug("terminal: flush frame: %v", err)
		}
	})
}

// Invalidate marks the screen stale.
func (t *Terminal) Invalidate() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dirty = true
}

// Size returns the last known geometry.
func (t *Terminal) Size() BufferSize {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// SetRowOffset reserves n rows at the top that the element pass skips.
// Negative values are treated as zero.
func (t *Terminal) SetRowOffset(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 0 {
		n = 0
	}
	if n != t.rowOffset {
		t.rowOffset = n
		t.dirty = true
	}
}

// RowOffset returns the number of reserved rows.
func (t *Terminal) RowOffset() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rowOffset
}

// emit writes seq straight to the device and flushes.
func (t *Terminal) emit(seq string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := io.WriteString(t.device, seq); err != nil {
		log.Debug("terminal: write: %v", err)
		return
	}
	if err := t.device.Flush(); err != nil {
		log.Debug("terminal: flush: %v", err)
	}
}

// SaveCursorPosition emits ESC[s.
func (t *Terminal) SaveCursorPosition() {
	t.emit(ansi.SaveCursor)
}

// RestoreCursorPosition emits ESC[u.
func (t *Terminal) RestoreCursorPosition() {
	t.emit(ansi.RestoreCursor)
}

// MoveCursor positions the cursor at the 1-based row and column.
func (t *Terminal) MoveCursor(row, col int) {
	t.emit(ansi.CursorPosition(row, col))
}

// ClearTerminalBuffer homes the cursor and erases the screen and scrollback.
func (t *Terminal) ClearTerminalBuffer() {
	t.emit(ansi.CursorPosition(1, 1) +
		ansi.EraseDisplay(ansi.EraseFromCursor) +
		ansi.EraseDisplay(ansi.EraseScrollback))
}

// RedirectStdout captures os.Stdout (or the stream set through
// WithRedirectOptions) and feeds each line to Output. It returns
// redirect.ErrAlreadyInstalled while a capture is active.
func (t *Terminal) RedirectStdout() error {
	t.mu.Lock()
	if t.state == stateClosed {
		t.mu.Unlock()
		return ErrClosed
	}
	if t.redirector == nil {
		t.redirector = redirect.New(t, t.redirectOpts...)
	}
	r := t.redirector
	t.mu.Unlock()

	if err := r.Install(); err != nil {
		return fmt.Errorf("redirect stdout: %w", err)
	}
	return nil
}

// RestoreStdout ends the capture started by RedirectStdout, delivering any
// partial line still buffered. No-op when nothing is captured.
func (t *Terminal) RestoreStdout() {
	t.mu.Lock()
	r := t.redirector
	t.mu.Unlock()

	if r != nil {
		r.Uninstall()
	}
}

// Redirecting reports whether stdout is currently captured.
func (t *Terminal) Redirecting() bool {
	t.mu.Lock()
	r := t.redirector
	t.mu.Unlock()
	return r != nil && r.Installed()
}
