// ABOUTME: Element is the single flat interface for everything a Terminal renders or feeds input to
// ABOUTME: Capabilities declare which optional behaviours the Terminal dispatches to

package tui

import (
	"sync/atomic"

	"github.com/mauromedda/gterm/pkg/tui/key"
)

// Capability is a bitmask of optional Element behaviours.
type Capability uint8

const (
	// CapRender elements are painted on every redraw.
	CapRender Capability = 1 << iota
	// CapKeyInput elements receive every key event from Update.
	CapKeyInput
	// CapTextInput elements accept injected text lines. The first one added
	// becomes the Terminal's default output sink.
	CapTextInput
)

// Has reports whether all bits of want are set.
func (c Capability) Has(want Capability) bool {
	return c&want == want
}

// Element is a unit of display and/or input owned by a Terminal.
//
// Every method except Capabilities and Bind is called with the Terminal lock
// held and receives a Scope for calling back into the Terminal. Elements must
// use the Scope, never the Terminal's public methods, from inside these calls.
type Element interface {
	Capabilities() Capability
	// Bind sets the owning Terminal. Only the first call has an effect.
	Bind(t *Terminal)
	Render(s *Scope)
	OnKeyInput(s *Scope, ev key.Event)
	OnInput(s *Scope, text string)
	OnSizeChanged(s *Scope, size BufferSize)
}

// Base provides the back-reference and no-op defaults. Embed it and
// override what the element supports.
type Base struct {
	term atomic.Pointer[Terminal]
}

// Bind records t as the owner unless one is already set.
func (b *Base) Bind(t *Terminal) {
	b.term.CompareAndSwap(nil, t)
}

// Terminal returns the owning Terminal, or nil before AddElement.
func (b *Base) Terminal() *Terminal {
	return b.term.Load()
}

// Locked runs fn under the owner's lock, or directly when unbound.
func (b *Base) Locked(fn func()) {
	if t := b.Terminal(); t != nil {
		t.Do(func(*Scope) { fn() })
		return
	}
	fn()
}

// Change runs fn under the owner's lock and marks the screen stale in the
// same critical section, or just runs fn when unbound.
func (b *Base) Change(fn func()) {
	if t := b.Terminal(); t != nil {
		t.Do(func(s *Scope) {
			fn()
			s.Invalidate()
		})
		return
	}
	fn()
}

func (b *Base) Render(*Scope) {}
func (b *Base) OnKeyInput(*Scope, key.Event) {}
func (b *Base) OnInput(*Scope, string) {}
func (b *Base) OnSizeChanged(*Scope, BufferSize) {}
