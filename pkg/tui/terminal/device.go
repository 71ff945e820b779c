// ABOUTME: Device is the platform I/O adapter: handles, raw mode, geometry, non-blocking input
// ABOUTME: ProcessDevice implements it per OS; VirtualDevice implements it for tests

package terminal

import (
	"errors"

	"github.com/mauromedda/gterm/pkg/tui/key"
)

var (
	// ErrInvalidHandle is returned by Open when an input or output handle is unusable.
	ErrInvalidHandle = errors.New("invalid terminal handle")
	// ErrNotTerminal is returned by Open when the input is not a terminal.
	ErrNotTerminal = errors.New("input is not a terminal")
	// ErrUnsupported is returned on platforms without a raw-mode implementation.
	ErrUnsupported = errors.New("terminal device not supported on this platform")
)

// BufferSize is the terminal geometry in character cells.
type BufferSize struct {
	Columns int
	Rows    int
}

// Input is the result of one Poll. Size is only meaningful when Resized is set.
type Input struct {
	Events  []key.Event
	Resized bool
	Size    BufferSize
}

// Device abstracts the terminal the process is attached to.
//
// Open, Size and EnterRawMode are called once, in that order, during
// initialisation. ExitRawMode must be safe to call at any point, including
// when EnterRawMode never ran or failed. Poll must never block.
type Device interface {
	Open() error
	Size() (BufferSize, error)
	EnterRawMode() error
	ExitRawMode() error
	Poll() (Input, error)
	Write(p []byte) (n int, err error)
	Flush() error
}
