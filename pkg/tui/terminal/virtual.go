// ABOUTME: VirtualDevice implements Device for tests without a real TTY
// ABOUTME: Queued key events and resizes are returned by Poll; output is captured in memory

package terminal

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/mauromedda/gterm/pkg/tui/key"
)

// VirtualDevice is a fake Device for unit tests.
type VirtualDevice struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	size    BufferSize
	events  []key.Event
	resize  *BufferSize
	rawMode bool
	opened  bool

	openErr error
	sizeErr error
	rawErr  error

	enterCount int
	exitCount  int
	flushCount int
	pollCount  int
}

// NewVirtualDevice returns a VirtualDevice with the given geometry.
func NewVirtualDevice(columns, rows int) *VirtualDevice {
	return &VirtualDevice{size: BufferSize{Columns: columns, Rows: rows}}
}

// Open records the call or returns the injected error.
func (v *VirtualDevice) Open() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.openErr != nil {
		return v.openErr
	}
	v.opened = true
	return nil
}

// Size returns the configured geometry or the injected error.
func (v *VirtualDevice) Size() (BufferSize, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.sizeErr != nil {
		return BufferSize{}, v.sizeErr
	}
	return v.size, nil
}

// EnterRawMode records a raw-mode entry.
func (v *VirtualDevice) EnterRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.rawErr != nil {
		return v.rawErr
	}
	v.rawMode = true
	v.enterCount++
	return nil
}

// ExitRawMode records a raw-mode exit. Like a real device it does nothing
// when raw mode is not active.
func (v *VirtualDevice) ExitRawMode() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.rawMode {
		return nil
	}
	v.rawMode = false
	v.exitCount++
	return nil
}

// Poll hands out everything queued by Feed, FeedBytes and Resize.
func (v *VirtualDevice) Poll() (Input, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.pollCount++
	in := Input{Events: v.events}
	v.events = nil
	if v.resize != nil {
		in.Resized = true
		in.Size = *v.resize
		v.resize = nil
	}
	return in, nil
}

// Write appends data to the internal buffer.
func (v *VirtualDevice) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	n, err := v.buf.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to virtual buffer: %w", err)
	}
	return n, nil
}

// Flush counts flushes.
func (v *VirtualDevice) Flush() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.flushCount++
	return nil
}

// --- Test helpers (not part of Device) ---

// Feed queues key events for the next Poll.
func (v *VirtualDevice) Feed(events ...key.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.events = append(v.events, events...)
}

// FeedBytes decodes data as a POSIX tty would and queues the result.
func (v *VirtualDevice) FeedBytes(data string) {
	v.Feed(key.Decode([]byte(data))...)
}

// Resize changes the geometry and queues a size notification.
func (v *VirtualDevice) Resize(columns, rows int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.size = BufferSize{Columns: columns, Rows: rows}
	size := v.size
	v.resize = &size
}

// FailOpen, FailSize and FailRawMode inject errors for the matching call.
func (v *VirtualDevice) FailOpen(err error) {
	v.mu.Lock()
	v.openErr = err
	v.mu.Unlock()
}

func (v *VirtualDevice) FailSize(err error) {
	v.mu.Lock()
	v.sizeErr = err
	v.mu.Unlock()
}

func (v *VirtualDevice) FailRawMode(err error) {
	v.mu.Lock()
	v.rawErr = err
	v.mu.Unlock()
}

// Output returns everything written so far.
func (v *VirtualDevice) Output() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.buf.String()
}

// Reset clears the output buffer.
func (v *VirtualDevice) Reset() {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.buf.Reset()
}

// IsRawMode reports whether raw mode is currently active.
func (v *VirtualDevice) IsRawMode() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.rawMode
}

// IsOpen reports whether Open succeeded.
func (v *VirtualDevice) IsOpen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.opened
}

// EnterCount returns how many times raw mode was entered.
func (v *VirtualDevice) EnterCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.enterCount
}

// ExitCount returns how many times raw mode was actually left.
func (v *VirtualDevice) ExitCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.exitCount
}

// FlushCount returns how many times Flush was called.
func (v *VirtualDevice) FlushCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.flushCount
}

// PollCount returns how many times Poll was called.
func (v *VirtualDevice) PollCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return v.pollCount
}
