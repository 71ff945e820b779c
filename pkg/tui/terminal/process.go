// ABOUTME: ProcessDevice implements Device on the files the process is attached to
// ABOUTME: Output is buffered; raw-mode state lives in the instance and is restored by ExitRawMode

package terminal

import (
	"bufio"
	"fmt"
	"os"
	"sync"
)

const outputBufferSize = 16 * 1024

// ProcessDevice is a real terminal. The platform files implement Open, Size,
// EnterRawMode, ExitRawMode and Poll.
type ProcessDevice struct {
	mu      sync.Mutex
	inFile  *os.File
	outFile *os.File
	std     bool
	in      Handle
	out     Handle
	w       *bufio.Writer
	raw     bool
	last    BufferSize
	state   rawState
}

// NewProcessDevice returns a device bound to the process standard input and
// output. The files are captured now, so a later swap of os.Stdout (see the
// redirect package) does not reroute rendering.
func NewProcessDevice() *ProcessDevice {
	d := NewFileDevice(os.Stdin, os.Stdout)
	d.std = true
	return d
}

// NewFileDevice returns a device reading from in and writing to out,
// typically the two ends of a pseudo terminal.
func NewFileDevice(in, out *os.File) *ProcessDevice {
	d := &ProcessDevice{
		inFile:  in,
		outFile: out,
	}
	if out != nil {
		d.w = bufio.NewWriterSize(out, outputBufferSize)
	}
	return d
}

// Handles returns the input and output handles acquired by Open.
func (d *ProcessDevice) Handles() (in, out Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.in, d.out
}

// IsRawMode reports whether EnterRawMode succeeded and has not been undone.
func (d *ProcessDevice) IsRawMode() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.raw
}

// Write buffers p for the output file. Call Flush to send it.
func (d *ProcessDevice) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.w == nil {
		return 0, ErrInvalidHandle
	}
	n, err := d.w.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// Flush sends buffered output to the terminal.
func (d *ProcessDevice) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.w == nil {
		return ErrInvalidHandle
	}
	if err := d.w.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}
