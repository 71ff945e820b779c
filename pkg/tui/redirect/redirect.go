// ABOUTME: Redirector captures a process-wide output stream (os.Stdout by default)
// ABOUTME: Bytes are line-buffered under one lock; complete lines go to a Sink once it is released

package redirect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
)

// DefaultCapacity is the partial-line buffer size.
const DefaultCapacity = 1024

// ErrAlreadyInstalled is returned by Install while a redirection is active.
var ErrAlreadyInstalled = errors.New("output redirection already installed")

// Sink receives captured lines. tui.Terminal implements it.
type Sink interface {
	Output(format string, args ...any)
}

// Option configures a Redirector.
type Option func(*Redirector)

// WithStream redirects the file variable at target instead of os.Stdout.
func WithStream(target **os.File) Option {
	return func(r *Redirector) { r.target = target }
}

// WithCapacity sets the partial-line buffer size. Values < 1 are ignored.
func WithCapacity(n int) Option {
	return func(r *Redirector) {
		if n > 0 {
			r.capacity = n
		}
	}
}

// Redirector is an io.Writer that turns arbitrary writes into whole lines.
// It can also install itself in place of a process output stream.
type Redirector struct {
	sink     Sink
	capacity int
	target   **os.File

	mu  sync.Mutex
	buf []byte

	// install state, guarded by stateMu so Install/Uninstall never wait on
	// a writer holding mu.
	stateMu   sync.Mutex
	installed bool
	previous  *os.File
	pipeR     *os.File
	pipeW     *os.File
	pumpDone  chan struct{}
}

// New returns a Redirector delivering lines to sink.
func New(sink Sink, opts ...Option) *Redirector {
	r := &Redirector{
		sink:     sink,
		capacity: DefaultCapacity,
		target:   &os.Stdout,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.buf = make([]byte, 0, r.capacity)
	return r
}

// Write appends p to the line buffer. Every newline completes a line; a full
// buffer is completed as a line of its own. Buffering is atomic with respect
// to other writers, so a line never mixes bytes from two calls made
// concurrently unless one of them left it unterminated. Completed lines are
// handed to the Sink after the buffer lock is released, in buffer order, so
// a Sink may write back into the Redirector.
func (r *Redirector) Write(p []byte) (int, error) {
	r.mu.Lock()
	var lines []string
	for _, b := range p {
		r.buf = append(r.buf, b)
		if b == '\n' || len(r.buf) >= r.capacity {
			lines = append(lines, r.takeLocked())
		}
	}
	r.mu.Unlock()

	r.deliver(lines...)
	return len(p), nil
}

// Flush emits any partial line still buffered.
func (r *Redirector) Flush() {
	r.mu.Lock()
	line := r.takeLocked()
	r.mu.Unlock()

	if line != "" {
		r.deliver(line)
	}
}

// takeLocked empties the buffer and returns its contents newline-terminated,
// or "" when nothing is buffered.
func (r *Redirector) takeLocked() string {
	if len(r.buf) == 0 {
		return ""
	}
	line := string(r.buf)
	if r.buf[len(r.buf)-1] != '\n' {
		line += "\n"
	}
	r.buf = r.buf[:0]
	return line
}

func (r *Redirector) deliver(lines ...string) {
	if r.sink == nil {
		return
	}
	for _, line := range lines {
		r.sink.Output("%s", line)
	}
}

// Installed reports whether the redirection is active.
func (r *Redirector) Installed() bool {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()
	return r.installed
}

// Install swaps the target stream for a pipe whose contents are fed to Write.
func (r *Redirector) Install() error {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()

	if r.installed {
		return ErrAlreadyInstalled
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("creating redirect pipe: %w", err)
	}

	r.previous = *r.target
	*r.target = pw
	r.pipeR, r.pipeW = pr, pw
	r.pumpDone = make(chan struct{})
	r.installed = true

	go r.pump(pr, r.pumpDone)
	return nil
}

// Uninstall restores the previous stream, drains the pipe and flushes the
// last partial line. No-op if not installed.
func (r *Redirector) Uninstall() {
	r.stateMu.Lock()
	defer r.stateMu.Unlock()

	if !r.installed {
		return
	}

	*r.target = r.previous
	_ = r.pipeW.Close()
	<-r.pumpDone
	_ = r.pipeR.Close()

	r.previous, r.pipeR, r.pipeW, r.pumpDone = nil, nil, nil, nil
	r.installed = false
	r.Flush()
}

func (r *Redirector) pump(src io.Reader, done chan<- struct{}) {
	defer close(done)
	_, _ = io.Copy(r, src)
}
