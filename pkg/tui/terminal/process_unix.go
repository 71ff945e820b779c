// ABOUTME: POSIX ProcessDevice: termios raw mode with VMIN=0/VTIME=0, TIOCGWINSZ geometry
// ABOUTME: Poll is poll-then-read with a zero timeout, flushes stale escape prefixes and re-queries the window size

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris

package terminal

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/mauromedda/gterm/pkg/tui/key"
)

const (
	readBufSize     = 256
	maxReadsPerPoll = 16
)

type rawState struct {
	termios *unix.Termios
	decoder key.Decoder
	buf     []byte
}

// Open validates the input and output descriptors.
func (d *ProcessDevice) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.inFile == nil || d.outFile == nil {
		return ErrInvalidHandle
	}
	in := FD(int(d.inFile.Fd()))
	out := FD(int(d.outFile.Fd()))
	if !in.Valid() || !out.Valid() {
		return ErrInvalidHandle
	}
	if !term.IsTerminal(in.fd) {
		return fmt.Errorf("%w: %s", ErrNotTerminal, in)
	}

	d.in, d.out = in, out
	d.state.buf = make([]byte, readBufSize)
	return nil
}

// Size queries the window size of the output descriptor.
func (d *ProcessDevice) Size() (BufferSize, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	size, err := d.querySize()
	if err != nil {
		return BufferSize{}, err
	}
	d.last = size
	return size, nil
}

func (d *ProcessDevice) querySize() (BufferSize, error) {
	fd, ok := d.out.FD()
	if !ok {
		return BufferSize{}, ErrInvalidHandle
	}
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return BufferSize{}, fmt.Errorf("getting terminal size: %w", err)
	}
	return BufferSize{Columns: int(ws.Col), Rows: int(ws.Row)}, nil
}

// EnterRawMode disables echo and canonical mode and makes reads return
// immediately. The previous termios is kept for ExitRawMode.
func (d *ProcessDevice) EnterRawMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.raw {
		return nil
	}
	fd, ok := d.in.FD()
	if !ok {
		return ErrInvalidHandle
	}

	t, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("reading termios: %w", err)
	}
	saved := *t

	t.Lflag &^= unix.ECHO | unix.ICANON
	t.Cc[unix.VMIN] = 0
	t.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, t); err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}

	d.state.termios = &saved
	d.raw = true
	return nil
}

// ExitRawMode re-applies the saved termios. No-op unless raw mode is active.
func (d *ProcessDevice) ExitRawMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.raw || d.state.termios == nil {
		return nil
	}
	fd, _ := d.in.FD()
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, d.state.termios); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	d.raw = false
	return nil
}

// Poll drains whatever input is ready without waiting and reports a new
// geometry when it differs from the last one seen. Several resizes between
// two polls collapse into the latest.
func (d *ProcessDevice) Poll() (Input, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var in Input
	fd, ok := d.in.FD()
	if !ok {
		return in, ErrInvalidHandle
	}

	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	read := false
	for range maxReadsPerPoll {
		n, err := unix.Poll(fds, 0)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return in, fmt.Errorf("polling terminal input: %w", err)
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			break
		}

		rn, err := unix.Read(fd, d.state.buf)
		if err != nil {
			if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
				break
			}
			return in, fmt.Errorf("reading terminal input: %w", err)
		}
		if rn <= 0 {
			break
		}
		read = true
		in.Events = append(in.Events, d.state.decoder.Decode(d.state.buf[:rn])...)
		if rn < len(d.state.buf) {
			break
		}
	}

	// A prefix nobody completed in time was typed, e.g. Alt+[ or a lone ESC.
	if !read && d.state.decoder.Expired(time.Now(), key.EscTimeout) {
		in.Events = append(in.Events, d.state.decoder.Flush()...)
	}

	size, err := d.querySize()
	if err == nil && size != d.last {
		d.last = size
		in.Resized = true
		in.Size = size
	}
	return in, nil
}
