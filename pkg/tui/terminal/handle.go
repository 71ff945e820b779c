// ABOUTME: Handle is a tagged variant over the two native handle shapes
// ABOUTME: File descriptors on POSIX systems, console HANDLE values on Windows

package terminal

import "fmt"

// HandleKind tags which representation a Handle carries.
type HandleKind uint8

const (
	HandleInvalid HandleKind = iota
	HandleFD
	HandleConsole
)

// Handle is either a file descriptor or a Windows console handle.
// The zero value is invalid.
type Handle struct {
	kind    HandleKind
	fd      int
	console uintptr
}

// FD wraps a POSIX file descriptor. Negative descriptors yield an invalid Handle.
func FD(fd int) Handle {
	if fd < 0 {
		return Handle{}
	}
	return Handle{kind: HandleFD, fd: fd}
}

// Console wraps a Windows console handle. 0 and INVALID_HANDLE_VALUE yield
// an invalid Handle.
func Console(h uintptr) Handle {
	if h == 0 || h == ^uintptr(0) {
		return Handle{}
	}
	return Handle{kind: HandleConsole, console: h}
}

// Kind returns the variant tag.
func (h Handle) Kind() HandleKind { return h.kind }

// Valid reports whether the Handle carries a usable value.
func (h Handle) Valid() bool { return h.kind != HandleInvalid }

// FD returns the descriptor when the Handle is a file descriptor.
func (h Handle) FD() (int, bool) {
	return h.fd, h.kind == HandleFD
}

// Console returns the console handle when the Handle is one.
func (h Handle) Console() (uintptr, bool) {
	return h.console, h.kind == HandleConsole
}

func (h Handle) String() string {
	switch h.kind {
	case HandleFD:
		return fmt.Sprintf("fd(%d)", h.fd)
	case HandleConsole:
		return fmt.Sprintf("console(%#x)", h.console)
	case HandleInvalid:
		return "invalid"
	}
	return "unknown"
}
