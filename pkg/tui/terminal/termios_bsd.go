// ABOUTME: termios ioctl request numbers for BSD-derived systems including macOS
// ABOUTME: Split by build tag because the BSD family and SysV family name them differently

//go:build darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TIOCGETA
	ioctlWriteTermios = unix.TIOCSETA
)
