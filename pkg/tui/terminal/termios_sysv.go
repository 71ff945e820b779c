// ABOUTME: termios ioctl request numbers for Linux, AIX and Solaris
// ABOUTME: Split by build tag because the BSD family and SysV family name them differently

//go:build aix || linux || solaris

package terminal

import "golang.org/x/sys/unix"

const (
	ioctlReadTermios  = unix.TCGETS
	ioctlWriteTermios = unix.TCSETS
)
