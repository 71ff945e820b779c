// ABOUTME: ProcessDevice stub for platforms without termios or a Windows console
// ABOUTME: Every operation reports ErrUnsupported; ExitRawMode is a harmless no-op

//go:build !(aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || windows)

package terminal

type rawState struct{}

func (d *ProcessDevice) Open() error { return ErrUnsupported }
func (d *ProcessDevice) Size() (BufferSize, error) { return BufferSize{}, ErrUnsupported }
func (d *ProcessDevice) EnterRawMode() error { return ErrUnsupported }
func (d *ProcessDevice) ExitRawMode() error { return nil }
func (d *ProcessDevice) Poll() (Input, error) { return Input{}, ErrUnsupported }
