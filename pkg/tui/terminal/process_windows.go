// ABOUTME: Windows ProcessDevice: console modes, screen buffer geometry, console input records
// ABOUTME: Size changes arrive as discrete WINDOW_BUFFER_SIZE records rather than by re-query

//go:build windows

package terminal

import (
	"fmt"

	"github.com/erikgeiser/coninput"
	"golang.org/x/sys/windows"

	"github.com/mauromedda/gterm/pkg/tui/key"
)

// recordBatch bounds how many input records one Poll reads.
const recordBatch = 10

type rawState struct {
	inMode  uint32
	outMode uint32
}

func stdHandle(std uint32) Handle {
	h, err := windows.GetStdHandle(std)
	if err != nil {
		return Handle{}
	}
	return Console(uintptr(h))
}

// Open acquires the console input and output handles.
func (d *ProcessDevice) Open() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var in, out Handle
	switch {
	case d.std:
		in = stdHandle(windows.STD_INPUT_HANDLE)
		out = stdHandle(windows.STD_OUTPUT_HANDLE)
	case d.inFile != nil && d.outFile != nil:
		in = Console(d.inFile.Fd())
		out = Console(d.outFile.Fd())
	}
	if !in.Valid() || !out.Valid() {
		return ErrInvalidHandle
	}

	d.in, d.out = in, out
	return nil
}

// Size reads the console screen buffer dimensions.
func (d *ProcessDevice) Size() (BufferSize, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	h, ok := d.out.Console()
	if !ok {
		return BufferSize{}, ErrInvalidHandle
	}
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(windows.Handle(h), &info); err != nil {
		return BufferSize{}, fmt.Errorf("getting console buffer info: %w", err)
	}
	d.last = BufferSize{Columns: int(info.Size.X), Rows: int(info.Size.Y)}
	return d.last, nil
}

// EnterRawMode turns off echo and line input, asks for window size records
// and enables virtual terminal processing on the output handle.
func (d *ProcessDevice) EnterRawMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.raw {
		return nil
	}
	inH, okIn := d.in.Console()
	outH, okOut := d.out.Console()
	if !okIn || !okOut {
		return ErrInvalidHandle
	}
	in, out := windows.Handle(inH), windows.Handle(outH)

	var inMode, outMode uint32
	if err := windows.GetConsoleMode(in, &inMode); err != nil {
		return fmt.Errorf("reading console input mode: %w", err)
	}
	if err := windows.GetConsoleMode(out, &outMode); err != nil {
		return fmt.Errorf("reading console output mode: %w", err)
	}

	rawIn := inMode&^(windows.ENABLE_ECHO_INPUT|windows.ENABLE_LINE_INPUT) | windows.ENABLE_WINDOW_INPUT
	if err := windows.SetConsoleMode(in, rawIn); err != nil {
		return fmt.Errorf("setting console input mode: %w", err)
	}
	if err := windows.SetConsoleMode(out, outMode|windows.ENABLE_VIRTUAL_TERMINAL_PROCESSING); err != nil {
		_ = windows.SetConsoleMode(in, inMode)
		return fmt.Errorf("enabling virtual terminal processing: %w", err)
	}

	d.state = rawState{inMode: inMode, outMode: outMode}
	d.raw = true
	return nil
}

// ExitRawMode restores both console modes. No-op unless raw mode is active.
func (d *ProcessDevice) ExitRawMode() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.raw {
		return nil
	}
	inH, _ := d.in.Console()
	outH, _ := d.out.Console()

	errIn := windows.SetConsoleMode(windows.Handle(inH), d.state.inMode)
	errOut := windows.SetConsoleMode(windows.Handle(outH), d.state.outMode)
	d.raw = false
	if errIn != nil {
		return fmt.Errorf("restoring console input mode: %w", errIn)
	}
	if errOut != nil {
		return fmt.Errorf("restoring console output mode: %w", errOut)
	}
	return nil
}

// Poll reads pending console records without waiting.
func (d *ProcessDevice) Poll() (Input, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var in Input
	h, ok := d.in.Console()
	if !ok {
		return in, ErrInvalidHandle
	}
	con := windows.Handle(h)

	ev, err := windows.WaitForSingleObject(con, 0)
	if err != nil {
		return in, fmt.Errorf("waiting on console input: %w", err)
	}
	if ev != windows.WAIT_OBJECT_0 {
		return in, nil
	}

	n, err := coninput.GetNumberOfConsoleInputEvents(con)
	if err != nil {
		return in, fmt.Errorf("counting console input: %w", err)
	}
	if n == 0 {
		return in, nil
	}
	if n > recordBatch {
		n = recordBatch
	}

	records, err := coninput.ReadNConsoleInputs(con, n)
	if err != nil {
		return in, fmt.Errorf("reading console input: %w", err)
	}

	for _, rec := range records {
		switch e := rec.Unwrap().(type) {
		case coninput.KeyEventRecord:
			in.Events = append(in.Events, key.Event{
				Pressed:        e.KeyDown,
				RepeatCount:    e.RepeatCount,
				VirtualKeyCode: uint16(e.VirtualKeyCode),
				ScanCode:       uint16(e.VirtualScanCode),
				Char:           byte(e.Char),
				Modifiers:      key.Modifier(e.ControlKeyState),
			})
		case coninput.WindowBufferSizeEventRecord:
			size := BufferSize{Columns: int(e.Size.X), Rows: int(e.Size.Y)}
			if size != d.last {
				d.last = size
				in.Resized = true
				in.Size = size
			}
		}
	}
	return in, nil
}
