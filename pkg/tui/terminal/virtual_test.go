// ABOUTME: Tests for VirtualDevice: raw mode tracking, output capture, queued input and resize
// ABOUTME: Uses table-driven and parallel sub-tests like the rest of the package

package terminal

import (
	"errors"
	"sync"
	"testing"

	"github.com/mauromedda/gterm/pkg/tui/key"
)

// compile-time check: VirtualDevice must satisfy Device.
var _ Device = (*VirtualDevice)(nil)

func TestVirtualDevice_Size(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cols int
		rows int
	}{
		{name: "standard 80x24", cols: 80, rows: 24},
		{name: "wide 200x50", cols: 200, rows: 50},
		{name: "zero dimensions", cols: 0, rows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vd := NewVirtualDevice(tt.cols, tt.rows)

			got, err := vd.Size()
			if err != nil {
				t.Fatalf("Size() unexpected error: %v", err)
			}
			want := BufferSize{Columns: tt.cols, Rows: tt.rows}
			if got != want {
				t.Errorf("Size() = %+v, want %+v", got, want)
			}
		})
	}
}

func TestVirtualDevice_RawMode(t *testing.T) {
	t.Parallel()
	vd := NewVirtualDevice(80, 24)

	if err := vd.ExitRawMode(); err != nil {
		t.Fatalf("ExitRawMode() before enter: %v", err)
	}
	if vd.ExitCount() != 0 {
		t.Errorf("ExitCount() = %d, want 0 when raw mode was never entered", vd.ExitCount())
	}

	if err := vd.EnterRawMode(); err != nil {
		t.Fatalf("EnterRawMode() unexpected error: %v", err)
	}
	if !vd.IsRawMode() {
		t.Fatal("expected raw mode to be on after EnterRawMode")
	}

	for range 2 {
		if err := vd.ExitRawMode(); err != nil {
			t.Fatalf("ExitRawMode() unexpected error: %v", err)
		}
	}
	if vd.IsRawMode() {
		t.Fatal("expected raw mode to be off after ExitRawMode")
	}
	if vd.ExitCount() != 1 {
		t.Errorf("ExitCount() = %d, want 1", vd.ExitCount())
	}
}

func TestVirtualDevice_InjectedFailures(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	vd := NewVirtualDevice(80, 24)
	vd.FailOpen(boom)
	vd.FailSize(boom)
	vd.FailRawMode(boom)

	if err := vd.Open(); !errors.Is(err, boom) {
		t.Errorf("Open() = %v, want boom", err)
	}
	if _, err := vd.Size(); !errors.Is(err, boom) {
		t.Errorf("Size() = %v, want boom", err)
	}
	if err := vd.EnterRawMode(); !errors.Is(err, boom) {
		t.Errorf("EnterRawMode() = %v, want boom", err)
	}
	if vd.IsRawMode() {
		t.Error("failed EnterRawMode must not enable raw mode")
	}
}

func TestVirtualDevice_PollDrainsQueue(t *testing.T) {
	t.Parallel()
	vd := NewVirtualDevice(80, 24)

	vd.FeedBytes("hi")
	vd.Feed(key.Event{Pressed: false, VirtualKeyCode: 'H', Char: 'h'})
	vd.Resize(100, 40)

	in, err := vd.Poll()
	if err != nil {
		t.Fatalf("Poll() unexpected error: %v", err)
	}
	if len(in.Events) != 3 {
		t.Fatalf("Poll() returned %d events, want 3", len(in.Events))
	}
	if !in.Resized || in.Size != (BufferSize{Columns: 100, Rows: 40}) {
		t.Errorf("Poll() resize = %v %+v, want true {100 40}", in.Resized, in.Size)
	}

	in, _ = vd.Poll()
	if len(in.Events) != 0 || in.Resized {
		t.Errorf("second Poll() = %+v, want empty", in)
	}
	if vd.PollCount() != 2 {
		t.Errorf("PollCount() = %d, want 2", vd.PollCount())
	}
}

func TestVirtualDevice_WriteAccumulates(t *testing.T) {
	t.Parallel()
	vd := NewVirtualDevice(80, 24)

	if _, err := vd.Write([]byte("one")); err != nil {
		t.Fatal(err)
	}
	if _, err := vd.Write([]byte("two")); err != nil {
		t.Fatal(err)
	}
	if got := vd.Output(); got != "onetwo" {
		t.Errorf("Output() = %q, want %q", got, "onetwo")
	}

	vd.Reset()
	if got := vd.Output(); got != "" {
		t.Errorf("Output() after Reset = %q, want empty", got)
	}
}

func TestVirtualDevice_ConcurrentAccess(t *testing.T) {
	t.Parallel()
	vd := NewVirtualDevice(80, 24)

	var wg sync.WaitGroup
	const goroutines = 10

	wg.Add(goroutines * 2)
	for range goroutines {
		go func() {
			defer wg.Done()
			_, _ = vd.Write([]byte("x"))
		}()
		go func() {
			defer wg.Done()
			_, _ = vd.Poll()
		}()
	}
	wg.Wait()

	if len(vd.Output()) != goroutines {
		t.Errorf("Output length = %d, want %d", len(vd.Output()), goroutines)
	}
}
