// ABOUTME: Table-driven tests for the raw byte decoder
// ABOUTME: Covers printable bytes, control characters, CSI/SS3 navigation and split reads

package key

import (
	"testing"
	"time"
)

func TestDecode_SingleKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		data     string
		wantVK   uint16
		wantChar byte
		wantMods Modifier
	}{
		{name: "lowercase a", data: "a", wantVK: 'A', wantChar: 'a'},
		{name: "uppercase Q", data: "Q", wantVK: 'Q', wantChar: 'Q', wantMods: ModShift},
		{name: "digit 7", data: "7", wantVK: '7', wantChar: '7'},
		{name: "space", data: " ", wantVK: VKSpace, wantChar: ' '},
		{name: "tilde", data: "~", wantVK: VKNone, wantChar: '~'},
		{name: "carriage return", data: "\r", wantVK: VKReturn, wantChar: '\r'},
		{name: "line feed", data: "\n", wantVK: VKReturn, wantChar: '\r'},
		{name: "DEL backspace", data: "\x7f", wantVK: VKBack, wantChar: 0x08},
		{name: "BS backspace", data: "\x08", wantVK: VKBack, wantChar: 0x08},
		{name: "tab", data: "\t", wantVK: VKTab, wantChar: '\t'},
		{name: "ctrl+c", data: "\x03", wantVK: 'C', wantChar: 0x03, wantMods: ModLeftCtrl},
		{name: "ctrl+d", data: "\x04", wantVK: 'D', wantChar: 0x04, wantMods: ModLeftCtrl},
		{name: "lone escape", data: "\x1b", wantVK: VKEscape, wantChar: 0x1b},
		{name: "arrow up", data: "\x1b[A", wantVK: VKUp},
		{name: "arrow left", data: "\x1b[D", wantVK: VKLeft},
		{name: "home", data: "\x1b[H", wantVK: VKHome},
		{name: "end", data: "\x1b[F", wantVK: VKEnd},
		{name: "ss3 right", data: "\x1bOC", wantVK: VKRight},
		{name: "delete", data: "\x1b[3~", wantVK: VKDelete},
		{name: "page up", data: "\x1b[5~", wantVK: VKPageUp},
		{name: "page down", data: "\x1b[6~", wantVK: VKPageDown},
		{name: "backtab", data: "\x1b[Z", wantVK: VKTab, wantMods: ModShift},
		{name: "ctrl+right", data: "\x1b[1;5C", wantVK: VKRight, wantMods: ModLeftCtrl},
		{name: "shift+alt+up", data: "\x1b[1;4A", wantVK: VKUp, wantMods: ModShift | ModLeftAlt},
		{name: "alt+x", data: "\x1bx", wantVK: 'X', wantChar: 'x', wantMods: ModLeftAlt},
		{name: "utf8 lead byte", data: "\xc3", wantVK: VKNone, wantChar: 0xc3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Decode([]byte(tt.data))
			if len(got) != 1 {
				t.Fatalf("Decode(%q) returned %d events, want 1: %+v", tt.data, len(got), got)
			}
			ev := got[0]
			if !ev.Pressed || ev.RepeatCount != 1 {
				t.Errorf("Decode(%q) = %+v, want pressed with repeat 1", tt.data, ev)
			}
			if ev.VirtualKeyCode != tt.wantVK {
				t.Errorf("Decode(%q).VirtualKeyCode = 0x%02x, want 0x%02x", tt.data, ev.VirtualKeyCode, tt.wantVK)
			}
			if ev.Char != tt.wantChar {
				t.Errorf("Decode(%q).Char = 0x%02x, want 0x%02x", tt.data, ev.Char, tt.wantChar)
			}
			if ev.Modifiers != tt.wantMods {
				t.Errorf("Decode(%q).Modifiers = 0x%x, want 0x%x", tt.data, ev.Modifiers, tt.wantMods)
			}
		})
	}
}

func TestDecode_Sequence(t *testing.T) {
	t.Parallel()

	got := Decode([]byte("ab\x1b[Ac\r"))
	want := []uint16{'A', 'B', VKUp, 'C', VKReturn}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %+v", len(got), len(want), got)
	}
	for i, vk := range want {
		if got[i].VirtualKeyCode != vk {
			t.Errorf("event %d VirtualKeyCode = 0x%02x, want 0x%02x", i, got[i].VirtualKeyCode, vk)
		}
	}
}

func TestDecode_UnknownSequenceDropped(t *testing.T) {
	t.Parallel()

	got := Decode([]byte("\x1b[99Xz"))
	if len(got) != 1 || got[0].Char != 'z' {
		t.Errorf("Decode unknown CSI = %+v, want only 'z'", got)
	}
}

func TestDecoder_SplitCSI(t *testing.T) {
	t.Parallel()

	var d Decoder
	if got := d.Decode([]byte("x\x1b[1;")); len(got) != 1 {
		t.Fatalf("first chunk returned %d events, want 1", len(got))
	}
	if d.Pending() != 4 {
		t.Fatalf("Pending() = %d, want 4", d.Pending())
	}

	got := d.Decode([]byte("5D"))
	if len(got) != 1 {
		t.Fatalf("second chunk returned %d events, want 1", len(got))
	}
	if got[0].VirtualKeyCode != VKLeft || !got[0].Modifiers.Ctrl() {
		t.Errorf("completed sequence = %+v, want Ctrl+Left", got[0])
	}
	if d.Pending() != 0 {
		t.Errorf("Pending() after completion = %d, want 0", d.Pending())
	}
}

// text collects the printable bytes of events, marking Alt+key as "M-x".
func text(events []Event) string {
	var out []byte
	for _, ev := range events {
		if ev.Modifiers.Alt() {
			out = append(out, 'M', '-')
		}
		out = append(out, ev.Char)
	}
	return string(out)
}

func TestDecoder_StalePrefixIsFlushed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "alt+[", data: "\x1b[", want: "M-["},
		{name: "alt+O", data: "\x1bO", want: "M-O"},
		{name: "unfinished parameters", data: "\x1b[1;", want: "M-[1;"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d Decoder
			if got := d.Decode([]byte(tt.data)); len(got) != 0 {
				t.Fatalf("Decode(%q) = %+v, want the prefix held back", tt.data, got)
			}

			arrived := d.since
			if d.Expired(arrived.Add(EscTimeout-time.Millisecond), EscTimeout) {
				t.Fatal("Expired() = true before the timeout elapsed")
			}
			if !d.Expired(arrived.Add(EscTimeout), EscTimeout) {
				t.Fatal("Expired() = false after the timeout elapsed")
			}

			if got := text(d.Flush()); got != tt.want {
				t.Errorf("Flush() = %q, want %q", got, tt.want)
			}
			if d.Pending() != 0 || d.Expired(arrived.Add(time.Hour), EscTimeout) {
				t.Error("pending bytes survived Flush")
			}
		})
	}
}

func TestDecoder_PrefixContinuedByTyping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		prefix string
		next   string
		want   string
	}{
		{name: "alt+[ then word", prefix: "\x1b[", next: "hello", want: "M-[hello"},
		{name: "alt+O then letter", prefix: "\x1bO", next: "x", want: "M-Ox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var d Decoder
			d.Decode([]byte(tt.prefix))
			got := d.Decode([]byte(tt.next))
			if text(got) != tt.want {
				t.Errorf("Decode(%q) after %q = %q, want %q", tt.next, tt.prefix, text(got), tt.want)
			}
			if d.Pending() != 0 {
				t.Errorf("Pending() = %d, want 0", d.Pending())
			}
		})
	}
}

func TestDecode_TrailingPrefixReported(t *testing.T) {
	t.Parallel()

	if got := text(Decode([]byte("a\x1b["))); got != "aM-[" {
		t.Errorf("Decode = %q, want %q", got, "aM-[")
	}
}

func TestEvent_Predicates(t *testing.T) {
	t.Parallel()

	enter := Event{Pressed: true, Char: '\r'}
	if !enter.IsEnter() {
		t.Error("CR char should be Enter")
	}
	winEnter := Event{Pressed: true, VirtualKeyCode: VKReturn, Char: '\r'}
	if !winEnter.IsEnter() || winEnter.IsPrintable() {
		t.Error("VK_RETURN should be Enter and not printable")
	}
	bs := Event{VirtualKeyCode: VKBack, Char: 0x08}
	if !bs.IsBackspace() || bs.IsPrintable() {
		t.Error("VK_BACK should be Backspace and not printable")
	}
	if (Event{Char: 'a'}).IsPrintable() != true {
		t.Error("'a' should be printable")
	}
	if (Event{Char: 0x7f}).IsPrintable() {
		t.Error("DEL should not be printable")
	}
}

func TestEvent_IsText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{name: "plain letter", ev: Event{Char: 'a'}, want: true},
		{name: "shifted letter", ev: Event{Char: 'A', Modifiers: ModShift}, want: true},
		{name: "alt chord", ev: Event{Char: 'a', Modifiers: ModLeftAlt}, want: false},
		{name: "right alt chord", ev: Event{Char: 'a', Modifiers: ModRightAlt}, want: false},
		{name: "altgr character", ev: Event{Char: '@', Modifiers: ModRightAlt | ModLeftCtrl}, want: true},
		{name: "control byte", ev: Event{Char: 0x01, Modifiers: ModLeftCtrl}, want: false},
		{name: "navigation key", ev: Event{VirtualKeyCode: VKLeft}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.ev.IsText(); got != tt.want {
				t.Errorf("IsText(%+v) = %v, want %v", tt.ev, got, tt.want)
			}
		})
	}
}

func TestEvent_String(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ev   Event
		want string
	}{
		{name: "rune", ev: Event{VirtualKeyCode: 'A', Char: 'a'}, want: "a"},
		{name: "enter", ev: Event{VirtualKeyCode: VKReturn, Char: '\r'}, want: "Enter"},
		{name: "ctrl+c", ev: Event{VirtualKeyCode: 'C', Char: 0x03, Modifiers: ModLeftCtrl}, want: "Ctrl+C"},
		{name: "alt rune", ev: Event{VirtualKeyCode: 'X', Char: 'x', Modifiers: ModLeftAlt}, want: "Alt+x"},
		{name: "shift tab", ev: Event{VirtualKeyCode: VKTab, Modifiers: ModShift}, want: "Shift+Tab"},
		{name: "unknown", ev: Event{VirtualKeyCode: 0x70}, want: "vk(0x70)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.ev.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}
