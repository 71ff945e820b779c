// ABOUTME: Decoder turns raw bytes read from a raw-mode tty into key events
// ABOUTME: An unterminated sequence waits for the next read, or is reported as typed keys once stale

package key

import (
	"strconv"
	"time"
)

const esc = 0x1b

// EscTimeout is how long an unfinished escape sequence may wait for the rest
// of its bytes before Flush reports it as typed keys.
const EscTimeout = 50 * time.Millisecond

// Decoder splits a byte stream into Events. The zero value is ready to use.
// A Decoder is not safe for concurrent use.
type Decoder struct {
	pending []byte
	since   time.Time
}

// Decode parses one complete chunk with no carried state. A trailing
// unfinished sequence is reported as typed keys.
func Decode(data []byte) []Event {
	var d Decoder
	return append(d.Decode(data), d.Flush()...)
}

// Decode appends data to any pending bytes and returns every complete event.
func (d *Decoder) Decode(data []byte) []Event {
	carried := len(d.pending)
	if carried > 0 {
		data = append(d.pending, data...)
		d.pending = nil
	}

	var events []Event
	for i := 0; i < len(data); {
		if data[i] != esc {
			events = append(events, fromByte(data[i]))
			i++
			continue
		}

		ev, n, ok := parseEscape(data[i:])
		if n == 0 {
			if i > 0 || carried == 0 {
				d.since = time.Now()
			}
			d.pending = append([]byte(nil), data[i:]...)
			break
		}
		if !ok && i == 0 && n > carried && carried > 0 {
			// A prefix left over from the previous read was not the start of
			// a sequence after all: it was Alt+key, and what followed is input.
			events = append(events, altKey(data[1]))
			i += 2
			continue
		}
		if ok {
			events = append(events, ev)
		}
		i += n
	}
	return events
}

// Pending reports how many bytes are waiting for the rest of a sequence.
func (d *Decoder) Pending() int {
	return len(d.pending)
}

// Expired reports whether pending bytes have waited at least timeout.
func (d *Decoder) Expired(now time.Time, timeout time.Duration) bool {
	return len(d.pending) > 0 && now.Sub(d.since) >= timeout
}

// Flush gives up on the pending sequence: ESC plus the byte after it become
// Alt+key (a lone ESC is Escape) and any further bytes are decoded singly.
func (d *Decoder) Flush() []Event {
	p := d.pending
	d.pending = nil
	if len(p) == 0 {
		return nil
	}
	if len(p) == 1 {
		return []Event{pressed(VKEscape, esc, 0)}
	}

	events := []Event{altKey(p[1])}
	for _, b := range p[2:] {
		if b == esc {
			events = append(events, pressed(VKEscape, esc, 0))
			continue
		}
		events = append(events, fromByte(b))
	}
	return events
}

func altKey(b byte) Event {
	ev := fromByte(b)
	ev.Modifiers |= ModLeftAlt
	return ev
}

func pressed(vk uint16, ch byte, mods Modifier) Event {
	return Event{
		Pressed:        true,
		RepeatCount:    1,
		VirtualKeyCode: vk,
		Char:           ch,
		Modifiers:      mods,
	}
}

// fromByte maps a single non-ESC byte.
func fromByte(b byte) Event {
	switch {
	case b == '\r' || b == '\n':
		return pressed(VKReturn, '\r', 0)
	case b == 0x7f || b == 0x08:
		return pressed(VKBack, 0x08, 0)
	case b == '\t':
		return pressed(VKTab, '\t', 0)
	case b == 0x00:
		return pressed(VKSpace, 0, ModLeftCtrl)
	case b <= 0x1a:
		return pressed(uint16('A'+b-1), b, ModLeftCtrl)
	case b < 0x20:
		return pressed(VKNone, b, ModLeftCtrl)
	case b == ' ':
		return pressed(VKSpace, b, 0)
	case b >= 'a' && b <= 'z':
		return pressed(uint16(b-'a'+'A'), b, 0)
	case b >= 'A' && b <= 'Z':
		return pressed(uint16(b), b, ModShift)
	case b >= '0' && b <= '9':
		return pressed(uint16(b), b, 0)
	}
	return pressed(VKNone, b, 0)
}

// parseEscape decodes a sequence starting with ESC. n is the number of bytes
// consumed; n == 0 means the sequence is incomplete. ok is false for
// recognised-but-unsupported sequences, which are dropped.
func parseEscape(data []byte) (ev Event, n int, ok bool) {
	if len(data) == 1 {
		return pressed(VKEscape, esc, 0), 1, true
	}

	switch data[1] {
	case '[':
		return parseCSI(data)
	case 'O':
		if len(data) < 3 {
			return Event{}, 0, false
		}
		if vk, found := finalKeys[data[2]]; found {
			return pressed(vk, 0, 0), 3, true
		}
		return Event{}, 3, false
	case esc:
		// ESC ESC: report the first, let the second start a new sequence.
		return pressed(VKEscape, esc, 0), 1, true
	}

	if b := data[1]; b >= 0x20 && b < 0x7f {
		return altKey(b), 2, true
	}
	return pressed(VKEscape, esc, 0), 1, true
}

// parseCSI decodes "ESC [ params final".
func parseCSI(data []byte) (Event, int, bool) {
	end := -1
	for i := 2; i < len(data); i++ {
		if b := data[i]; b >= 0x40 && b <= 0x7e {
			end = i
			break
		}
	}
	if end < 0 {
		return Event{}, 0, false
	}

	params := splitParams(data[2:end])
	final := data[end]
	n := end + 1

	var mods Modifier
	if len(params) > 1 {
		mods = xtermModifiers(params[1])
	}

	switch final {
	case '~':
		if len(params) == 0 {
			return Event{}, n, false
		}
		if vk, found := tildeKeys[params[0]]; found {
			return pressed(vk, 0, mods), n, true
		}
	case 'Z':
		return pressed(VKTab, 0, ModShift), n, true
	default:
		if vk, found := finalKeys[final]; found {
			return pressed(vk, 0, mods), n, true
		}
	}
	return Event{}, n, false
}

// splitParams parses ";"-separated decimal parameters. Empty fields are 0;
// private-mode markers make the whole list unusable and yield nil.
func splitParams(raw []byte) []int {
	if len(raw) == 0 {
		return nil
	}
	var out []int
	start := 0
	for i := 0; i <= len(raw); i++ {
		if i < len(raw) && raw[i] != ';' {
			continue
		}
		field := string(raw[start:i])
		v := 0
		if field != "" {
			parsed, err := strconv.Atoi(field)
			if err != nil {
				return nil
			}
			v = parsed
		}
		out = append(out, v)
		start = i + 1
	}
	return out
}
