// ABOUTME: Normalised key event shared by the POSIX byte decoder and Windows console records
// ABOUTME: Virtual key codes and modifier bits follow the Windows console values

package key

import "fmt"

// Virtual key codes. Letters and digits use their uppercase ASCII value.
const (
	VKNone     uint16 = 0x00
	VKBack     uint16 = 0x08
	VKTab      uint16 = 0x09
	VKReturn   uint16 = 0x0D
	VKEscape   uint16 = 0x1B
	VKSpace    uint16 = 0x20
	VKPageUp   uint16 = 0x21
	VKPageDown uint16 = 0x22
	VKEnd      uint16 = 0x23
	VKHome     uint16 = 0x24
	VKLeft     uint16 = 0x25
	VKUp       uint16 = 0x26
	VKRight    uint16 = 0x27
	VKDown     uint16 = 0x28
	VKInsert   uint16 = 0x2D
	VKDelete   uint16 = 0x2E
)

// Modifier is a control-key state bitmask.
type Modifier uint32

const (
	ModRightAlt  Modifier = 0x0001
	ModLeftAlt   Modifier = 0x0002
	ModRightCtrl Modifier = 0x0004
	ModLeftCtrl  Modifier = 0x0008
	ModShift     Modifier = 0x0010
)

// Alt reports whether either Alt key is held.
func (m Modifier) Alt() bool { return m&(ModLeftAlt|ModRightAlt) != 0 }

// Ctrl reports whether either Ctrl key is held.
func (m Modifier) Ctrl() bool { return m&(ModLeftCtrl|ModRightCtrl) != 0 }

// AltGr reports the Right Alt + Ctrl combination Windows uses for AltGr.
func (m Modifier) AltGr() bool { return m&ModRightAlt != 0 && m.Ctrl() }

// Shift reports whether Shift is held.
func (m Modifier) Shift() bool { return m&ModShift != 0 }

// Event is a key notification independent of the platform it came from.
// Char carries the raw byte produced by the key, 0 for navigation keys.
type Event struct {
	Pressed        bool
	RepeatCount    uint16
	VirtualKeyCode uint16
	ScanCode       uint16
	Char           byte
	Modifiers      Modifier
}

// IsEnter reports whether the event is an Enter key.
func (e Event) IsEnter() bool {
	return e.VirtualKeyCode == VKReturn || e.Char == '\r' || e.Char == '\n'
}

// IsBackspace reports whether the event is a Backspace key.
func (e Event) IsBackspace() bool {
	return e.VirtualKeyCode == VKBack || e.Char == 0x08 || e.Char == 0x7f
}

// IsPrintable reports whether Char is a byte that belongs in a text buffer.
// Bytes >= 0x80 pass through so UTF-8 input survives byte by byte.
func (e Event) IsPrintable() bool {
	return e.Char >= 0x20 && e.Char != 0x7f
}

// IsText reports whether the event types its Char: printable and not an
// Alt chord. AltGr characters count as text.
func (e Event) IsText() bool {
	if !e.IsPrintable() {
		return false
	}
	return !e.Modifiers.Alt() || e.Modifiers.AltGr()
}

var vkNames = map[uint16]string{
	VKBack:     "Backspace",
	VKTab:      "Tab",
	VKReturn:   "Enter",
	VKEscape:   "Escape",
	VKSpace:    "Space",
	VKPageUp:   "PageUp",
	VKPageDown: "PageDown",
	VKEnd:      "End",
	VKHome:     "Home",
	VKLeft:     "Left",
	VKUp:       "Up",
	VKRight:    "Right",
	VKDown:     "Down",
	VKInsert:   "Insert",
	VKDelete:   "Delete",
}

// String returns a human-readable form such as "Ctrl+C" or "Alt+x".
func (e Event) String() string {
	var name string
	switch n, ok := vkNames[e.VirtualKeyCode]; {
	case ok:
		name = n
	case e.Modifiers.Ctrl() && e.VirtualKeyCode >= 'A' && e.VirtualKeyCode <= 'Z':
		name = string(rune(e.VirtualKeyCode))
	case e.IsPrintable():
		name = string(rune(e.Char))
		if e.Char >= 0x80 {
			name = fmt.Sprintf("0x%02x", e.Char)
		}
	default:
		name = fmt.Sprintf("vk(0x%02x)", e.VirtualKeyCode)
	}

	prefix := ""
	if e.Modifiers.Ctrl() {
		prefix += "Ctrl+"
	}
	if e.Modifiers.Alt() {
		prefix += "Alt+"
	}
	if e.Modifiers.Shift() && !e.IsPrintable() {
		prefix += "Shift+"
	}
	return prefix + name
}
