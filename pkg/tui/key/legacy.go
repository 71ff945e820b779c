// ABOUTME: CSI and SS3 escape sequences emitted by common terminals for navigation keys
// ABOUTME: Includes the xterm "CSI 1;<mod> X" form used for modified arrows

package key

// finalKeys maps the final byte of CSI/SS3 cursor sequences to a virtual key.
var finalKeys = map[byte]uint16{
	'A': VKUp,
	'B': VKDown,
	'C': VKRight,
	'D': VKLeft,
	'H': VKHome,
	'F': VKEnd,
}

// tildeKeys maps the numeric parameter of "CSI n ~" sequences.
var tildeKeys = map[int]uint16{
	1: VKHome,
	2: VKInsert,
	3: VKDelete,
	4: VKEnd,
	5: VKPageUp,
	6: VKPageDown,
	7: VKHome,
	8: VKEnd,
}

// xtermModifiers decodes the xterm modifier parameter (value - 1 is a bitmask
// of shift=1, alt=2, ctrl=4).
func xtermModifiers(param int) Modifier {
	if param < 2 {
		return 0
	}
	bits := param - 1
	var m Modifier
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModLeftAlt
	}
	if bits&4 != 0 {
		m |= ModLeftCtrl
	}
	return m
}
