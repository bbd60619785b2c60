package input

// Runes maps the printable keys of the default bindings to actions, for
// backends that deliver characters.
var Runes = map[rune]Action{
	'w': ActionOrbitUp,
	's': ActionOrbitDown,
	'a': ActionPanLeft,
	'd': ActionPanRight,
	'q': ActionPanUp,
	'e': ActionPanDown,
	'h': ActionToggleHUD,
	'p': ActionScreenshot,
}

// Decoder turns a raw terminal byte stream into actions. Arrow keys arrive as
// ESC [ A..D; a lone ESC quits, as does Ctrl+C.
type Decoder struct {
	buf []byte
}

// Feed consumes b and returns the actions it completes. Incomplete escape
// sequences are kept until the next call.
func (d *Decoder) Feed(b []byte) []Action {
	d.buf = append(d.buf, b...)
	var out []Action
	for len(d.buf) > 0 {
		c := d.buf[0]
		switch {
		case c == 0x03:
			out = append(out, ActionQuit)
			d.buf = d.buf[1:]
		case c == 0x1b:
			if len(d.buf) == 1 {
				// Either a lone Escape or the start of a sequence; wait
				// for the rest unless this was the whole read.
				if len(b) == 1 {
					out = append(out, ActionQuit)
					d.buf = d.buf[:0]
				}
				return out
			}
			if d.buf[1] != '[' {
				out = append(out, ActionQuit)
				d.buf = d.buf[1:]
				continue
			}
			if len(d.buf) < 3 {
				return out
			}
			switch d.buf[2] {
			case 'A':
				out = append(out, ActionZoomIn)
			case 'B':
				out = append(out, ActionZoomOut)
			case 'C':
				out = append(out, ActionOrbitRight)
			case 'D':
				out = append(out, ActionOrbitLeft)
			}
			d.buf = d.buf[3:]
		default:
			if a, ok := Runes[rune(c)|0x20]; ok && c < 0x80 {
				out = append(out, a)
			}
			d.buf = d.buf[1:]
		}
	}
	return out
}
