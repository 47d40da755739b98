package monitor

import (
	"pinion/core"
	"pinion/script"
)

const hexDigits = "0123456789abcdef"

// Render formats a result value for a response line: integers in
// decimal, floats in fixed point, byte-strings quoted, arrays
// bracketed, nil and booleans as literals, objects as #<Class>.
func Render(v script.Value) string {
	switch v.Kind() {
	case script.KindNil:
		return "nil"
	case script.KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case script.KindInt:
		return core.Itoa(v.Int())
	case script.KindFloat:
		return renderFloat(v.Float())
	case script.KindBytes:
		return quote(v.Bytes())
	case script.KindArray:
		s := "["
		for i, e := range v.Array() {
			if i > 0 {
				s += ", "
			}
			s += Render(e)
		}
		return s + "]"
	case script.KindObject:
		return "#<" + v.Object().Class.Name + ">"
	}
	return "?"
}

// renderFloat trims a fixed six-digit rendering down to the shortest
// form that keeps one fractional digit.
func renderFloat(f float64) string {
	s := core.Ftoa(f, 6)
	end := len(s)
	for end > 0 && s[end-1] == '0' {
		end--
	}
	if end > 0 && s[end-1] == '.' {
		end++
	}
	return s[:end]
}

// quote renders a byte-string with printable bytes verbatim and the
// rest escaped.
func quote(b []byte) string {
	buf := make([]byte, 0, len(b)+2)
	buf = append(buf, '"')
	for _, c := range b {
		switch {
		case c == '"' || c == '\\':
			buf = append(buf, '\\', c)
		case c == '\n':
			buf = append(buf, '\\', 'n')
		case c == '\r':
			buf = append(buf, '\\', 'r')
		case c == '\t':
			buf = append(buf, '\\', 't')
		case c >= 0x20 && c < 0x7F:
			buf = append(buf, c)
		default:
			buf = append(buf, '\\', 'x', hexDigits[c>>4], hexDigits[c&0x0F])
		}
	}
	buf = append(buf, '"')
	return string(buf)
}
