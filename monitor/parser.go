package monitor

import "pinion/script"

// command is one parsed request line: an optional assignment target, a
// receiver (class or variable name), a method, and its arguments.
type command struct {
	assign string
	recv   string
	method string
	args   []script.Value
	kw     map[string]script.Value
}

// constResolver looks up Class.NAME references while parsing.
type constResolver func(class, name string) (int64, bool)

func parseErr(msg string) error {
	return script.Raise(script.SyntaxError, msg)
}

// parseLine parses one request line. Blank lines and lines starting with
// '#' parse to nil with no error.
func parseLine(line string, consts constResolver) (*command, error) {
	pos := skipSpaces(line, 0)
	if pos >= len(line) || line[pos] == '#' {
		return nil, nil
	}

	first, next := scanIdent(line, pos)
	if first == "" {
		return nil, parseErr("expected a name")
	}

	cmd := &command{}
	p := skipSpaces(line, next)
	if p < len(line) && line[p] == '=' {
		cmd.assign = first
		p = skipSpaces(line, p+1)
		first, next = scanIdent(line, p)
		if first == "" {
			return nil, parseErr("expected a receiver after '='")
		}
	}
	cmd.recv = first

	if next >= len(line) || line[next] != '.' {
		return nil, parseErr("expected '.' after '" + first + "'")
	}
	cmd.method, next = scanIdent(line, next+1)
	if cmd.method == "" {
		return nil, parseErr("expected a method name")
	}

	pos = next
	for {
		pos = skipSpaces(line, pos)
		if pos >= len(line) || line[pos] == '#' {
			break
		}
		v, name, after, err := parseArg(line, pos, consts)
		if err != nil {
			return nil, err
		}
		if name != "" {
			if cmd.kw == nil {
				cmd.kw = make(map[string]script.Value)
			}
			cmd.kw[name] = v
		} else {
			cmd.args = append(cmd.args, v)
		}
		pos = after
	}
	return cmd, nil
}

// parseArg parses one argument; a key:value form reports the keyword
// name alongside the value.
func parseArg(line string, pos int, consts constResolver) (script.Value, string, int, error) {
	if isIdentStart(line[pos]) {
		name, next := scanIdent(line, pos)
		if next < len(line) && line[next] == ':' {
			p := skipSpaces(line, next+1)
			if p >= len(line) {
				return script.Nil(), "", 0, parseErr("missing value for '" + name + ":'")
			}
			v, after, err := parseValue(line, p, consts)
			return v, name, after, err
		}
	}
	v, next, err := parseValue(line, pos, consts)
	return v, "", next, err
}

// parseValue parses one value: a number, a quoted string, a bracketed
// array, a Class.NAME constant, a nil/true/false literal, or a bare word
// taken as a byte-string.
func parseValue(line string, pos int, consts constResolver) (script.Value, int, error) {
	c := line[pos]
	switch {
	case c == '"':
		return parseQuoted(line, pos)
	case c == '[':
		return parseArray(line, pos, consts)
	case c == '-' || isDigit(c):
		return parseNumber(line, pos)
	case isIdentStart(c):
		name, next := scanIdent(line, pos)
		if next < len(line) && line[next] == '.' {
			cname, after := scanIdent(line, next+1)
			if cname == "" {
				return script.Nil(), 0, parseErr("expected a constant name after '" + name + ".'")
			}
			n, ok := consts(name, cname)
			if !ok {
				return script.Nil(), 0, parseErr("unknown constant " + name + "." + cname)
			}
			return script.Int(n), after, nil
		}
		switch name {
		case "nil":
			return script.Nil(), next, nil
		case "true":
			return script.Bool(true), next, nil
		case "false":
			return script.Bool(false), next, nil
		}
		return script.Str(name), next, nil
	}
	return script.Nil(), 0, parseErr("unexpected character '" + string(c) + "'")
}

// parseQuoted parses a double-quoted byte-string with \" \\ \n \r \t
// escapes.
func parseQuoted(line string, pos int) (script.Value, int, error) {
	buf := []byte{}
	i := pos + 1
	for i < len(line) {
		c := line[i]
		if c == '"' {
			return script.Bytes(buf), i + 1, nil
		}
		if c == '\\' && i+1 < len(line) {
			i++
			switch line[i] {
			case 'n':
				c = '\n'
			case 'r':
				c = '\r'
			case 't':
				c = '\t'
			default:
				c = line[i]
			}
		}
		buf = append(buf, c)
		i++
	}
	return script.Nil(), 0, parseErr("unterminated string")
}

// parseArray parses a bracketed, comma-separated value list.
func parseArray(line string, pos int, consts constResolver) (script.Value, int, error) {
	var elems []script.Value
	i := skipSpaces(line, pos+1)
	for {
		if i >= len(line) {
			return script.Nil(), 0, parseErr("unterminated array")
		}
		if line[i] == ']' {
			return script.Array(elems...), i + 1, nil
		}
		v, next, err := parseValue(line, i, consts)
		if err != nil {
			return script.Nil(), 0, err
		}
		elems = append(elems, v)
		i = skipSpaces(line, next)
		if i < len(line) && line[i] == ',' {
			i = skipSpaces(line, i+1)
		}
	}
}

// parseNumber parses a decimal integer, a 0x-prefixed hex integer, or a
// decimal fraction.
func parseNumber(line string, pos int) (script.Value, int, error) {
	i := pos
	negative := false
	if line[i] == '-' {
		negative = true
		i++
	}

	if i+1 < len(line) && line[i] == '0' && (line[i+1] == 'x' || line[i+1] == 'X') {
		i += 2
		start := i
		n := int64(0)
		for i < len(line) {
			d := hexDigit(line[i])
			if d < 0 {
				break
			}
			n = n<<4 | int64(d)
			i++
		}
		if i == start || (i < len(line) && isIdentStart(line[i])) {
			return script.Nil(), 0, parseErr("bad hex number")
		}
		if negative {
			n = -n
		}
		return script.Int(n), i, nil
	}

	start := i
	n := int64(0)
	for i < len(line) && isDigit(line[i]) {
		n = n*10 + int64(line[i]-'0')
		i++
	}
	if i == start {
		return script.Nil(), 0, parseErr("bad number")
	}

	if i < len(line) && line[i] == '.' && i+1 < len(line) && isDigit(line[i+1]) {
		i++
		frac := 0.0
		div := 1.0
		for i < len(line) && isDigit(line[i]) {
			frac = frac*10 + float64(line[i]-'0')
			div *= 10
			i++
		}
		if i < len(line) && isIdentStart(line[i]) {
			return script.Nil(), 0, parseErr("bad number")
		}
		f := float64(n) + frac/div
		if negative {
			f = -f
		}
		return script.Float(f), i, nil
	}

	if i < len(line) && isIdentStart(line[i]) {
		return script.Nil(), 0, parseErr("bad number")
	}
	if negative {
		n = -n
	}
	return script.Int(n), i, nil
}

func skipSpaces(s string, pos int) int {
	for pos < len(s) && (s[pos] == ' ' || s[pos] == '\t') {
		pos++
	}
	return pos
}

// scanIdent scans a name: a letter or underscore, then letters, digits
// and underscores, with an optional trailing '?' or '!'.
func scanIdent(s string, pos int) (string, int) {
	if pos >= len(s) || !isIdentStart(s[pos]) {
		return "", pos
	}
	i := pos + 1
	for i < len(s) && (isIdentStart(s[i]) || isDigit(s[i])) {
		i++
	}
	if i < len(s) && (s[i] == '?' || s[i] == '!') {
		i++
	}
	return s[pos:i], i
}

func isIdentStart(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
