package core

import "pinion/script"

// Pin is the canonical identity of one I/O pin: port (1 = A, 2 = B, ...)
// and pin number within the port. Both fields are always produced together
// by ParsePin; bindings never assemble one piecemeal.
type Pin struct {
	Port uint8
	Num  uint8
}

// String renders the text descriptor form, e.g. "PA5".
func (p Pin) String() string {
	if p.Port == 0 {
		return "P?" + Utoa(uint32(p.Num))
	}
	return string([]byte{'P', 'A' + p.Port - 1}) + Utoa(uint32(p.Num))
}

// ParsePin resolves a script-supplied pin descriptor against a board
// profile. Text descriptors name the pin directly ("PA0"); integer
// descriptors index the board's logical pin table. Resolution is pure and
// never consults peripheral capability tables: a structurally valid pin
// that a peripheral cannot serve is that binding's concern.
func ParsePin(v script.Value, b *Board) (Pin, error) {
	switch v.Kind() {
	case script.KindBytes:
		return parsePinText(v.Bytes())
	case script.KindInt:
		return b.LogicalPin(int(v.Int()))
	}
	return Pin{}, script.Raise(script.ArgumentError, "invalid pin descriptor")
}

func parsePinText(s []byte) (Pin, error) {
	if len(s) < 3 || s[0] != 'P' || s[1] < 'A' || s[1] > 'Z' {
		return Pin{}, script.Raise(script.ArgumentError, "invalid pin name")
	}
	num, ok := Atoi(string(s[2:]))
	if !ok {
		return Pin{}, script.Raise(script.ArgumentError, "invalid pin name")
	}
	if num > 15 {
		return Pin{}, script.Raise(script.RangeError, "pin number out of range")
	}
	return Pin{Port: s[1] - 'A' + 1, Num: uint8(num)}, nil
}
