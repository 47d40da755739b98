package core

import "pinion/script"

// BuildTxData flattens a mixed argument sequence into one contiguous
// transmit buffer: a byte-valued integer contributes one byte (low 8 bits),
// a byte-string its raw bytes, an array one byte per integer element.
//
// The walk runs twice. The measure pass validates every operand and sums
// the total size; the fill pass allocates exactly once and copies in
// encounter order. An operand of any other kind, an array holding a
// non-integer, or an all-empty sequence fails with ArgumentError before
// anything is allocated, so the caller never reaches the bus with a
// partial or empty buffer.
func BuildTxData(args []script.Value) ([]byte, error) {
	size := 0
	for _, a := range args {
		switch a.Kind() {
		case script.KindInt:
			size++
		case script.KindBytes:
			size += len(a.Bytes())
		case script.KindArray:
			for _, e := range a.Array() {
				if e.Kind() != script.KindInt {
					return nil, errOutputParameter()
				}
			}
			size += len(a.Array())
		default:
			return nil, errOutputParameter()
		}
	}
	if size == 0 {
		return nil, errOutputParameter()
	}

	buf := make([]byte, 0, size)
	for _, a := range args {
		switch a.Kind() {
		case script.KindInt:
			buf = append(buf, byte(a.Int()))
		case script.KindBytes:
			buf = append(buf, a.Bytes()...)
		case script.KindArray:
			for _, e := range a.Array() {
				buf = append(buf, byte(e.Int()))
			}
		}
	}
	return buf, nil
}

func errOutputParameter() *script.Error {
	return script.Raise(script.ArgumentError, "Output parameter error.")
}
