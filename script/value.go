// Package script is the dispatch substrate peripheral bindings register
// into: dynamically typed values, named classes with textual method lookup,
// and script-level error classes. The hosted interpreter is an external
// collaborator; this package is the contract it calls through.
package script

// Kind tags the runtime type of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindFloat
	KindBytes
	KindArray
	KindObject
)

// Value is one script-level value. Integers, byte-strings and arrays are
// the kinds peripheral transactions consume; objects carry constructed
// peripheral instances back to the caller.
type Value struct {
	kind Kind
	n    int64
	f    float64
	b    []byte
	arr  []Value
	obj  *Object
}

// Nil returns the nil value.
func Nil() Value { return Value{} }

// Bool returns a boolean value.
func Bool(v bool) Value {
	n := int64(0)
	if v {
		n = 1
	}
	return Value{kind: KindBool, n: n}
}

// Int returns an integer value.
func Int(n int64) Value { return Value{kind: KindInt, n: n} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bytes returns a byte-string value. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, b: b} }

// Str returns a byte-string value holding s.
func Str(s string) Value { return Value{kind: KindBytes, b: []byte(s)} }

// Array returns an array value over elems. The slice is not copied.
func Array(elems ...Value) Value { return Value{kind: KindArray, arr: elems} }

// Obj wraps a class instance as a value.
func Obj(o *Object) Value { return Value{kind: KindObject, obj: o} }

// Kind reports the value's runtime type.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is nil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// Bool reports the boolean payload; false for any other kind.
func (v Value) Bool() bool { return v.kind == KindBool && v.n != 0 }

// Int reports the integer payload; 0 for any other kind.
func (v Value) Int() int64 {
	if v.kind != KindInt {
		return 0
	}
	return v.n
}

// Float reports the float payload; 0 for any other kind.
func (v Value) Float() float64 {
	if v.kind != KindFloat {
		return 0
	}
	return v.f
}

// Bytes reports the byte-string payload; nil for any other kind.
func (v Value) Bytes() []byte {
	if v.kind != KindBytes {
		return nil
	}
	return v.b
}

// Array reports the array payload; nil for any other kind.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// Object reports the object payload; nil for any other kind.
func (v Value) Object() *Object {
	if v.kind != KindObject {
		return nil
	}
	return v.obj
}

// Numeric reports the value as a float64 when it is an integer or a float.
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.n), true
	case KindFloat:
		return v.f, true
	}
	return 0, false
}

// Object is a constructed class instance. Data is opaque to the dispatcher
// and owned by the binding that created the instance.
type Object struct {
	Class *Class
	Data  any
}
