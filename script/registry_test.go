package script

import (
	"errors"
	"testing"
)

func TestDefineAndDispatch(t *testing.T) {
	reg := NewRegistry()
	cls := reg.DefineClass("Blink")

	called := false
	cls.Define("on", func(call *Call) (Value, error) {
		called = true
		return Int(1), nil
	})

	ret, err := reg.Dispatch("Blink", "on", nil, nil, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if !called {
		t.Error("method was not invoked")
	}
	if ret.Int() != 1 {
		t.Errorf("expected return 1, got %d", ret.Int())
	}
}

func TestDispatchUnknownMethod(t *testing.T) {
	reg := NewRegistry()
	reg.DefineClass("Blink")

	_, err := reg.Dispatch("Blink", "off", nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown method")
	}
	if ClassOf(err) != NoMethodError {
		t.Errorf("expected NoMethodError, got %v", ClassOf(err))
	}
}

func TestDispatchUnknownClass(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.Dispatch("Nope", "on", nil, nil, nil)
	if err == nil {
		t.Fatal("expected error for unknown class")
	}
	if ClassOf(err) != NoMethodError {
		t.Errorf("expected NoMethodError, got %v", ClassOf(err))
	}
}

func TestDispatchOnReceiver(t *testing.T) {
	reg := NewRegistry()
	cls := reg.DefineClass("Counter")
	cls.Define("bump", func(call *Call) (Value, error) {
		n := call.Recv.Data.(*int)
		*n++
		return Int(int64(*n)), nil
	})

	n := 0
	obj := cls.NewObject(&n)

	for i := 1; i <= 3; i++ {
		ret, err := reg.Dispatch("", "bump", obj, nil, nil)
		if err != nil {
			t.Fatalf("Dispatch returned error: %v", err)
		}
		if ret.Int() != int64(i) {
			t.Errorf("call %d: expected %d, got %d", i, i, ret.Int())
		}
	}
}

func TestClassConstants(t *testing.T) {
	reg := NewRegistry()
	cls := reg.DefineClass("GPIO")
	cls.Const("IN", 1)
	cls.Const("OUT", 2)

	v, ok := cls.ConstValue("OUT")
	if !ok {
		t.Fatal("expected OUT to be defined")
	}
	if v != 2 {
		t.Errorf("expected OUT=2, got %d", v)
	}
	if _, ok := cls.ConstValue("ANALOG"); ok {
		t.Error("expected ANALOG to be undefined")
	}
}

func TestDefineClassIdempotent(t *testing.T) {
	reg := NewRegistry()
	a := reg.DefineClass("UART")
	b := reg.DefineClass("UART")
	if a != b {
		t.Error("expected the same class on redefinition")
	}
}

func TestCallArgAccessors(t *testing.T) {
	call := &Call{
		Args: []Value{Int(5), Str("hi")},
		KW:   map[string]Value{"baud": Int(9600)},
	}

	if call.Arg(0).Int() != 5 {
		t.Errorf("expected arg 0 = 5, got %d", call.Arg(0).Int())
	}
	if string(call.Arg(1).Bytes()) != "hi" {
		t.Errorf("expected arg 1 = hi, got %q", call.Arg(1).Bytes())
	}
	if !call.Arg(2).IsNil() {
		t.Error("expected out-of-range arg to be nil")
	}
	if v, ok := call.Kw("baud"); !ok || v.Int() != 9600 {
		t.Errorf("expected kw baud=9600, got %v %d", ok, v.Int())
	}
	if _, ok := call.Kw("parity"); ok {
		t.Error("expected kw parity to be absent")
	}
}

func TestMethodErrorPassthrough(t *testing.T) {
	reg := NewRegistry()
	cls := reg.DefineClass("SPI")
	raised := Raise(ArgumentError, "bad mode")
	cls.Define("setmode", func(call *Call) (Value, error) {
		return Nil(), raised
	})

	_, err := reg.Dispatch("SPI", "setmode", nil, nil, nil)
	if !errors.Is(err, raised) {
		t.Errorf("expected the raised error back, got %v", err)
	}
	if ClassOf(err) != ArgumentError {
		t.Errorf("expected ArgumentError, got %v", ClassOf(err))
	}
}
