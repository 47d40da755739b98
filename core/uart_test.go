package core

import (
	"fmt"
	"testing"

	"pinion/script"
)

// fakeUART records line configuration and transmitted bytes, and owns a
// fakeWire per unit so tests can push received data.
type fakeUART struct {
	cfgs      []string
	tx        []string
	wires     map[int]*fakeWire
	starts    int
	failCfg   bool
	failStart bool
}

func newFakeUART() *fakeUART {
	return &fakeUART{wires: make(map[int]*fakeWire)}
}

func (f *fakeUART) Configure(unit int, mode UARTMode) error {
	if f.failCfg {
		return StatusError(1)
	}
	f.cfgs = append(f.cfgs, fmt.Sprintf("%d %d %d %d", unit, mode.BaudRate, mode.Parity, mode.StopBits))
	return nil
}

func (f *fakeUART) Transmit(unit int, p []byte) error {
	f.tx = append(f.tx, string(p))
	return nil
}

func (f *fakeUART) StartReceive(unit int, buf []byte) (WriteCursor, error) {
	if f.failStart {
		return nil, StatusError(1)
	}
	f.starts++
	w := &fakeWire{buf: buf}
	f.wires[unit] = w
	return w, nil
}

func uartEnv() (*script.Registry, *fakeUART) {
	board := &Board{
		UARTPorts: []UARTPort{
			{Unit: 1, RingSize: 32, Delim: '\n'},
			{Unit: 2, RingSize: 32, Delim: '\n'},
			{Unit: 6, RingSize: 32, Delim: '\n'},
		},
	}
	reg := script.NewRegistry()
	drv := newFakeUART()
	RegisterUART(reg, board, drv)
	return reg, drv
}

func uartNew(t *testing.T, reg *script.Registry, args []script.Value, kw map[string]script.Value) *script.Object {
	t.Helper()
	v, err := reg.Dispatch("UART", "new", nil, args, kw)
	if err != nil {
		t.Fatalf("UART.new returned error: %v", err)
	}
	return v.Object()
}

func TestUARTNewForms(t *testing.T) {
	testCases := []struct {
		name     string
		args     []script.Value
		kw       map[string]script.Value
		wantUnit int
	}{
		{"default unit", nil, nil, 1},
		{"positional unit", []script.Value{script.Int(2)}, nil, 2},
		{"keyword unit", nil, map[string]script.Value{"unit": script.Int(6)}, 6},
		{"keyword beats positional", []script.Value{script.Int(2)},
			map[string]script.Value{"unit": script.Int(6)}, 6},
		{"non-integer positional ignored", []script.Value{script.Str("x")}, nil, 1},
	}

	for _, tc := range testCases {
		reg, drv := uartEnv()
		uartNew(t, reg, tc.args, tc.kw)
		want := fmt.Sprintf("%d -1 -1 -1", tc.wantUnit)
		if len(drv.cfgs) != 1 || drv.cfgs[0] != want {
			t.Errorf("%s: expected config %q, got %v", tc.name, want, drv.cfgs)
		}
		if _, ok := drv.wires[tc.wantUnit]; !ok {
			t.Errorf("%s: receive not armed on unit %d", tc.name, tc.wantUnit)
		}
	}
}

func TestUARTNewErrors(t *testing.T) {
	reg, drv := uartEnv()

	_, err := reg.Dispatch("UART", "new", nil, nil,
		map[string]script.Value{"unit": script.Str("2")})
	if err == nil || err.Error() != "ArgumentError: UART initialize." {
		t.Errorf("string unit: expected UART initialize. error, got %v", err)
	}

	_, err = reg.Dispatch("UART", "new", nil, []script.Value{script.Int(5)}, nil)
	if err == nil || err.Error() != "ArgumentError: UART initialize." {
		t.Errorf("unknown unit: expected UART initialize. error, got %v", err)
	}

	// Line-setting problems keep their own error shape.
	_, err = reg.Dispatch("UART", "new", nil, nil,
		map[string]script.Value{"baudrate": script.Int(1200)})
	if err == nil || err.Error() != "ArgumentError" {
		t.Errorf("low baud: expected bare ArgumentError, got %v", err)
	}
	_, err = reg.Dispatch("UART", "new", nil, nil,
		map[string]script.Value{"data_bits": script.Int(7)})
	if script.ClassOf(err) != script.NotImplementedError {
		t.Errorf("data_bits: expected NotImplementedError, got %v", err)
	}

	drv.failStart = true
	_, err = reg.Dispatch("UART", "new", nil, []script.Value{script.Int(2)}, nil)
	if err == nil || err.Error() != "ArgumentError: UART initialize." {
		t.Errorf("receive arm failure: expected UART initialize. error, got %v", err)
	}
}

func TestUARTSharedUnitState(t *testing.T) {
	reg, drv := uartEnv()

	a := uartNew(t, reg, []script.Value{script.Int(1)}, nil)
	b := uartNew(t, reg, []script.Value{script.Int(1)}, nil)
	if drv.starts != 1 {
		t.Fatalf("receive armed %d times for one unit", drv.starts)
	}

	drv.wires[1].feed([]byte("abcd"))
	got, err := reg.Dispatch("UART", "read", a, []script.Value{script.Int(2)}, nil)
	if err != nil || string(got.Bytes()) != "ab" {
		t.Fatalf("read on first handle: expected \"ab\", got %q err=%v", got.Bytes(), err)
	}

	// The second object shares the same read cursor.
	avail, err := reg.Dispatch("UART", "bytes_available", b, nil, nil)
	if err != nil || avail.Int() != 2 {
		t.Errorf("bytes_available on second handle: expected 2, got %d err=%v", avail.Int(), err)
	}
}

func TestUARTSetmode(t *testing.T) {
	reg, drv := uartEnv()
	obj := uartNew(t, reg, nil, nil)
	drv.cfgs = nil

	testCases := []struct {
		name string
		kw   map[string]script.Value
		want string
	}{
		{"baudrate and parity",
			map[string]script.Value{"baudrate": script.Int(38400), "parity": script.Int(ParityEven)},
			"1 38400 2 -1"},
		{"baud overrides baudrate",
			map[string]script.Value{"baudrate": script.Int(9600), "baud": script.Int(19200)},
			"1 19200 -1 -1"},
		{"stop bits",
			map[string]script.Value{"stop_bits": script.Int(2)},
			"1 -1 -1 2"},
		{"zero baud passes through",
			map[string]script.Value{"baud": script.Int(0)},
			"1 0 -1 -1"},
	}

	for _, tc := range testCases {
		drv.cfgs = nil
		if _, err := reg.Dispatch("UART", "setmode", obj, nil, tc.kw); err != nil {
			t.Errorf("%s: setmode returned error: %v", tc.name, err)
			continue
		}
		if len(drv.cfgs) != 1 || drv.cfgs[0] != tc.want {
			t.Errorf("%s: expected config %q, got %v", tc.name, tc.want, drv.cfgs)
		}
	}
}

func TestUARTSetmodeErrors(t *testing.T) {
	reg, drv := uartEnv()
	obj := uartNew(t, reg, nil, nil)

	badCases := []struct {
		name string
		kw   map[string]script.Value
	}{
		{"unknown key", map[string]script.Value{"bandrate": script.Int(9600)}},
		{"non-integer value", map[string]script.Value{"baudrate": script.Str("9600")}},
		{"baud below floor", map[string]script.Value{"baud": script.Int(300)}},
		{"bad stop bits", map[string]script.Value{"stop_bits": script.Int(3)}},
		{"bad parity", map[string]script.Value{"parity": script.Int(5)}},
	}
	for _, tc := range badCases {
		drv.cfgs = nil
		_, err := reg.Dispatch("UART", "setmode", obj, nil, tc.kw)
		if err == nil || err.Error() != "ArgumentError" {
			t.Errorf("%s: expected bare ArgumentError, got %v", tc.name, err)
		}
		if len(drv.cfgs) != 0 {
			t.Errorf("%s: config reached the driver: %v", tc.name, drv.cfgs)
		}
	}

	for _, name := range []string{"data_bits", "flow_control", "txd_pin", "rxd_pin", "rts_pin", "cts_pin"} {
		_, err := reg.Dispatch("UART", "setmode", obj, nil,
			map[string]script.Value{name: script.Int(1)})
		if script.ClassOf(err) != script.NotImplementedError {
			t.Errorf("%s: expected NotImplementedError, got %v", name, err)
		}
	}

	drv.failCfg = true
	_, err := reg.Dispatch("UART", "setmode", obj, nil,
		map[string]script.Value{"baudrate": script.Int(9600)})
	if err == nil || err.Error() != "ArgumentError" {
		t.Errorf("driver failure: expected bare ArgumentError, got %v", err)
	}
}

func TestUARTWrite(t *testing.T) {
	reg, drv := uartEnv()
	obj := uartNew(t, reg, nil, nil)

	got, err := reg.Dispatch("UART", "write", obj,
		[]script.Value{script.Str("AB"), script.Int(67)}, nil)
	if err != nil {
		t.Fatalf("write returned error: %v", err)
	}
	if got.Int() != 3 {
		t.Errorf("write: expected count 3, got %d", got.Int())
	}
	if len(drv.tx) != 1 || drv.tx[0] != "ABC" {
		t.Errorf("transmitted: expected [\"ABC\"], got %q", drv.tx)
	}

	_, err = reg.Dispatch("UART", "write", obj, []script.Value{script.Nil()}, nil)
	if err == nil || err.Error() != "ArgumentError: Output parameter error." {
		t.Errorf("write(nil): expected output parameter error, got %v", err)
	}
}

func TestUARTReadAndLines(t *testing.T) {
	reg, drv := uartEnv()
	obj := uartNew(t, reg, nil, nil)
	wire := drv.wires[1]

	readable, err := reg.Dispatch("UART", "is_readable", obj, nil, nil)
	if err != nil || readable.Bool() {
		t.Errorf("is_readable on empty ring: expected false, got %v err=%v", readable.Bool(), err)
	}

	wire.feed([]byte("one\ntwo"))

	readable, err = reg.Dispatch("UART", "is_readable", obj, nil, nil)
	if err != nil || !readable.Bool() {
		t.Errorf("is_readable: expected true, got %v err=%v", readable.Bool(), err)
	}
	can, err := reg.Dispatch("UART", "can_read_line", obj, nil, nil)
	if err != nil || !can.Bool() {
		t.Errorf("can_read_line: expected true, got %v err=%v", can.Bool(), err)
	}
	line, err := reg.Dispatch("UART", "gets", obj, nil, nil)
	if err != nil || string(line.Bytes()) != "one" {
		t.Errorf("gets: expected \"one\", got %q err=%v", line.Bytes(), err)
	}

	got, err := reg.Dispatch("UART", "read", obj, []script.Value{script.Int(2)}, nil)
	if err != nil || string(got.Bytes()) != "tw" {
		t.Errorf("read(2): expected \"tw\", got %q err=%v", got.Bytes(), err)
	}
	avail, _ := reg.Dispatch("UART", "bytes_available", obj, nil, nil)
	if avail.Int() != 1 {
		t.Errorf("bytes_available: expected 1, got %d", avail.Int())
	}

	_, err = reg.Dispatch("UART", "read", obj, []script.Value{script.Str("2")}, nil)
	if err == nil || err.Error() != "ArgumentError" {
		t.Errorf("read(string): expected bare ArgumentError, got %v", err)
	}
}

func TestUARTPuts(t *testing.T) {
	reg, drv := uartEnv()
	obj := uartNew(t, reg, nil, nil)

	testCases := []struct {
		name   string
		arg    string
		wantTx []string
	}{
		{"bare text gains newline", "hi", []string{"hi", "\n"}},
		{"trailing newline kept", "hi\n", []string{"hi\n"}},
		{"empty string is one newline", "", []string{"", "\n"}},
	}

	for _, tc := range testCases {
		drv.tx = nil
		got, err := reg.Dispatch("UART", "puts", obj, []script.Value{script.Str(tc.arg)}, nil)
		if err != nil {
			t.Errorf("%s: puts returned error: %v", tc.name, err)
			continue
		}
		if !got.IsNil() {
			t.Errorf("%s: puts should answer nil, got %v", tc.name, got)
		}
		if len(drv.tx) != len(tc.wantTx) {
			t.Errorf("%s: expected tx %q, got %q", tc.name, tc.wantTx, drv.tx)
			continue
		}
		for i := range tc.wantTx {
			if drv.tx[i] != tc.wantTx[i] {
				t.Errorf("%s: tx %d: expected %q, got %q", tc.name, i, tc.wantTx[i], drv.tx[i])
			}
		}
	}

	_, err := reg.Dispatch("UART", "puts", obj, []script.Value{script.Int(42)}, nil)
	if err == nil || err.Error() != "ArgumentError" {
		t.Errorf("puts(int): expected bare ArgumentError, got %v", err)
	}
}

func TestUARTBufferControls(t *testing.T) {
	reg, drv := uartEnv()
	obj := uartNew(t, reg, nil, nil)
	wire := drv.wires[1]

	n, err := reg.Dispatch("UART", "bytes_to_write", obj, nil, nil)
	if err != nil || n.Int() != 0 {
		t.Errorf("bytes_to_write: expected 0, got %d err=%v", n.Int(), err)
	}

	wire.feed([]byte("junk"))
	if _, err := reg.Dispatch("UART", "clear_rx_buffer", obj, nil, nil); err != nil {
		t.Fatalf("clear_rx_buffer returned error: %v", err)
	}
	avail, _ := reg.Dispatch("UART", "bytes_available", obj, nil, nil)
	if avail.Int() != 0 {
		t.Errorf("bytes_available after clear: expected 0, got %d", avail.Int())
	}
	wire.feed([]byte("ok\n"))
	line, err := reg.Dispatch("UART", "gets", obj, nil, nil)
	if err != nil || string(line.Bytes()) != "ok" {
		t.Errorf("gets after clear: expected \"ok\", got %q err=%v", line.Bytes(), err)
	}

	for _, method := range []string{"flush", "clear_tx_buffer"} {
		v, err := reg.Dispatch("UART", method, obj, nil, nil)
		if err != nil || !v.IsNil() {
			t.Errorf("%s: expected quiet nil, got %v err=%v", method, v, err)
		}
	}

	_, err = reg.Dispatch("UART", "send_break", obj, nil, nil)
	if script.ClassOf(err) != script.NotImplementedError {
		t.Errorf("send_break: expected NotImplementedError, got %v", err)
	}
}
