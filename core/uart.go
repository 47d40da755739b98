package core

import "pinion/script"

// uartHandle pairs a board UART unit with its receive ring. Handles are
// shared per unit so every script object for the same port sees one
// read cursor.
type uartHandle struct {
	unit int
	ring *Ring
}

// setmodeKeys are the line-setting keywords a UART accepts. Keys mapped
// to false name settings the hardware layer does not expose.
var setmodeKeys = map[string]bool{
	"baudrate":     true,
	"baud":         true,
	"stop_bits":    true,
	"parity":       true,
	"data_bits":    false,
	"flow_control": false,
	"txd_pin":      false,
	"rxd_pin":      false,
	"rts_pin":      false,
	"cts_pin":      false,
}

// RegisterUART defines the UART script class over the board's port
// table.
func RegisterUART(reg *script.Registry, board *Board, drv UARTDriver) {
	cls := reg.DefineClass("UART")

	cls.Const("NONE", int64(ParityNone))
	cls.Const("ODD", int64(ParityOdd))
	cls.Const("EVEN", int64(ParityEven))

	handles := make(map[int]*uartHandle)

	// uart = UART.new(2, baudrate: 19200)
	// uart = UART.new(unit: 2)
	cls.Define("new", func(call *script.Call) (script.Value, error) {
		errInit := script.Raise(script.ArgumentError, "UART initialize.")

		unitNum := 1
		if a := call.Arg(0); a.Kind() == script.KindInt {
			unitNum = int(a.Int())
		}
		if kw, ok := call.KW["unit"]; ok {
			if kw.Kind() != script.KindInt {
				return script.Nil(), errInit
			}
			unitNum = int(kw.Int())
		}

		port, ok := board.FindUART(unitNum)
		if !ok {
			return script.Nil(), errInit
		}

		h := handles[unitNum]
		if h == nil {
			buf := make([]byte, port.RingSize)
			cur, err := drv.StartReceive(port.Unit, buf)
			if err != nil {
				return script.Nil(), errInit
			}
			h = &uartHandle{unit: port.Unit, ring: NewRing(buf, cur, port.Delim)}
			handles[unitNum] = h
		}

		rest := make(map[string]script.Value, len(call.KW))
		for k, v := range call.KW {
			if k != "unit" {
				rest[k] = v
			}
		}
		if err := applySetmode(drv, h.unit, rest); err != nil {
			return script.Nil(), err
		}
		return script.Obj(cls.NewObject(h)), nil
	})

	// uart.setmode(baudrate: 38400, parity: UART.EVEN)
	cls.Define("setmode", func(call *script.Call) (script.Value, error) {
		h := call.Recv.Data.(*uartHandle)
		if err := applySetmode(drv, h.unit, call.KW); err != nil {
			return script.Nil(), err
		}
		return script.Nil(), nil
	})

	// read blocks until exactly n bytes have arrived.
	cls.Define("read", func(call *script.Call) (script.Value, error) {
		if call.Arg(0).Kind() != script.KindInt {
			return script.Nil(), script.Raise(script.ArgumentError, "")
		}
		h := call.Recv.Data.(*uartHandle)
		return script.Bytes(h.ring.Read(int(call.Arg(0).Int()))), nil
	})

	cls.Define("write", func(call *script.Call) (script.Value, error) {
		data, err := BuildTxData(call.Args)
		if err != nil {
			return script.Nil(), err
		}
		h := call.Recv.Data.(*uartHandle)
		if err := drv.Transmit(h.unit, data); err != nil {
			return script.Nil(), err
		}
		return script.Int(int64(len(data))), nil
	})

	// gets blocks until a full line has arrived. The returned line does
	// not include the delimiter.
	cls.Define("gets", func(call *script.Call) (script.Value, error) {
		h := call.Recv.Data.(*uartHandle)
		return script.Bytes(h.ring.ReadLine()), nil
	})

	cls.Define("puts", func(call *script.Call) (script.Value, error) {
		if call.Arg(0).Kind() != script.KindBytes {
			return script.Nil(), script.Raise(script.ArgumentError, "")
		}
		h := call.Recv.Data.(*uartHandle)
		s := call.Arg(0).Bytes()
		if err := drv.Transmit(h.unit, s); err != nil {
			return script.Nil(), err
		}
		if len(s) == 0 || s[len(s)-1] != '\n' {
			if err := drv.Transmit(h.unit, []byte{'\n'}); err != nil {
				return script.Nil(), err
			}
		}
		return script.Nil(), nil
	})

	cls.Define("bytes_available", func(call *script.Call) (script.Value, error) {
		h := call.Recv.Data.(*uartHandle)
		return script.Int(int64(h.ring.BytesAvailable())), nil
	})

	// No transmit buffering, so nothing is ever waiting to be written.
	cls.Define("bytes_to_write", func(call *script.Call) (script.Value, error) {
		return script.Int(0), nil
	})

	cls.Define("can_read_line", func(call *script.Call) (script.Value, error) {
		h := call.Recv.Data.(*uartHandle)
		return script.Bool(h.ring.CanReadLine() != 0), nil
	})

	cls.Define("is_readable", func(call *script.Call) (script.Value, error) {
		h := call.Recv.Data.(*uartHandle)
		return script.Bool(h.ring.IsReadable()), nil
	})

	cls.Define("flush", func(call *script.Call) (script.Value, error) {
		return script.Nil(), nil
	})

	cls.Define("clear_rx_buffer", func(call *script.Call) (script.Value, error) {
		h := call.Recv.Data.(*uartHandle)
		h.ring.Clear()
		return script.Nil(), nil
	})

	cls.Define("clear_tx_buffer", func(call *script.Call) (script.Value, error) {
		return script.Nil(), nil
	})

	cls.Define("send_break", func(call *script.Call) (script.Value, error) {
		return script.Nil(), script.Raise(script.NotImplementedError, "")
	})
}

// applySetmode validates line-setting keywords and pushes them to the
// driver. Absent settings pass through as -1, meaning keep the current
// hardware value.
func applySetmode(drv UARTDriver, unit int, kw map[string]script.Value) error {
	for name := range kw {
		if _, known := setmodeKeys[name]; !known {
			return script.Raise(script.ArgumentError, "")
		}
	}
	for _, name := range []string{"data_bits", "flow_control", "txd_pin", "rxd_pin", "rts_pin", "cts_pin"} {
		if _, ok := kw[name]; ok {
			return script.Raise(script.NotImplementedError, "")
		}
	}

	intKw := func(name string) (int, bool, error) {
		v, ok := kw[name]
		if !ok {
			return 0, false, nil
		}
		if v.Kind() != script.KindInt {
			return 0, false, script.Raise(script.ArgumentError, "")
		}
		return int(v.Int()), true, nil
	}

	baud := -1
	if v, ok, err := intKw("baudrate"); err != nil {
		return err
	} else if ok {
		baud = v
	}
	if v, ok, err := intKw("baud"); err != nil {
		return err
	} else if ok {
		baud = v
	}
	stop := -1
	if v, ok, err := intKw("stop_bits"); err != nil {
		return err
	} else if ok {
		stop = v
	}
	parity := -1
	if v, ok, err := intKw("parity"); err != nil {
		return err
	} else if ok {
		parity = v
	}

	if parity < -1 || parity > ParityEven {
		return script.Raise(script.ArgumentError, "")
	}
	if stop != -1 && stop != 1 && stop != 2 {
		return script.Raise(script.ArgumentError, "")
	}
	if baud > 0 && baud < 2400 {
		return script.Raise(script.ArgumentError, "")
	}

	if err := drv.Configure(unit, UARTMode{BaudRate: baud, Parity: parity, StopBits: stop}); err != nil {
		return script.Raise(script.ArgumentError, "")
	}
	return nil
}
