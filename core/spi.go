package core

import "pinion/script"

// RegisterSPI defines the SPI script class over the board's primary
// bus.
func RegisterSPI(reg *script.Registry, drv SPIDriver) {
	cls := reg.DefineClass("SPI")

	cls.Const("MSB_FIRST", int64(BitMSBFirst))
	cls.Const("LSB_FIRST", int64(BitLSBFirst))

	// spi = SPI.new(frequency: 1_000_000, mode: 0, first_bit: SPI.MSB_FIRST)
	cls.Define("new", func(call *script.Call) (script.Value, error) {
		if err := applySPISetmode(drv, call.KW); err != nil {
			return script.Nil(), err
		}
		return script.Obj(cls.NewObject(nil)), nil
	})

	cls.Define("setmode", func(call *script.Call) (script.Value, error) {
		if err := applySPISetmode(drv, call.KW); err != nil {
			return script.Nil(), err
		}
		return script.Nil(), nil
	})

	// read clocks out n zero bytes and returns what came back.
	cls.Define("read", func(call *script.Call) (script.Value, error) {
		if call.Arg(0).Kind() != script.KindInt {
			return script.Nil(), script.Raise(script.ArgumentError, "")
		}
		n := int(call.Arg(0).Int())
		if n < 0 {
			return script.Nil(), script.Raise(script.ArgumentError, "")
		}
		buf := make([]byte, n)
		if err := drv.Transfer(buf, buf); err != nil {
			return script.Nil(), halError("", err)
		}
		return script.Bytes(buf), nil
	})

	cls.Define("write", func(call *script.Call) (script.Value, error) {
		buf, err := BuildTxData(call.Args)
		if err != nil {
			return script.Nil(), err
		}
		if err := drv.Transfer(buf, nil); err != nil {
			return script.Nil(), halError("", err)
		}
		return script.Nil(), nil
	})

	// transfer marshals only its first argument; additional_read_bytes
	// extends the exchange with that many zero bytes. The whole exchange
	// is returned, reply bytes overwriting the buffer in place.
	//
	// s = spi.transfer(0x8F, 2)
	cls.Define("transfer", func(call *script.Call) (script.Value, error) {
		if len(call.Args) == 0 {
			return script.Nil(), script.Raise(script.ArgumentError, "")
		}
		buf, err := BuildTxData(call.Args[:1])
		if err != nil {
			return script.Nil(), err
		}
		if len(call.Args) >= 2 {
			if call.Arg(1).Kind() != script.KindInt {
				return script.Nil(), script.Raise(script.ArgumentError, "")
			}
			extra := int(call.Arg(1).Int())
			if extra < 0 {
				return script.Nil(), script.Raise(script.ArgumentError, "")
			}
			buf = append(buf, make([]byte, extra)...)
		}
		if err := drv.Transfer(buf, buf); err != nil {
			return script.Nil(), halError("", err)
		}
		return script.Bytes(buf), nil
	})
}

// applySPISetmode validates bus-setting keywords and pushes them to the
// driver. The unit keyword is accepted and ignored; there is a single
// bus. Absent settings pass through as -1, meaning keep the current
// hardware value.
func applySPISetmode(drv SPIDriver, kw map[string]script.Value) error {
	for name := range kw {
		switch name {
		case "unit", "frequency", "mode", "first_bit":
		default:
			return script.Raise(script.ArgumentError, "")
		}
	}

	intKw := func(name string) (int64, bool, error) {
		v, ok := kw[name]
		if !ok {
			return 0, false, nil
		}
		if v.Kind() != script.KindInt {
			return 0, false, script.Raise(script.ArgumentError, "")
		}
		return v.Int(), true, nil
	}

	mode := SPIMode{Frequency: -1, Mode: -1, FirstBit: -1}
	if v, ok, err := intKw("frequency"); err != nil {
		return err
	} else if ok {
		mode.Frequency = int32(v)
	}
	if v, ok, err := intKw("mode"); err != nil {
		return err
	} else if ok {
		if v < 0 || v > 3 {
			return script.Raise(script.ArgumentError, "")
		}
		mode.Mode = int8(v)
	}
	if v, ok, err := intKw("first_bit"); err != nil {
		return err
	} else if ok {
		if v != BitMSBFirst && v != BitLSBFirst {
			return script.Raise(script.ArgumentError, "")
		}
		mode.FirstBit = int8(v)
	}

	if err := drv.Configure(mode); err != nil {
		return script.Raise(script.ArgumentError, "")
	}
	return nil
}
