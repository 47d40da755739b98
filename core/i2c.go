package core

import "pinion/script"

// RegisterI2C defines the I2C script class over the board's primary
// bus. Construction takes no arguments; the bus is brought up by the
// target before registration.
func RegisterI2C(reg *script.Registry, drv I2CDriver) {
	cls := reg.DefineClass("I2C")

	cls.Define("new", func(call *script.Call) (script.Value, error) {
		return script.Obj(cls.NewObject(nil)), nil
	})

	// s = i2c.read(adrs, n)            plain receive
	// s = i2c.read(adrs, n, 0x0F)      8-bit register read
	// s = i2c.read(adrs, n, 0x12, 34)  16-bit register read
	//
	// Extra parameters are marshaled and sent before a repeated start.
	cls.Define("read", func(call *script.Call) (script.Value, error) {
		errParam := script.Raise(script.ArgumentError, "i2c#read: parameter error.")
		if len(call.Args) < 2 {
			return script.Nil(), errParam
		}
		if call.Arg(0).Kind() != script.KindInt || call.Arg(1).Kind() != script.KindInt {
			return script.Nil(), errParam
		}
		adrs := uint16(call.Arg(0).Int())
		n := int(call.Arg(1).Int())
		if n < 0 {
			return script.Nil(), errParam
		}

		var reg []byte
		if len(call.Args) > 2 {
			buf, err := BuildTxData(call.Args[2:])
			if err != nil {
				return script.Nil(), err
			}
			if len(buf) > 2 {
				return script.Nil(), script.Raise(script.RuntimeError,
					"i2c#read: output parameter must be less than 2 bytes.")
			}
			reg = buf
		}

		p := make([]byte, n)
		if err := drv.Tx(adrs, reg, p); err != nil {
			return script.Nil(), halError("i2c#read: ", err)
		}
		return script.Bytes(p), nil
	})

	// i2c.write(adrs, data...) returns the number of bytes written.
	cls.Define("write", func(call *script.Call) (script.Value, error) {
		errParam := script.Raise(script.ArgumentError, "i2c#write: parameter error.")
		if len(call.Args) < 1 {
			return script.Nil(), errParam
		}
		if call.Arg(0).Kind() != script.KindInt {
			return script.Nil(), errParam
		}
		adrs := uint16(call.Arg(0).Int())

		buf, err := BuildTxData(call.Args[1:])
		if err != nil {
			return script.Nil(), err
		}
		if err := drv.Tx(adrs, buf, nil); err != nil {
			return script.Nil(), halError("i2c#write: ", err)
		}
		return script.Int(int64(len(buf))), nil
	})
}
