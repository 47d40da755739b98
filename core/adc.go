package core

import "pinion/script"

// RegisterADC defines the ADC script class over the board's analog
// capability table.
func RegisterADC(reg *script.Registry, board *Board, drv ADCDriver) {
	cls := reg.DefineClass("ADC")

	// adc = ADC.new("PA0")   descriptor form
	// adc = ADC.new(1)       index into the board's ADC table
	cls.Define("new", func(call *script.Call) (script.Value, error) {
		errInit := script.Raise(script.ArgumentError, "ADC initialize.")
		if len(call.Args) != 1 {
			return script.Nil(), errInit
		}

		var ch ADCChannel
		switch arg := call.Arg(0); arg.Kind() {
		case script.KindInt:
			c, ok := board.ADCByIndex(int(arg.Int()))
			if !ok {
				return script.Nil(), errInit
			}
			ch = c
		case script.KindBytes:
			pin, err := ParsePin(arg, board)
			if err != nil {
				return script.Nil(), errInit
			}
			c, ok := board.FindADC(pin)
			if !ok {
				return script.Nil(), errInit
			}
			ch = c
		default:
			return script.Nil(), errInit
		}

		if err := drv.Configure(ch); err != nil {
			return script.Nil(), errInit
		}
		return script.Obj(cls.NewObject(ch)), nil
	})

	cls.Define("read_voltage", func(call *script.Call) (script.Value, error) {
		raw := readRawQuiet(drv, call.Recv.Data.(ADCChannel))
		volts := float64(raw) * board.VRef / float64(board.ADCFullScale)
		return script.Float(volts), nil
	})

	// read is an alias for read_voltage.
	cls.Define("read", func(call *script.Call) (script.Value, error) {
		raw := readRawQuiet(drv, call.Recv.Data.(ADCChannel))
		volts := float64(raw) * board.VRef / float64(board.ADCFullScale)
		return script.Float(volts), nil
	})

	cls.Define("read_raw", func(call *script.Call) (script.Value, error) {
		raw := readRawQuiet(drv, call.Recv.Data.(ADCChannel))
		return script.Int(int64(raw)), nil
	})
}

// readRawQuiet samples the channel, reporting a failed conversion as a
// zero reading rather than an error.
func readRawQuiet(drv ADCDriver, ch ADCChannel) uint32 {
	v, err := drv.ReadRaw(ch)
	if err != nil {
		return 0
	}
	return v
}
