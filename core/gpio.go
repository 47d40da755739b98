package core

import "pinion/script"

// RegisterGPIO defines the GPIO script class. The board supplies the
// logical pin table for the resolver; drv performs the pin operations.
//
// Class-level operations take a pin descriptor; instance operations use
// the pin resolved at construction.
func RegisterGPIO(reg *script.Registry, board *Board, drv GPIODriver) {
	cls := reg.DefineClass("GPIO")

	cls.Const("IN", int64(ModeIn))
	cls.Const("OUT", int64(ModeOut))
	cls.Const("HIGH_Z", int64(ModeHighZ))
	cls.Const("PULL_UP", int64(ModePullUp))
	cls.Const("PULL_DOWN", int64(ModePullDown))
	cls.Const("OPEN_DRAIN", int64(ModeOpenDrain))

	// gpio = GPIO.new("PA0", GPIO.OUT)   descriptor form
	// gpio = GPIO.new(0, GPIO.OUT)       board-logical form
	cls.Define("new", func(call *script.Call) (script.Value, error) {
		errInit := script.Raise(script.ArgumentError, "GPIO initialize")
		if len(call.Args) != 2 || call.Arg(1).Kind() != script.KindInt {
			return script.Nil(), errInit
		}
		pin, err := ParsePin(call.Arg(0), board)
		if err != nil {
			return script.Nil(), errInit
		}
		mode := PinMode(call.Arg(1).Int())
		if mode&(ModeIn|ModeOut|ModeHighZ) == 0 {
			return script.Nil(), errInit
		}
		if err := drv.SetMode(pin, mode); err != nil {
			return script.Nil(), errInit
		}
		return script.Obj(cls.NewObject(pin)), nil
	})

	// GPIO.setmode("PA0", GPIO.IN)   class form
	// gpio.setmode(GPIO.PULL_UP)     instance form
	cls.Define("setmode", func(call *script.Call) (script.Value, error) {
		errSetup := script.Raise(script.ArgumentError, "GPIO Can't setup")

		var pin Pin
		var modeArg script.Value
		if call.Recv != nil {
			pin = call.Recv.Data.(Pin)
			modeArg = call.Arg(0)
		} else {
			if len(call.Args) != 2 {
				return script.Nil(), errSetup
			}
			p, err := ParsePin(call.Arg(0), board)
			if err != nil {
				return script.Nil(), errSetup
			}
			pin = p
			modeArg = call.Arg(1)
		}

		if modeArg.Kind() != script.KindInt {
			return script.Nil(), errSetup
		}
		if err := drv.SetMode(pin, PinMode(modeArg.Int())); err != nil {
			return script.Nil(), errSetup
		}
		return script.Nil(), nil
	})

	// Class-level reads return nil for an unresolvable descriptor rather
	// than raising, so a probe of an absent pin stays quiet.
	cls.Define("read_at", func(call *script.Call) (script.Value, error) {
		pin, err := ParsePin(call.Arg(0), board)
		if err != nil {
			return script.Nil(), nil
		}
		level, err := drv.Read(pin)
		if err != nil {
			return script.Nil(), err
		}
		return script.Int(boolToInt(level)), nil
	})

	cls.Define("high_at?", func(call *script.Call) (script.Value, error) {
		pin, err := ParsePin(call.Arg(0), board)
		if err != nil {
			return script.Nil(), nil
		}
		level, err := drv.Read(pin)
		if err != nil {
			return script.Nil(), err
		}
		return script.Bool(level), nil
	})

	cls.Define("low_at?", func(call *script.Call) (script.Value, error) {
		pin, err := ParsePin(call.Arg(0), board)
		if err != nil {
			return script.Nil(), nil
		}
		level, err := drv.Read(pin)
		if err != nil {
			return script.Nil(), err
		}
		return script.Bool(!level), nil
	})

	cls.Define("write_at", func(call *script.Call) (script.Value, error) {
		pin, err := ParsePin(call.Arg(0), board)
		if err != nil || call.Arg(1).Kind() != script.KindInt {
			return script.Nil(), script.Raise(script.ArgumentError, "")
		}
		return writeLevel(drv, pin, call.Arg(1).Int())
	})

	cls.Define("read", func(call *script.Call) (script.Value, error) {
		level, err := drv.Read(call.Recv.Data.(Pin))
		if err != nil {
			return script.Nil(), err
		}
		return script.Int(boolToInt(level)), nil
	})

	cls.Define("high?", func(call *script.Call) (script.Value, error) {
		level, err := drv.Read(call.Recv.Data.(Pin))
		if err != nil {
			return script.Nil(), err
		}
		return script.Bool(level), nil
	})

	cls.Define("low?", func(call *script.Call) (script.Value, error) {
		level, err := drv.Read(call.Recv.Data.(Pin))
		if err != nil {
			return script.Nil(), err
		}
		return script.Bool(!level), nil
	})

	// A non-integer level is ignored here; only write_at raises for it.
	cls.Define("write", func(call *script.Call) (script.Value, error) {
		if call.Arg(0).Kind() != script.KindInt {
			return script.Nil(), nil
		}
		return writeLevel(drv, call.Recv.Data.(Pin), call.Arg(0).Int())
	})
}

// writeLevel drives a pin from a script integer. Only 0 and 1 are legal
// levels; anything else is a range error.
func writeLevel(drv GPIODriver, pin Pin, val int64) (script.Value, error) {
	if val < 0 || val > 1 {
		return script.Nil(), script.Raise(script.RangeError, "")
	}
	if err := drv.Write(pin, val == 1); err != nil {
		return script.Nil(), err
	}
	return script.Nil(), nil
}

func boolToInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
