package core

import "pinion/script"

// pwmHandle tracks the divider state programmed into a PWM output so
// later duty and pulse-width updates can be scaled against it.
type pwmHandle struct {
	out    PWMOutput
	psc    uint16
	period uint16
	duty   uint16
}

const pwmDutyDefault = 65535 / 2 // 50% of the 16-bit duty range

// RegisterPWM defines the PWM script class over the board's timer
// capability table.
func RegisterPWM(reg *script.Registry, board *Board, drv PWMDriver) {
	cls := reg.DefineClass("PWM")

	// pwm = PWM.new("PB4", frequency: 440, duty: 30)
	cls.Define("new", func(call *script.Call) (script.Value, error) {
		for name := range call.KW {
			switch name {
			case "frequency", "freq", "duty":
			default:
				return script.Nil(), script.Raise(script.ArgumentError, "")
			}
		}

		errInit := script.Raise(script.ArgumentError, "PWM initialize.")
		pin, err := ParsePin(call.Arg(0), board)
		if err != nil {
			return script.Nil(), errInit
		}
		out, ok := board.FindPWM(pin)
		if !ok {
			return script.Nil(), errInit
		}

		h := &pwmHandle{out: out, duty: pwmDutyDefault}
		for _, name := range []string{"frequency", "freq"} {
			if f, ok := numericKw(call, name); ok {
				if err := h.setFrequency(drv, f); err != nil {
					return script.Nil(), errInit
				}
			}
		}
		if d, ok := numericKw(call, "duty"); ok {
			if err := h.setDuty(drv, d); err != nil {
				return script.Nil(), errInit
			}
		}

		// Route the pin to the timer only after the divider is set so a
		// half-programmed output never reaches the pin.
		if err := drv.Configure(out); err != nil {
			return script.Nil(), errInit
		}
		if h.period != 0 {
			if err := drv.Start(out); err != nil {
				return script.Nil(), errInit
			}
		}
		return script.Obj(cls.NewObject(h)), nil
	})

	// Non-numeric arguments are ignored so a stray nil from script code
	// leaves the output running at its last setting.
	cls.Define("frequency", func(call *script.Call) (script.Value, error) {
		f, ok := call.Arg(0).Numeric()
		if !ok {
			return script.Nil(), nil
		}
		h := call.Recv.Data.(*pwmHandle)
		if err := h.setFrequency(drv, f); err != nil {
			return script.Nil(), err
		}
		return script.Nil(), nil
	})

	cls.Define("period_us", func(call *script.Call) (script.Value, error) {
		f, ok := call.Arg(0).Numeric()
		if !ok {
			return script.Nil(), nil
		}
		us := int64(f)
		var freq float64
		if us != 0 {
			freq = 1e6 / float64(us)
		}
		h := call.Recv.Data.(*pwmHandle)
		if err := h.setFrequency(drv, freq); err != nil {
			return script.Nil(), err
		}
		return script.Nil(), nil
	})

	cls.Define("duty", func(call *script.Call) (script.Value, error) {
		percent, ok := call.Arg(0).Numeric()
		if !ok {
			return script.Nil(), nil
		}
		h := call.Recv.Data.(*pwmHandle)
		if err := h.setDuty(drv, percent); err != nil {
			return script.Nil(), err
		}
		return script.Nil(), nil
	})

	cls.Define("pulse_width_us", func(call *script.Call) (script.Value, error) {
		f, ok := call.Arg(0).Numeric()
		if !ok {
			return script.Nil(), nil
		}
		h := call.Recv.Data.(*pwmHandle)
		if err := h.setPulseWidth(drv, int64(f)); err != nil {
			return script.Nil(), err
		}
		return script.Nil(), nil
	})
}

// setFrequency derives the prescaler and period from the timer base
// clock. The prescaler is chosen so the period fits a 16-bit counter,
// then the compare value is rescaled to hold the current duty ratio.
// A zero frequency parks the output without touching the divider.
func (h *pwmHandle) setFrequency(drv PWMDriver, freq float64) error {
	if freq == 0 {
		h.period = 0
		return drv.SetCompare(h.out, 0)
	}
	psAr := uint32(float64(drv.BaseFrequency()) / freq)
	psc := psAr >> 16
	arr := psAr/(psc+1) - 1
	h.psc = uint16(psc)
	h.period = uint16(arr)
	if err := drv.SetDivider(h.out, psc, arr); err != nil {
		return err
	}
	return drv.SetCompare(h.out, arr*uint32(h.duty)/65535)
}

// setDuty updates the stored duty ratio and rescales the compare value
// against the current period.
func (h *pwmHandle) setDuty(drv PWMDriver, percent float64) error {
	h.duty = uint16(percent / 100 * 65535)
	compare := uint32(float64(h.period) * percent / 100)
	return drv.SetCompare(h.out, compare)
}

// setPulseWidth programs the compare value directly from a width in
// microseconds, scaled by the prescaled tick rate. The result is bound
// to the counter's 16-bit range.
func (h *pwmHandle) setPulseWidth(drv PWMDriver, us int64) error {
	ticksPerUs := int64(drv.BaseFrequency() / 1000000)
	compare := us*ticksPerUs/int64(h.psc+1) - 1
	return drv.SetCompare(h.out, uint32(uint16(compare)))
}

// numericKw returns the keyword argument under name when it carries a
// numeric value.
func numericKw(call *script.Call, name string) (float64, bool) {
	if v, ok := call.KW[name]; ok {
		if f, ok := v.Numeric(); ok {
			return f, true
		}
	}
	return 0, false
}
