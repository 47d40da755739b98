//go:build rp2040

package main

import (
	"errors"
	"machine"
	"pinion/core"
)

// pwmSlice abstracts machine's unexported *pwmGroup type so the driver
// can hold any of the eight slices behind one value.
type pwmSlice interface {
	Configure(config machine.PWMConfig) error
	Top() uint32
	Set(channel uint8, value uint32)
	Enable(enable bool)
}

// RPPWMDriver implements core.PWMDriver on the hardware PWM slices.
//
// The prescaled-counter divider model is reconstructed onto TinyGo's
// period-based API: prescale and period collapse into one period in
// nanoseconds for Configure, and compare values rescale from the
// programmed period onto the slice's hardware Top.
type RPPWMDriver struct {
	// period counts per slice, as programmed through SetDivider
	periods [8]uint32
}

// NewRPPWMDriver creates the RP2040 PWM driver.
func NewRPPWMDriver() *RPPWMDriver {
	return &RPPWMDriver{}
}

// BaseFrequency returns the undivided slice clock, which counts at the
// system clock rate.
func (d *RPPWMDriver) BaseFrequency() uint32 {
	return machine.CPUFrequency()
}

// Configure switches the output's pad to its PWM function. The board
// table guarantees the pad belongs to the slice in out.Unit.
func (d *RPPWMDriver) Configure(out core.PWMOutput) error {
	pad, ok := gpioPad(out.Pin)
	if !ok {
		return errors.New("pwm: no such pad")
	}
	pad.Configure(machine.PinConfig{Mode: machine.PinPWM})
	return nil
}

func (d *RPPWMDriver) SetDivider(out core.PWMOutput, prescale, period uint32) error {
	ticks := (uint64(prescale) + 1) * (uint64(period) + 1)
	ns := ticks * 1_000_000_000 / uint64(machine.CPUFrequency())
	if err := sliceOf(out).Configure(machine.PWMConfig{Period: ns}); err != nil {
		return err
	}
	d.periods[out.Unit&7] = period
	return nil
}

func (d *RPPWMDriver) SetCompare(out core.PWMOutput, compare uint32) error {
	s := sliceOf(out)
	period := d.periods[out.Unit&7]
	if period == 0 {
		s.Set(channelOf(out), 0)
		return nil
	}
	level := uint64(compare) * (uint64(s.Top()) + 1) / (uint64(period) + 1)
	s.Set(channelOf(out), uint32(level))
	return nil
}

func (d *RPPWMDriver) Start(out core.PWMOutput) error {
	sliceOf(out).Enable(true)
	return nil
}

// sliceOf returns the slice peripheral for an output's unit number.
func sliceOf(out core.PWMOutput) pwmSlice {
	switch out.Unit & 7 {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

// channelOf maps the table's channel number (1 = A, 2 = B) onto the
// hardware channel index.
func channelOf(out core.PWMOutput) uint8 {
	return uint8(out.Channel-1) & 1
}
