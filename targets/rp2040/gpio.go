//go:build rp2040

package main

import (
	"errors"
	"machine"
	"pinion/core"
)

// gpioPad flattens a port/pin identity onto the flat GPIO bank. Ports
// cover the bank in runs of sixteen, matching the board table: PA0..PA15
// are GP0..GP15 and PB0..PB13 are GP16..GP29.
func gpioPad(p core.Pin) (machine.Pin, bool) {
	if p.Port == 0 {
		return 0, false
	}
	n := (int(p.Port)-1)*16 + int(p.Num)
	if n > 29 {
		return 0, false
	}
	return machine.Pin(n), true
}

var errNoPad = errors.New("gpio: no such pad")

// RPGPIODriver implements core.GPIODriver over TinyGo's machine.Pin.
//
// The pad block has no open drain mode, so open drain outputs are
// emulated: driving low configures the pad as an output holding low,
// releasing configures it back to an input and lets the pull raise the
// line.
type RPGPIODriver struct {
	od     [30]bool // open drain emulation active
	odPull [30]bool // release with the internal pull up
}

// NewRPGPIODriver creates the RP2040 GPIO driver.
func NewRPGPIODriver() *RPGPIODriver {
	return &RPGPIODriver{}
}

func (d *RPGPIODriver) SetMode(pin core.Pin, mode core.PinMode) error {
	pad, ok := gpioPad(pin)
	if !ok {
		return errNoPad
	}
	idx := int(pad)
	d.od[idx] = false

	switch {
	case mode&core.ModeOut != 0 && mode&core.ModeOpenDrain != 0:
		d.od[idx] = true
		d.odPull[idx] = mode&core.ModePullUp != 0
		pad.Configure(machine.PinConfig{Mode: d.releaseMode(idx)})
	case mode&core.ModeOut != 0:
		pad.Configure(machine.PinConfig{Mode: machine.PinOutput})
	case mode&(core.ModeIn|core.ModeHighZ) != 0:
		m := machine.PinInput
		if mode&core.ModePullUp != 0 {
			m = machine.PinInputPullup
		} else if mode&core.ModePullDown != 0 {
			m = machine.PinInputPulldown
		}
		pad.Configure(machine.PinConfig{Mode: m})
	default:
		return errors.New("gpio: mode selects no direction")
	}
	return nil
}

func (d *RPGPIODriver) Write(pin core.Pin, level bool) error {
	pad, ok := gpioPad(pin)
	if !ok {
		return errNoPad
	}
	idx := int(pad)
	if d.od[idx] {
		if level {
			pad.Configure(machine.PinConfig{Mode: d.releaseMode(idx)})
		} else {
			// Preload the output latch so the pad never drives high.
			pad.Low()
			pad.Configure(machine.PinConfig{Mode: machine.PinOutput})
		}
		return nil
	}
	pad.Set(level)
	return nil
}

func (d *RPGPIODriver) Read(pin core.Pin) (bool, error) {
	pad, ok := gpioPad(pin)
	if !ok {
		return false, errNoPad
	}
	return pad.Get(), nil
}

// releaseMode is the pad state of a released open drain output.
func (d *RPGPIODriver) releaseMode(idx int) machine.PinMode {
	if d.odPull[idx] {
		return machine.PinInputPullup
	}
	return machine.PinInput
}
