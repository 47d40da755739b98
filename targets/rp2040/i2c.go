//go:build rp2040

package main

import (
	"machine"
	"sync"
)

// RPI2CDriver implements core.I2CDriver on I2C0, the bus the board table
// routes to GP4/GP5.
type RPI2CDriver struct {
	mu sync.Mutex
	hw *machine.I2C
}

// NewRPI2CDriver brings up I2C0 in controller mode at 100 kHz.
func NewRPI2CDriver() (*RPI2CDriver, error) {
	hw := machine.I2C0
	err := hw.Configure(machine.I2CConfig{
		Frequency: 100 * machine.KHz,
		SDA:       machine.I2C0_SDA_PIN,
		SCL:       machine.I2C0_SCL_PIN,
	})
	if err != nil {
		return nil, err
	}
	return &RPI2CDriver{hw: hw}, nil
}

func (d *RPI2CDriver) Tx(addr uint16, w, r []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hw.Tx(addr, w, r)
}

// MachineBus exposes the underlying bus for TinyGo peripheral drivers
// that take it directly.
func (d *RPI2CDriver) MachineBus() *machine.I2C {
	return d.hw
}
