//go:build rp2040

package main

import (
	"machine"
	"pinion/core"
	"sync"
)

// RPSPIDriver implements core.SPIDriver on SPI0 over the board table's
// GP18/GP19/GP16 routing. The controller shifts MSB first; an LSB-first
// request is passed through to the machine layer, which rejects it.
type RPSPIDriver struct {
	mu  sync.Mutex
	hw  *machine.SPI
	cfg machine.SPIConfig
}

// NewRPSPIDriver brings up SPI0 in mode 0 at 1 MHz.
func NewRPSPIDriver() (*RPSPIDriver, error) {
	d := &RPSPIDriver{
		hw: machine.SPI0,
		cfg: machine.SPIConfig{
			Frequency: 1 * machine.MHz,
			SCK:       machine.SPI0_SCK_PIN,
			SDO:       machine.SPI0_SDO_PIN,
			SDI:       machine.SPI0_SDI_PIN,
		},
	}
	if err := d.hw.Configure(d.cfg); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *RPSPIDriver) Configure(mode core.SPIMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	cfg := d.cfg
	if mode.Frequency > 0 {
		cfg.Frequency = uint32(mode.Frequency)
	}
	if mode.Mode >= 0 {
		cfg.Mode = uint8(mode.Mode)
	}
	if mode.FirstBit >= 0 {
		cfg.LSBFirst = mode.FirstBit == core.BitLSBFirst
	}
	if err := d.hw.Configure(cfg); err != nil {
		return err
	}
	d.cfg = cfg
	return nil
}

func (d *RPSPIDriver) Transfer(w, r []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hw.Tx(w, r)
}
