//go:build rp2040

package main

import (
	"errors"
	"machine"
	"pinion/core"
	"sync"
)

// RPADCDriver implements core.ADCDriver using TinyGo's machine.ADC.
// Conversions are one-shot and serialized; the converter has a single
// sample-and-hold stage shared by all four inputs.
type RPADCDriver struct {
	mu       sync.Mutex
	initOnce sync.Once
	channels map[uint8]machine.ADC
}

// NewRPADCDriver creates the RP2040 ADC driver.
func NewRPADCDriver() *RPADCDriver {
	return &RPADCDriver{channels: make(map[uint8]machine.ADC)}
}

func (d *RPADCDriver) Configure(ch core.ADCChannel) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.initOnce.Do(machine.InitADC)

	if _, ok := d.channels[ch.Channel]; ok {
		return nil
	}

	pad, ok := gpioPad(ch.Pin)
	if !ok || pad < machine.ADC0 || pad > machine.ADC3 {
		return errors.New("adc: pin has no converter input")
	}
	adc := machine.ADC{Pin: pad}
	if err := adc.Configure(machine.ADCConfig{}); err != nil {
		return err
	}
	d.channels[ch.Channel] = adc
	return nil
}

// ReadRaw performs a one-shot conversion. TinyGo scales the 12-bit
// result to the full 16-bit range, matching the board table's full
// scale of 65535.
func (d *RPADCDriver) ReadRaw(ch core.ADCChannel) (uint32, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	adc, ok := d.channels[ch.Channel]
	if !ok {
		return 0, errors.New("adc: channel not configured")
	}
	return uint32(adc.Get()), nil
}
