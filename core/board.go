package core

import "pinion/script"

// ADCChannel binds a pin to an analog converter channel.
type ADCChannel struct {
	Pin     Pin
	Channel uint8
}

// PWMOutput binds a pin to a timer unit and compare channel.
type PWMOutput struct {
	Pin     Pin
	Unit    uint8
	Channel uint8
}

// UARTPort describes one serial unit: the script-visible unit number, the
// receive ring capacity, and the byte that marks a line boundary.
type UARTPort struct {
	Unit     int
	RingSize int
	Delim    byte
}

// Board is an immutable hardware profile injected into the bindings at
// registration time: the logical pin table the resolver indexes and the
// per-peripheral capability tables. Profiles are plain data, so tests run
// against synthetic layouts and targets pick the table matching their
// wiring.
type Board struct {
	Name string

	// LogicalPins maps a board-logical pin index to a packed pin: high
	// nibble port-1, low nibble pin number.
	LogicalPins []uint8

	ADCChannels []ADCChannel
	PWMOutputs  []PWMOutput
	UARTPorts   []UARTPort

	// VRef and ADCFullScale scale raw conversions to volts.
	VRef         float64
	ADCFullScale uint32
}

// LogicalPin resolves a board-logical pin index to its canonical identity.
func (b *Board) LogicalPin(idx int) (Pin, error) {
	if b == nil || idx < 0 || idx >= len(b.LogicalPins) {
		return Pin{}, script.Raise(script.RangeError, "logical pin out of range")
	}
	packed := b.LogicalPins[idx]
	return Pin{Port: (packed >> 4) + 1, Num: packed & 0x0F}, nil
}

// FindADC returns the first ADC table entry for pin. A miss means the pin
// has no converter channel and must surface as an unsupported-pin error,
// never a default.
func (b *Board) FindADC(p Pin) (ADCChannel, bool) {
	for _, ch := range b.ADCChannels {
		if ch.Pin == p {
			return ch, true
		}
	}
	return ADCChannel{}, false
}

// ADCByIndex returns the ADC table entry at the analog-logical index
// (A0, A1, ...).
func (b *Board) ADCByIndex(idx int) (ADCChannel, bool) {
	if idx < 0 || idx >= len(b.ADCChannels) {
		return ADCChannel{}, false
	}
	return b.ADCChannels[idx], true
}

// FindPWM returns the first PWM table entry for pin.
func (b *Board) FindPWM(p Pin) (PWMOutput, bool) {
	for _, out := range b.PWMOutputs {
		if out.Pin == p {
			return out, true
		}
	}
	return PWMOutput{}, false
}

// FindUART returns the serial port description for a unit number.
func (b *Board) FindUART(unit int) (UARTPort, bool) {
	for _, port := range b.UARTPorts {
		if port.Unit == unit {
			return port, true
		}
	}
	return UARTPort{}, false
}
