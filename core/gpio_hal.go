package core

// PinMode is a bit set of GPIO configuration flags. A configuration names
// at least one direction (in, out, or high impedance) and may add pull or
// drive options.
type PinMode uint8

const (
	ModeIn        PinMode = 0x01
	ModeOut       PinMode = 0x02
	ModeAnalog    PinMode = 0x04
	ModeHighZ     PinMode = 0x08
	ModePullUp    PinMode = 0x10
	ModePullDown  PinMode = 0x20
	ModeOpenDrain PinMode = 0x40
)

// GPIODriver is the abstract single-pin digital I/O interface that core
// bindings use. Platform-specific implementations handle actual hardware
// control.
type GPIODriver interface {
	// SetMode applies the whole mode word to a pin.
	SetMode(pin Pin, mode PinMode) error

	// Write drives an output pin high (true) or low (false).
	Write(pin Pin, level bool) error

	// Read samples the current pin level.
	Read(pin Pin) (bool, error)
}
