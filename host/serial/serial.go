// Package serial abstracts the host side of the monitor link so the
// console can run over a native port today and other transports later.
package serial

import (
	"io"
)

// Port is one open serial device.
type Port interface {
	io.ReadWriteCloser

	// Flush drops any buffered data.
	Flush() error
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g. "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate. USB CDC ignores this; real UART adapters need it to
	// match the board's monitor port.
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration for a board's USB console.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
