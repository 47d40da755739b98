package core

import (
	"errors"

	"pinion/script"
)

// I2CDriver is the abstract I2C interface that core code uses.
type I2CDriver interface {
	// Tx performs a combined transaction against the device at addr:
	// write w (skipped when empty), restart, then read into r (skipped
	// when empty).
	Tx(addr uint16, w, r []byte) error
}

// StatusError carries a numeric status from a bus driver so bindings can
// report the code the controller returned.
type StatusError int

func (e StatusError) Error() string {
	return "status code " + Itoa(int64(e))
}

// halError wraps a driver failure into the script-visible form. prefix
// names the failing operation, e.g. "i2c#read".
func halError(prefix string, err error) *script.Error {
	var st StatusError
	if !errors.As(err, &st) {
		st = StatusError(1)
	}
	return script.Raise(script.RuntimeError, prefix+"HAL layer error ("+st.Error()+")")
}
