package core

// UARTMode carries the negotiable line settings. A field of -1 means
// keep the current hardware setting.
type UARTMode struct {
	BaudRate int
	Parity   int
	StopBits int
}

// Parity values for UARTMode.Parity.
const (
	ParityNone = 0
	ParityOdd  = 1
	ParityEven = 2
)

// UARTDriver is the abstract UART interface that core code uses. A unit
// is the board-level port number from the UART capability table.
type UARTDriver interface {
	// Configure applies mode to the unit. Fields set to -1 keep their
	// current value.
	Configure(unit int, mode UARTMode) error

	// Transmit sends p, blocking until the bytes are handed to the
	// hardware.
	Transmit(unit int, p []byte) error

	// StartReceive arms reception into buf and returns the cursor that
	// reports how far the hardware has written. Units without a receive
	// path return a cursor pinned at zero.
	StartReceive(unit int, buf []byte) (WriteCursor, error)
}
