package core

// SPIMode carries the negotiable SPI bus settings. A field of -1 means
// keep the current hardware setting.
//
// Mode is the usual clock polarity/phase pairing (0-3). FirstBit selects
// the shift direction, BitMSBFirst or BitLSBFirst.
type SPIMode struct {
	Frequency int32
	Mode      int8
	FirstBit  int8
}

// Shift direction values for SPIMode.FirstBit.
const (
	BitMSBFirst = 0
	BitLSBFirst = 1
)

// SPIDriver is the abstract SPI interface that core code uses.
// Platform-specific implementations handle actual hardware control.
type SPIDriver interface {
	// Configure applies mode to the bus. Fields set to -1 keep their
	// current value.
	Configure(mode SPIMode) error

	// Transfer performs a full-duplex exchange. w and r are the same
	// length and may alias the same backing array; a nil r discards the
	// reply bytes.
	Transfer(w, r []byte) error
}
