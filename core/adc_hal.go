package core

// ADCDriver is the abstract ADC interface that core code uses.
// Targets implement it over their conversion hardware; tests implement
// it over canned samples.
type ADCDriver interface {
	// Configure prepares the channel's pin for analog conversion.
	Configure(ch ADCChannel) error

	// ReadRaw performs a one-shot sample from the given channel. The
	// value is right-aligned in the board's full-scale range.
	ReadRaw(ch ADCChannel) (uint32, error)
}
