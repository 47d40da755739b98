package core

// PWMDriver is the abstract PWM interface that core code uses.
// Platform-specific implementations handle actual hardware control.
//
// The divider model follows a prescaled 16-bit counter: the timer base
// clock is divided by prescale+1 and counts up to period, and the output
// is high while the count is below compare.
type PWMDriver interface {
	// BaseFrequency returns the undivided timer clock in Hz.
	BaseFrequency() uint32

	// Configure routes the output's pin to its timer unit and channel.
	Configure(out PWMOutput) error

	// SetDivider programs the prescaler and counter period.
	SetDivider(out PWMOutput, prescale, period uint32) error

	// SetCompare programs the channel compare value.
	SetCompare(out PWMOutput, compare uint32) error

	// Start enables counting on the output's timer unit.
	Start(out PWMOutput) error
}
