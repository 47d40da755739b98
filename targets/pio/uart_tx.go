//go:build rp2040

// Package pio holds the PIO-backed peripheral ports. The state machine
// programs live here, importable by the target mains and the hardware
// smoke tests under test/.
package pio

import (
	"errors"
	"machine"
	"runtime"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"
)

// The transmit program runs at 8 state machine cycles per bit: pull a
// byte, drive the start bit, shift out eight data bits LSB first, then
// drive the stop bit and wrap back to the stalled pull, which holds the
// line idle high between frames.
const (
	txProgramOrigin = 0
	txCyclesPerBit  = 8
)

func buildTxProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	prog := make([]uint16, 0, 11)
	prog = append(prog, asm.Pull(false, true).Encode())
	prog = append(prog, asm.Set(rp2pio.SetDestPins, 0).Delay(7).Encode())
	for i := 0; i < 8; i++ {
		prog = append(prog, asm.Out(rp2pio.OutDestPins, 1).Delay(7).Encode())
	}
	prog = append(prog, asm.Set(rp2pio.SetDestPins, 1).Delay(7).Encode())
	return prog
}

// PIO allocation tracking: 2 PIO blocks with 4 state machines each.
var pioAllocations [2][4]bool

// allocatePIO finds a free state machine across both PIO blocks.
func allocatePIO() (uint8, uint8, bool) {
	for block := uint8(0); block < 2; block++ {
		for sm := uint8(0); sm < 4; sm++ {
			if !pioAllocations[block][sm] {
				pioAllocations[block][sm] = true
				return block, sm, true
			}
		}
	}
	return 0, 0, false
}

// TxPort is a transmit-only serial port running on a PIO state machine,
// for pads with no hardware UART routing.
type TxPort struct {
	sm     rp2pio.StateMachine
	pin    machine.Pin
	offset uint8
	cfg    rp2pio.StateMachineConfig
}

// NewTxPort claims a state machine, loads the transmit program and
// starts it with the line idle high.
func NewTxPort(pin machine.Pin, baud uint32) (*TxPort, error) {
	block, smNum, ok := allocatePIO()
	if !ok {
		return nil, errors.New("uart: no free state machine")
	}
	hw := rp2pio.PIO0
	if block == 1 {
		hw = rp2pio.PIO1
	}
	sm := hw.StateMachine(smNum)
	sm.TryClaim()

	program := buildTxProgram()
	offset, err := hw.AddProgram(program, txProgramOrigin)
	if err != nil {
		return nil, err
	}

	pin.Configure(machine.PinConfig{Mode: hw.PinMode()})

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(pin, 1)
	cfg.SetOutPins(pin, 1)
	// Shift right: the wire wants LSB first.
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)
	whole, frac := txClockDiv(baud)
	cfg.SetClkDivIntFrac(whole, frac)

	p := &TxPort{sm: sm, pin: pin, offset: offset, cfg: cfg}
	sm.Init(offset, cfg)
	sm.SetPindirsConsecutive(pin, 1, true)
	sm.SetPinsConsecutive(pin, 1, true)
	sm.SetEnabled(true)
	return p, nil
}

// txClockDiv computes the fractional divider that stretches the system
// clock to txCyclesPerBit ticks per bit at the requested baud rate.
func txClockDiv(baud uint32) (uint16, uint8) {
	div := uint64(machine.CPUFrequency()) * 256 / (uint64(baud) * txCyclesPerBit)
	return uint16(div >> 8), uint8(div)
}

// SetBaud reprograms the clock divider. The state machine restarts from
// the stalled pull, so the change lands between frames.
func (p *TxPort) SetBaud(baud uint32) {
	whole, frac := txClockDiv(baud)
	p.cfg.SetClkDivIntFrac(whole, frac)
	p.sm.SetEnabled(false)
	p.sm.Init(p.offset, p.cfg)
	p.sm.SetPindirsConsecutive(p.pin, 1, true)
	p.sm.SetPinsConsecutive(p.pin, 1, true)
	p.sm.SetEnabled(true)
}

// Write queues bytes into the transmit FIFO, spinning while it is full.
func (p *TxPort) Write(data []byte) {
	for _, b := range data {
		for p.sm.IsTxFIFOFull() {
			runtime.Gosched()
		}
		p.sm.TxPut(uint32(b))
	}
}
