//go:build rp2040

package main

import (
	"errors"
	"machine"
	"pinion/core"
	"pinion/targets/pio"
	"sync"

	"github.com/jangala-dev/tinygo-uartx/uartx"
)

const (
	uartDefaultBaud = 115200

	// pioUnit is the board table's transmit-only port, driven by a PIO
	// state machine instead of a hardware UART.
	pioUnit  = 3
	pioTxPad = machine.GPIO15
)

// hwPort pairs a uartx instance with the line settings that have to be
// reapplied together: uartx exposes parity and stop bits through one
// SetFormat call, so the unchanged half is replayed from here.
type hwPort struct {
	hw     *uartx.UART
	stop   uint8
	parity uartx.UARTParity
}

// RPUARTDriver implements core.UARTDriver over the two hardware UARTs
// plus the transmit-only PIO port. Unit numbers follow the board table:
// 1 is UART0 on GP0/GP1, 2 is UART1 on GP8/GP9, 3 is PIO on GP15.
type RPUARTDriver struct {
	mu    sync.Mutex
	ports map[int]*hwPort
	tx    *pio.TxPort
}

// NewRPUARTDriver creates the RP2040 UART driver.
func NewRPUARTDriver() *RPUARTDriver {
	return &RPUARTDriver{ports: make(map[int]*hwPort)}
}

// port returns the unit's hardware port, bringing it up at 8n1 and the
// default baud rate on first touch.
func (d *RPUARTDriver) port(unit int) (*hwPort, error) {
	if p, ok := d.ports[unit]; ok {
		return p, nil
	}

	var hw *uartx.UART
	var cfg uartx.UARTConfig
	switch unit {
	case 1:
		hw = uartx.UART0
		cfg = uartx.UARTConfig{BaudRate: uartDefaultBaud, TX: machine.UART0_TX_PIN, RX: machine.UART0_RX_PIN}
	case 2:
		hw = uartx.UART1
		cfg = uartx.UARTConfig{BaudRate: uartDefaultBaud, TX: machine.UART1_TX_PIN, RX: machine.UART1_RX_PIN}
	default:
		return nil, errors.New("uart: no such unit")
	}
	if err := hw.Configure(cfg); err != nil {
		return nil, err
	}

	p := &hwPort{hw: hw, stop: 1, parity: uartx.ParityNone}
	d.ports[unit] = p
	return p, nil
}

func (d *RPUARTDriver) Configure(unit int, mode core.UARTMode) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if unit == pioUnit {
		// The PIO program is a fixed 8n1 frame; only the divider moves.
		if mode.Parity > core.ParityNone || mode.StopBits > 1 {
			return errors.New("uart: pio port is fixed 8n1")
		}
		if mode.BaudRate > 0 && d.tx != nil {
			d.tx.SetBaud(uint32(mode.BaudRate))
		}
		return nil
	}

	p, err := d.port(unit)
	if err != nil {
		return err
	}
	if mode.BaudRate > 0 {
		p.hw.SetBaudRate(uint32(mode.BaudRate))
	}
	if mode.Parity >= 0 || mode.StopBits > 0 {
		if mode.Parity >= 0 {
			p.parity = parityOf(mode.Parity)
		}
		if mode.StopBits > 0 {
			p.stop = uint8(mode.StopBits)
		}
		if err := p.hw.SetFormat(8, p.stop, p.parity); err != nil {
			return err
		}
	}
	return nil
}

func (d *RPUARTDriver) Transmit(unit int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if unit == pioUnit {
		if d.tx == nil {
			return errors.New("uart: unit not started")
		}
		d.tx.Write(data)
		return nil
	}

	p, ok := d.ports[unit]
	if !ok {
		return errors.New("uart: unit not started")
	}
	for len(data) > 0 {
		n, err := p.hw.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}

func (d *RPUARTDriver) StartReceive(unit int, buf []byte) (core.WriteCursor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if unit == pioUnit {
		if d.tx == nil {
			tx, err := pio.NewTxPort(pioTxPad, uartDefaultBaud)
			if err != nil {
				return nil, err
			}
			d.tx = tx
		}
		// Transmit-only: nothing ever arrives.
		return core.WriteCursorFunc(func() int { return 0 }), nil
	}

	p, err := d.port(unit)
	if err != nil {
		return nil, err
	}
	return &rxCursor{hw: p.hw, buf: buf}, nil
}

func parityOf(p int) uartx.UARTParity {
	switch p {
	case core.ParityOdd:
		return uartx.ParityOdd
	case core.ParityEven:
		return uartx.ParityEven
	}
	return uartx.ParityNone
}

// rxCursor adapts uartx's interrupt-fed receive FIFO to the ring's pull
// model: every position query first drains whatever the ISR has
// buffered into the ring storage, then reports how far that write has
// reached.
type rxCursor struct {
	hw  *uartx.UART
	buf []byte
	wr  int
}

func (c *rxCursor) WritePos() int {
	var tmp [16]byte
	for {
		n := c.hw.TryRead(tmp[:])
		if n == 0 {
			return c.wr
		}
		for _, b := range tmp[:n] {
			c.buf[c.wr] = b
			c.wr++
			if c.wr == len(c.buf) {
				c.wr = 0
			}
		}
	}
}
