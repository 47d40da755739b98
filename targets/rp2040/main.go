//go:build rp2040

package main

import (
	"machine"
	"pinion/boards"
	"pinion/core"
	"pinion/monitor"
	"pinion/script"
	"time"
)

func main() {
	// Clear any watchdog state left over from a previous reset.
	err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0})
	if err != nil {
		return
	}

	// Give the host time to enumerate USB CDC before the banner.
	time.Sleep(2 * time.Second)

	board := boards.PicoDefault()
	reg := script.NewRegistry()

	core.RegisterGPIO(reg, board, NewRPGPIODriver())
	core.RegisterADC(reg, board, NewRPADCDriver())
	core.RegisterPWM(reg, board, NewRPPWMDriver())
	core.RegisterUART(reg, board, NewRPUARTDriver())

	if i2c, err := NewRPI2CDriver(); err == nil {
		core.RegisterI2C(reg, i2c)
	} else {
		println("i2c: ", err.Error())
	}
	if spi, err := NewRPSPIDriver(); err == nil {
		core.RegisterSPI(reg, spi)
	} else {
		println("spi: ", err.Error())
	}

	initDebug(reg)

	// Flash the LED so a board with no console shows signs of life.
	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})
	for i := 0; i < 3; i++ {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}

	println("pinion rp2040 ready")

	session := monitor.NewSession(reg)
	for {
		runSession(session)
	}
}

// runSession runs the monitor until the stream errors out, recovering
// from binding panics so a bad script line cannot wedge the board.
func runSession(s *monitor.Session) {
	defer func() {
		if r := recover(); r != nil {
			core.DebugAsync("monitor: recovered from panic")
			time.Sleep(100 * time.Millisecond)
		}
	}()

	if err := s.Run(serialRW{}); err != nil {
		time.Sleep(100 * time.Millisecond)
	}
}

// serialRW adapts the USB CDC port to io.ReadWriter. Reads block until
// at least one byte is buffered so the line scanner never sees an empty
// read.
type serialRW struct{}

func (serialRW) Read(p []byte) (int, error) {
	for machine.Serial.Buffered() == 0 {
		time.Sleep(time.Millisecond)
	}
	n := 0
	for n < len(p) && machine.Serial.Buffered() > 0 {
		b, err := machine.Serial.ReadByte()
		if err != nil {
			break
		}
		p[n] = b
		n++
	}
	return n, nil
}

func (serialRW) Write(p []byte) (int, error) {
	return machine.Serial.Write(p)
}
