//go:build rp2040

package main

// PIO UART TX smoke test - cycles through baud rates on GP15.
// Watch with a logic analyzer or wire GP15 to a USB-serial adapter.

import (
	"machine"
	"pinion/targets/pio"
	"time"
)

const txPin = machine.GPIO15

var baudTests = []struct {
	baud uint32
	name string
}{
	{9600, "9600 8n1"},
	{19200, "19200 8n1"},
	{57600, "57600 8n1"},
	{115200, "115200 8n1"},
}

func main() {
	time.Sleep(3 * time.Second)

	led := machine.LED
	led.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Flash LED to indicate start
	for i := 0; i < 3; i++ {
		led.High()
		time.Sleep(100 * time.Millisecond)
		led.Low()
		time.Sleep(100 * time.Millisecond)
	}

	println("=== PIO UART TX Test ===")
	println("TX: GP15")
	println("Cycling through baud rates - check the receiver!")

	port, err := pio.NewTxPort(txPin, baudTests[0].baud)
	if err != nil {
		println("Init error:", err.Error())
		for {
			led.High()
			time.Sleep(100 * time.Millisecond)
			led.Low()
			time.Sleep(100 * time.Millisecond)
		}
	}
	println("Init OK!")

	cycle := 0
	for {
		cycle++
		println("\n=== Cycle", cycle, "===")

		for _, test := range baudTests {
			port.SetBaud(test.baud)
			println("Baud:", test.name)

			led.High()

			// Repeat the pattern for 3 seconds at this rate
			startTime := time.Now()
			for time.Since(startTime) < 3*time.Second {
				port.Write([]byte("pinion pio tx "))
				port.Write([]byte{'0' + byte(cycle%10), '\r', '\n'})
				time.Sleep(250 * time.Millisecond)
			}

			led.Low()
			println("  (changing baud...)")
			time.Sleep(500 * time.Millisecond)
		}

		println("\n--- Restarting cycle ---")
		time.Sleep(1 * time.Second)
	}
}
