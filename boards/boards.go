// Package boards holds the capability tables for the supported boards.
// A table says which pins a board routes to which peripheral resources;
// the port drivers live with their targets.
package boards

import "pinion/core"

// NucleoF401RE describes the ST Nucleo-F401RE. The logical pin table
// follows the Arduino header silkscreen, D0 through D15.
func NucleoF401RE() *core.Board {
	return &core.Board{
		Name: "nucleo-f401re",
		LogicalPins: []uint8{
			0x03, // D0  = PA3
			0x02, // D1  = PA2
			0x0A, // D2  = PA10
			0x13, // D3  = PB3
			0x15, // D4  = PB5
			0x14, // D5  = PB4
			0x1A, // D6  = PB10
			0x08, // D7  = PA8
			0x09, // D8  = PA9
			0x27, // D9  = PC7
			0x16, // D10 = PB6
			0x07, // D11 = PA7
			0x06, // D12 = PA6
			0x05, // D13 = PA5
			0x19, // D14 = PB9
			0x18, // D15 = PB8
		},
		ADCChannels: []core.ADCChannel{
			{Pin: core.Pin{Port: 1, Num: 0}, Channel: 0},  // PA0  A0
			{Pin: core.Pin{Port: 1, Num: 1}, Channel: 1},  // PA1  A1
			{Pin: core.Pin{Port: 1, Num: 4}, Channel: 4},  // PA4  A2
			{Pin: core.Pin{Port: 2, Num: 0}, Channel: 8},  // PB0  A3
			{Pin: core.Pin{Port: 3, Num: 1}, Channel: 11}, // PC1  A4
			{Pin: core.Pin{Port: 3, Num: 0}, Channel: 10}, // PC0  A5
		},
		PWMOutputs: []core.PWMOutput{
			{Pin: core.Pin{Port: 1, Num: 6}, Unit: 3, Channel: 1},  // PA6  TIM3_CH1
			{Pin: core.Pin{Port: 1, Num: 7}, Unit: 3, Channel: 2},  // PA7  TIM3_CH2
			{Pin: core.Pin{Port: 2, Num: 6}, Unit: 4, Channel: 1},  // PB6  TIM4_CH1
			{Pin: core.Pin{Port: 3, Num: 7}, Unit: 3, Channel: 2},  // PC7  TIM3_CH2
			{Pin: core.Pin{Port: 1, Num: 8}, Unit: 1, Channel: 1},  // PA8  TIM1_CH1
			{Pin: core.Pin{Port: 2, Num: 10}, Unit: 2, Channel: 3}, // PB10 TIM2_CH3
			{Pin: core.Pin{Port: 2, Num: 4}, Unit: 3, Channel: 1},  // PB4  TIM3_CH1
			{Pin: core.Pin{Port: 2, Num: 5}, Unit: 3, Channel: 2},  // PB5  TIM3_CH2
			{Pin: core.Pin{Port: 1, Num: 0}, Unit: 2, Channel: 1},  // PA0  TIM2_CH1
			{Pin: core.Pin{Port: 1, Num: 1}, Unit: 2, Channel: 2},  // PA1  TIM2_CH2
			{Pin: core.Pin{Port: 2, Num: 0}, Unit: 3, Channel: 3},  // PB0  TIM3_CH3
		},
		UARTPorts: []core.UARTPort{
			{Unit: 1, RingSize: 128, Delim: '\n'},
			{Unit: 2, RingSize: 128, Delim: '\n'},
			{Unit: 6, RingSize: 128, Delim: '\n'},
		},
		VRef:         3.3,
		ADCFullScale: 4095,
	}
}

// PicoDefault describes the Raspberry Pi Pico. Ports map onto the GPIO
// bank in runs of sixteen: PA0..PA15 are GP0..GP15 and PB0..PB13 are
// GP16..GP29, so logical pins 0..15 land on GP0..GP15 directly.
func PicoDefault() *core.Board {
	b := &core.Board{
		Name:        "pico",
		LogicalPins: make([]uint8, 16),
		ADCChannels: []core.ADCChannel{
			{Pin: core.Pin{Port: 2, Num: 10}, Channel: 0}, // GP26 ADC0
			{Pin: core.Pin{Port: 2, Num: 11}, Channel: 1}, // GP27 ADC1
			{Pin: core.Pin{Port: 2, Num: 12}, Channel: 2}, // GP28 ADC2
			{Pin: core.Pin{Port: 2, Num: 13}, Channel: 3}, // GP29 ADC3
		},
		UARTPorts: []core.UARTPort{
			{Unit: 1, RingSize: 128, Delim: '\n'}, // UART0 on GP0/GP1
			{Unit: 2, RingSize: 128, Delim: '\n'}, // UART1 on GP8/GP9
			{Unit: 3, RingSize: 128, Delim: '\n'}, // PIO transmit-only on GP15
		},
		VRef:         3.3,
		ADCFullScale: 65535,
	}
	for i := range b.LogicalPins {
		b.LogicalPins[i] = uint8(i)
	}

	// Every GPIO reaches a PWM slice: the slice is gpio>>1 and the odd
	// pin of each pair is output B. GP23 and GP24 stay reserved for the
	// board's regulator and USB sense lines.
	for gpio := uint8(0); gpio <= 25; gpio++ {
		if gpio == 23 || gpio == 24 {
			continue
		}
		b.PWMOutputs = append(b.PWMOutputs, core.PWMOutput{
			Pin:     core.Pin{Port: gpio/16 + 1, Num: gpio % 16},
			Unit:    (gpio >> 1) & 7,
			Channel: gpio&1 + 1,
		})
	}
	return b
}
