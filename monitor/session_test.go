package monitor

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"pinion/core"
	"pinion/script"
)

type sessionGPIO struct {
	levels map[core.Pin]bool
}

func (d *sessionGPIO) SetMode(p core.Pin, m core.PinMode) error { return nil }

func (d *sessionGPIO) Write(p core.Pin, level bool) error {
	d.levels[p] = level
	return nil
}

func (d *sessionGPIO) Read(p core.Pin) (bool, error) { return d.levels[p], nil }

type sessionADC struct {
	raw uint32
}

func (d *sessionADC) Configure(ch core.ADCChannel) error       { return nil }
func (d *sessionADC) ReadRaw(ch core.ADCChannel) (uint32, error) { return d.raw, nil }

func sessionEnv() *Session {
	board := &core.Board{
		LogicalPins: make([]uint8, 16),
		ADCChannels: []core.ADCChannel{
			{Pin: core.Pin{Port: 1, Num: 0}, Channel: 0},
		},
		VRef:         3.3,
		ADCFullScale: 4096,
	}
	for i := range board.LogicalPins {
		board.LogicalPins[i] = uint8(i)
	}

	reg := script.NewRegistry()
	core.RegisterGPIO(reg, board, &sessionGPIO{levels: make(map[core.Pin]bool)})
	core.RegisterADC(reg, board, &sessionADC{raw: 2048})
	return NewSession(reg)
}

func TestSessionEval(t *testing.T) {
	s := sessionEnv()

	// A stateful exchange: responses depend on the lines before them.
	steps := []struct {
		line string
		want string
	}{
		{"led = GPIO.new PA5 GPIO.OUT", "ok #<GPIO>"},
		{"led.write 1", "ok nil"},
		{"led.read", "ok 1"},
		{"led.high?", "ok true"},
		{"led.low?", "ok false"},
		{"GPIO.IN", "ok 1"},
		{"GPIO.read_at 0", "ok 0"},
		{"a = ADC.new PA0", "ok #<ADC>"},
		{"a.read_voltage", "ok 1.65"},
		{"a.read_raw", "ok 2048"},
		{"", ""},
		{"# a comment", ""},
		{"GPIO.new PA99 1", "err ArgumentError: GPIO initialize"},
		{"Motor.step 1", "err NoMethodError: undefined class 'Motor'"},
		{"led.fly", "err NoMethodError: undefined method 'fly' for GPIO"},
		{"led.write @", "err SyntaxError: unexpected character '@'"},
		{"x = GPIO.read_at 0", "ok 0"},
		{"x.write 1", "err NoMethodError: 'x' is not an object"},
	}

	for _, st := range steps {
		if got := s.Eval(st.line); got != st.want {
			t.Errorf("Eval(%q): expected %q, got %q", st.line, st.want, got)
		}
	}
}

// pipeRW feeds scripted input to Run and collects its output.
type pipeRW struct {
	io.Reader
	out bytes.Buffer
}

func (p *pipeRW) Write(b []byte) (int, error) { return p.out.Write(b) }

func TestSessionRun(t *testing.T) {
	s := sessionEnv()
	rw := &pipeRW{Reader: strings.NewReader(
		"led = GPIO.new PA5 GPIO.OUT\n" +
			"led.write 1\n" +
			"# noise\n" +
			"led.read\n")}

	if err := s.Run(rw); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := "ok #<GPIO>\nok nil\nok 1\n"
	if got := rw.out.String(); got != want {
		t.Errorf("Run output: expected %q, got %q", want, got)
	}
}
