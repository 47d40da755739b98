package monitor

import (
	"testing"

	"pinion/script"
)

// testConsts resolves the constant references the parser tests use.
func testConsts(class, name string) (int64, bool) {
	table := map[string]int64{
		"GPIO.IN":   1,
		"GPIO.OUT":  2,
		"UART.EVEN": 2,
	}
	n, ok := table[class+"."+name]
	return n, ok
}

// argDump renders parsed arguments into one comparable string.
func argDump(cmd *command) string {
	s := ""
	for i, a := range cmd.args {
		if i > 0 {
			s += " "
		}
		s += Render(a)
	}
	return s
}

func TestParseLineForms(t *testing.T) {
	testCases := []struct {
		line     string
		assign   string
		recv     string
		method   string
		wantArgs string
	}{
		{"GPIO.read_at 13", "", "GPIO", "read_at", "13"},
		{"led = GPIO.new PA5 GPIO.OUT", "led", "GPIO", "new", `"PA5" 2`},
		{"led.write 1", "", "led", "write", "1"},
		{"led.high?", "", "led", "high?", ""},
		{"i2c.read 0x68 2", "", "i2c", "read", "104 2"},
		{"spi.write [31, 0x20, 3]", "", "spi", "write", "[31, 32, 3]"},
		{`u.puts "hello world\n"`, "", "u", "puts", `"hello world\n"`},
		{"pwm.duty 12.5", "", "pwm", "duty", "12.5"},
		{"pwm.frequency -1", "", "pwm", "frequency", "-1"},
		{"x = ADC.new nil", "x", "ADC", "new", "nil"},
		{"g.write true false", "", "g", "write", "true false"},
		{"  GPIO.read_at 13   # trailing note", "", "GPIO", "read_at", "13"},
	}

	for _, tc := range testCases {
		cmd, err := parseLine(tc.line, testConsts)
		if err != nil {
			t.Errorf("parseLine(%q) returned error: %v", tc.line, err)
			continue
		}
		if cmd == nil {
			t.Errorf("parseLine(%q): expected a command, got nil", tc.line)
			continue
		}
		if cmd.assign != tc.assign || cmd.recv != tc.recv || cmd.method != tc.method {
			t.Errorf("parseLine(%q): expected %s=%s.%s, got %s=%s.%s",
				tc.line, tc.assign, tc.recv, tc.method, cmd.assign, cmd.recv, cmd.method)
		}
		if got := argDump(cmd); got != tc.wantArgs {
			t.Errorf("parseLine(%q) args: expected %q, got %q", tc.line, tc.wantArgs, got)
		}
	}
}

func TestParseLineKeywords(t *testing.T) {
	cmd, err := parseLine("u = UART.new 2 baudrate:19200 parity: UART.EVEN", testConsts)
	if err != nil {
		t.Fatalf("parseLine returned error: %v", err)
	}
	if len(cmd.args) != 1 || cmd.args[0].Int() != 2 {
		t.Errorf("positional args: expected [2], got %v", cmd.args)
	}
	if len(cmd.kw) != 2 {
		t.Fatalf("keywords: expected 2, got %d", len(cmd.kw))
	}
	if v := cmd.kw["baudrate"]; v.Int() != 19200 {
		t.Errorf("baudrate: expected 19200, got %v", v)
	}
	if v := cmd.kw["parity"]; v.Int() != 2 {
		t.Errorf("parity: expected 2, got %v", v)
	}
}

func TestParseLineBlank(t *testing.T) {
	for _, line := range []string{"", "   ", "\t", "# a comment", "  # indented comment"} {
		cmd, err := parseLine(line, testConsts)
		if err != nil {
			t.Errorf("parseLine(%q) returned error: %v", line, err)
		}
		if cmd != nil {
			t.Errorf("parseLine(%q): expected nil, got %+v", line, cmd)
		}
	}
}

func TestParseLineErrors(t *testing.T) {
	testCases := []string{
		"=",
		"GPIO",
		"GPIO read_at",
		"led =",
		"led = 5",
		"GPIO.",
		"GPIO.new 0x",
		"GPIO.new 12x",
		`GPIO.new "unterminated`,
		"GPIO.new [1, 2",
		"GPIO.new FOO.BAR",
		"GPIO.new GPIO.",
		"UART.new baudrate:",
		"GPIO.new @",
	}

	for _, line := range testCases {
		_, err := parseLine(line, testConsts)
		if err == nil {
			t.Errorf("parseLine(%q): expected error, got none", line)
			continue
		}
		if script.ClassOf(err) != script.SyntaxError {
			t.Errorf("parseLine(%q): expected SyntaxError, got %v", line, err)
		}
	}
}
