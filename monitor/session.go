// Package monitor is a line-oriented command console over the script
// registry, the bring-up stand-in for a hosted interpreter. One request
// line yields one response line:
//
//	led = GPIO.new PA5 GPIO.OUT
//	ok #<GPIO>
//	led.write 1
//	ok nil
//	adc.read_voltage
//	ok 1.65
//	GPIO.new PQ9 1
//	err ArgumentError: GPIO initialize
//
// It runs over any io.ReadWriter: USB serial on a target, a pipe in
// tests.
package monitor

import (
	"bufio"
	"io"

	"pinion/core"
	"pinion/script"
)

// Session carries the registry and the variables bound by assignment
// lines. One session serves one connection; it is not safe for
// concurrent use.
type Session struct {
	reg  *script.Registry
	vars map[string]script.Value
}

// NewSession creates a session over reg.
func NewSession(reg *script.Registry) *Session {
	return &Session{reg: reg, vars: make(map[string]script.Value)}
}

// Eval runs one request line and returns the response line, or "" for a
// blank or comment line.
func (s *Session) Eval(line string) string {
	cmd, err := parseLine(line, s.resolveConst)
	if err != nil {
		return "err " + err.Error()
	}
	if cmd == nil {
		return ""
	}
	v, err := s.dispatch(cmd)
	if err != nil {
		return "err " + err.Error()
	}
	if cmd.assign != "" {
		s.vars[cmd.assign] = v
	}
	return "ok " + Render(v)
}

// Run serves request lines from rw until EOF or a write failure.
func (s *Session) Run(rw io.ReadWriter) error {
	sc := bufio.NewScanner(rw)
	for sc.Scan() {
		resp := s.Eval(sc.Text())
		if resp == "" {
			continue
		}
		if _, err := io.WriteString(rw, resp+"\n"); err != nil {
			return err
		}
	}
	return sc.Err()
}

func (s *Session) dispatch(cmd *command) (script.Value, error) {
	if core.IsDebugEnabled() {
		core.DebugPrintln("dispatch " + cmd.recv + "." + cmd.method)
	}
	if v, ok := s.vars[cmd.recv]; ok {
		obj := v.Object()
		if obj == nil {
			return script.Nil(), script.Raise(script.NoMethodError,
				"'"+cmd.recv+"' is not an object")
		}
		return s.reg.Dispatch("", cmd.method, obj, cmd.args, cmd.kw)
	}

	// A bare constant read: GPIO.OUT answers the constant's value.
	if len(cmd.args) == 0 && len(cmd.kw) == 0 {
		if cls, ok := s.reg.Class(cmd.recv); ok {
			if n, ok := cls.ConstValue(cmd.method); ok {
				return script.Int(n), nil
			}
		}
	}
	return s.reg.Dispatch(cmd.recv, cmd.method, nil, cmd.args, cmd.kw)
}

func (s *Session) resolveConst(class, name string) (int64, bool) {
	cls, ok := s.reg.Class(class)
	if !ok {
		return 0, false
	}
	return cls.ConstValue(name)
}
