//go:build rp2040

package main

import (
	"machine"
	"pinion/core"
	"pinion/script"
)

// initDebug points the debug stream at the USB serial port and exposes
// a Debug class so a connected console can toggle tracing at runtime.
func initDebug(reg *script.Registry) {
	core.SetDebugWriter(func(s string) {
		machine.Serial.Write([]byte(s))
		machine.Serial.Write([]byte("\r\n"))
	})
	core.InitAsyncDebug()

	cls := reg.DefineClass("Debug")
	cls.Define("enable", func(call *script.Call) (script.Value, error) {
		core.SetDebugEnabled(true)
		return script.Nil(), nil
	})
	cls.Define("disable", func(call *script.Call) (script.Value, error) {
		core.SetDebugEnabled(false)
		return script.Nil(), nil
	})
	cls.Define("enabled?", func(call *script.Call) (script.Value, error) {
		return script.Bool(core.IsDebugEnabled()), nil
	})
	cls.Define("print", func(call *script.Call) (script.Value, error) {
		if v := call.Arg(0); v.Kind() == script.KindBytes {
			core.DebugPrintln(string(v.Bytes()))
		}
		return script.Nil(), nil
	})
}
