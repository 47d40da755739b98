package script

import "errors"

// ErrorClass names the script-level exception class a failure maps to.
type ErrorClass string

const (
	ArgumentError       ErrorClass = "ArgumentError"
	TypeError           ErrorClass = "TypeError"
	RangeError          ErrorClass = "RangeError"
	RuntimeError        ErrorClass = "RuntimeError"
	NotImplementedError ErrorClass = "NotImplementedError"
	NoMethodError       ErrorClass = "NoMethodError"
	SyntaxError         ErrorClass = "SyntaxError"
)

// Error is a recoverable script-visible failure: an error class plus an
// optional message, delivered to the interpreter's exception channel
// instead of crashing the host.
type Error struct {
	Class   ErrorClass
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Class)
	}
	return string(e.Class) + ": " + e.Message
}

// Raise builds a script error of the given class.
func Raise(class ErrorClass, msg string) *Error {
	return &Error{Class: class, Message: msg}
}

// ClassOf extracts the error class from err, unwrapping as needed.
// Non-script errors report RuntimeError.
func ClassOf(err error) ErrorClass {
	var e *Error
	if errors.As(err, &e) {
		return e.Class
	}
	return RuntimeError
}
