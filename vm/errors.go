package vm

import (
	"fmt"

	"ember/errs"
	"ember/value"
)

// runtimeError builds a position-less errs.RuntimeError: bytecode carries
// no source positions, so VM-detected failures degrade gracefully to the
// same RuntimeError kind the tree-walk engine raises with a position
// attached.
func runtimeError(message string) error {
	return errs.NewRuntimeError(message)
}

// fromValueError converts an error from the value package's operator table
// into a position-less RuntimeError, since bytecode retains no source
// positions. Unlike errs.FromValueError it never builds an errs.TypeError:
// type mismatches and cross-kind equality only keep a "type error:" prefix
// in the message.
func fromValueError(err error) error {
	switch e := err.(type) {
	case *value.TypeMismatch:
		return runtimeError(fmt.Sprintf("type error: expected %s, got %s", e.Expected, e.Got))
	case *value.CrossKindEquality:
		return runtimeError(fmt.Sprintf("type error: cannot compare %s and %s for equality", e.Left, e.Right))
	default:
		return runtimeError(err.Error())
	}
}
