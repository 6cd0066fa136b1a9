package errs

import (
	"ember/token"
	"ember/value"
)

// FromValueError classifies an error returned by the value package's
// operator table into the right error kind, attaching pos. Unary mismatches
// and cross-kind equality name a single expected kind, so they become
// TypeError; everything else from the operator table admits more than one
// legal operand combination and becomes RuntimeError.
func FromValueError(err error, pos token.Position) error {
	switch e := err.(type) {
	case *value.TypeMismatch:
		return &TypeError{Expected: e.Expected, Got: e.Got.String(), Pos: pos}
	case *value.CrossKindEquality:
		return &TypeError{Expected: e.Left.String(), Got: e.Right.String(), Pos: pos}
	case *value.UnsupportedOperands, *value.DivideByZero, *value.NegativeRepeat:
		return &RuntimeError{Message: err.Error(), Pos: pos, HasPos: true}
	default:
		return err
	}
}
