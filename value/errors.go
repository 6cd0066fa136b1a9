package value

import "fmt"

// TypeMismatch is returned by operators that expect exactly one kind (the
// unary operators; cross-kind equality has its own CrossKindEquality).
// Callers attach a source position and convert this into an errs.TypeError.
type TypeMismatch struct {
	Expected string
	Got      Kind
}

func (e *TypeMismatch) Error() string {
	return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
}

// UnsupportedOperands is returned by binary operators that admit more than
// one legal kind combination when none of them match. Callers convert this
// into an errs.RuntimeError ("unsupported operand combination"), per §7.
type UnsupportedOperands struct {
	Op    string
	Left  Kind
	Right Kind
}

func (e *UnsupportedOperands) Error() string {
	return fmt.Sprintf("unsupported operand combination for '%s': %s and %s", e.Op, e.Left, e.Right)
}

// DivideByZero is returned by Div and Mod when the divisor is zero.
type DivideByZero struct{}

func (e *DivideByZero) Error() string { return "divide by zero" }

// NegativeRepeat is returned by Mul when a string-repeat count is negative.
type NegativeRepeat struct{}

func (e *NegativeRepeat) Error() string { return "string repeat count must not be negative" }

// CrossKindEquality is returned by Eq/NotEq when the operands do not share
// a kind.
type CrossKindEquality struct {
	Left  Kind
	Right Kind
}

func (e *CrossKindEquality) Error() string {
	return fmt.Sprintf("cannot compare %s and %s for equality", e.Left, e.Right)
}
