package ast

import "ember/token"

// ExprPos returns the source position most representative of an
// expression node, for attaching to diagnostics raised while evaluating or
// compiling it (e.g. a TypeError on an `if` condition that is not itself a
// single token).
func ExprPos(e Expression) token.Position {
	switch n := e.(type) {
	case IntLit:
		return n.Token.Pos
	case BoolLit:
		return n.Token.Pos
	case StringLit:
		return n.Token.Pos
	case Var:
		return n.Name.Pos
	case Unary:
		return n.Operator.Pos
	case Binary:
		return n.Operator.Pos
	case Call:
		return n.Paren.Pos
	}
	return token.Position{}
}
