// expressions.go contains all the expression AST nodes. An expression node
// always evaluates to a value.

package ast

import "ember/token"

// IntLit is an integer literal. The interpreter/compiler parse its token
// text as an arbitrary-precision integer.
type IntLit struct {
	Token token.Token
}

func (n IntLit) Accept(v ExpressionVisitor) any { return v.VisitIntLit(n) }

// BoolLit is a true/false literal.
type BoolLit struct {
	Token token.Token
}

func (n BoolLit) Accept(v ExpressionVisitor) any { return v.VisitBoolLit(n) }

// StringLit is a single-quoted string literal; Token.Text still carries the
// surrounding quotes and raw escapes, unescaped once per use.
type StringLit struct {
	Token token.Token
}

func (n StringLit) Accept(v ExpressionVisitor) any { return v.VisitStringLit(n) }

// Var retrieves the value currently bound to an identifier.
type Var struct {
	Name token.Token
}

func (n Var) Accept(v ExpressionVisitor) any { return v.VisitVar(n) }

// Unary applies a prefix operator (+, -, !) to a single operand.
type Unary struct {
	Operator token.Token
	Right    Expression
}

func (n Unary) Accept(v ExpressionVisitor) any { return v.VisitUnary(n) }

// Binary applies an infix operator to two operands. Plain assignment (=)
// and, before desugaring, compound assignment (+=, -=, ...) are modeled as
// Binary nodes rather than a dedicated Assign node: the precedence table
// treats them as just another operator level (§4.2).
type Binary struct {
	Left     Expression
	Operator token.Token
	Right    Expression
}

func (n Binary) Accept(v ExpressionVisitor) any { return v.VisitBinary(n) }

// Call invokes Callee with Args, left to right. Paren is the closing ')'
// token, kept for error positions (wrong arity, non-callable).
type Call struct {
	Callee Expression
	Paren  token.Token
	Args   []Expression
}

func (n Call) Accept(v ExpressionVisitor) any { return v.VisitCall(n) }
