// interfaces.go contains the visitor interfaces that any code traversing
// expression and statement AST nodes must implement, plus the base
// Expression/Stmt interfaces every node satisfies via the visitor pattern.

package ast

// ExpressionVisitor is implemented by anything that operates on every
// Expression variant: the interpreter, the compiler, the desugarer, the
// AST printer.
type ExpressionVisitor interface {
	VisitIntLit(n IntLit) any
	VisitBoolLit(n BoolLit) any
	VisitStringLit(n StringLit) any
	VisitVar(n Var) any
	VisitUnary(n Unary) any
	VisitBinary(n Binary) any
	VisitCall(n Call) any
}

// StmtVisitor is implemented by anything that operates on every Statement
// variant.
type StmtVisitor interface {
	VisitCompound(n Compound) any
	VisitExprStmt(n ExprStmt) any
	VisitVarDef(n VarDef) any
	VisitIf(n If) any
	VisitWhile(n While) any
	VisitFunctionDef(n FunctionDef) any
	VisitReturn(n Return) any
	VisitFor(n For) any
}

// Stmt is the base interface every statement node satisfies.
type Stmt interface {
	Accept(v StmtVisitor) any
}

// Expression is the base interface every expression node satisfies.
type Expression interface {
	Accept(v ExpressionVisitor) any
}
