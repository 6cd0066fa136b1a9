// Package desugar implements the AST->AST rewrite pass: compound
// assignment and for-loops are eliminated before either execution engine
// ever sees the tree.
package desugar

import (
	"ember/ast"
	"ember/token"
)

type desugarer struct{}

// Desugar rewrites a parsed program into its core form: no For nodes, no
// compound-assignment Binary nodes. Running Desugar again on its own
// output is a no-op (idempotent), since neither shape remains to rewrite.
func Desugar(stmts []ast.Stmt) []ast.Stmt {
	d := &desugarer{}
	out := make([]ast.Stmt, len(stmts))
	for i, s := range stmts {
		out[i] = d.stmt(s)
	}
	return out
}

func (d *desugarer) stmt(s ast.Stmt) ast.Stmt {
	return s.Accept(d).(ast.Stmt)
}

func (d *desugarer) expr(e ast.Expression) ast.Expression {
	if e == nil {
		return nil
	}
	return e.Accept(d).(ast.Expression)
}

func (d *desugarer) VisitCompound(n ast.Compound) any {
	out := make([]ast.Stmt, len(n.Statements))
	for i, s := range n.Statements {
		out[i] = d.stmt(s)
	}
	return ast.Compound{Statements: out}
}

func (d *desugarer) VisitExprStmt(n ast.ExprStmt) any {
	return ast.ExprStmt{Expression: d.expr(n.Expression)}
}

func (d *desugarer) VisitVarDef(n ast.VarDef) any {
	return ast.VarDef{Name: n.Name, Value: d.expr(n.Value)}
}

func (d *desugarer) VisitIf(n ast.If) any {
	return ast.If{Condition: d.expr(n.Condition), Then: d.stmt(n.Then), Else: d.stmt(n.Else)}
}

func (d *desugarer) VisitWhile(n ast.While) any {
	return ast.While{Condition: d.expr(n.Condition), Body: d.stmt(n.Body)}
}

func (d *desugarer) VisitFunctionDef(n ast.FunctionDef) any {
	body := d.stmt(n.Body).(ast.Compound)
	return ast.FunctionDef{Name: n.Name, NameToken: n.NameToken, Params: n.Params, Body: body}
}

func (d *desugarer) VisitReturn(n ast.Return) any {
	return ast.Return{Keyword: n.Keyword, Value: d.expr(n.Value)}
}

// VisitFor rewrites `for i a, b { body }` into the nested var/if/while
// template, then recursively desugars the result so any compound
// assignment inside body (or a/b) expands too.
func (d *desugarer) VisitFor(n ast.For) any {
	return d.stmt(desugarFor(n))
}

func (d *desugarer) VisitIntLit(n ast.IntLit) any       { return n }
func (d *desugarer) VisitBoolLit(n ast.BoolLit) any     { return n }
func (d *desugarer) VisitStringLit(n ast.StringLit) any { return n }
func (d *desugarer) VisitVar(n ast.Var) any             { return n }

func (d *desugarer) VisitUnary(n ast.Unary) any {
	return ast.Unary{Operator: n.Operator, Right: d.expr(n.Right)}
}

func (d *desugarer) VisitCall(n ast.Call) any {
	args := make([]ast.Expression, len(n.Args))
	for i, a := range n.Args {
		args[i] = d.expr(a)
	}
	return ast.Call{Callee: d.expr(n.Callee), Paren: n.Paren, Args: args}
}

// VisitBinary splits `x ⊛= y` into `x = x ⊛ y`. The rewrite duplicates
// the left operand syntactically without validating it is a pure Var; the
// shared "= requires Var LHS" check in interp/compiler catches an invalid
// target uniformly, whether from user-written `=` or from a desugared
// compound assignment.
func (d *desugarer) VisitBinary(n ast.Binary) any {
	coreKind, isCompound := token.CompoundAssignCore[n.Operator.Type]
	if !isCompound {
		return ast.Binary{Left: d.expr(n.Left), Operator: n.Operator, Right: d.expr(n.Right)}
	}
	left := d.expr(n.Left)
	right := d.expr(n.Right)
	coreOp := token.New(coreKind, string(coreKind), n.Operator.Pos, n.Operator.Source)
	assignOp := token.New(token.ASSIGN, "=", n.Operator.Pos, n.Operator.Source)
	return ast.Binary{
		Left:     left,
		Operator: assignOp,
		Right:    ast.Binary{Left: left, Operator: coreOp, Right: right},
	}
}
