package desugar

import (
	"testing"

	"ember/ast"
	"ember/token"
)

func tok(tt token.TokenType, text string) token.Token {
	return token.New(tt, text, token.Position{}, nil)
}

func countBinaryOps(stmts []ast.Stmt, op token.TokenType) int {
	count := 0
	var walkExpr func(ast.Expression)
	var walkStmt func(ast.Stmt)

	walkExpr = func(e ast.Expression) {
		if e == nil {
			return
		}
		switch n := e.(type) {
		case ast.Binary:
			if n.Operator.Type == op {
				count++
			}
			walkExpr(n.Left)
			walkExpr(n.Right)
		case ast.Unary:
			walkExpr(n.Right)
		case ast.Call:
			walkExpr(n.Callee)
			for _, a := range n.Args {
				walkExpr(a)
			}
		}
	}
	walkStmt = func(s ast.Stmt) {
		switch n := s.(type) {
		case ast.Compound:
			for _, inner := range n.Statements {
				walkStmt(inner)
			}
		case ast.ExprStmt:
			walkExpr(n.Expression)
		case ast.VarDef:
			walkExpr(n.Value)
		case ast.If:
			walkExpr(n.Condition)
			walkStmt(n.Then)
			walkStmt(n.Else)
		case ast.While:
			walkExpr(n.Condition)
			walkStmt(n.Body)
		case ast.FunctionDef:
			walkStmt(n.Body)
		case ast.Return:
			walkExpr(n.Value)
		case ast.For:
			walkExpr(n.From)
			walkExpr(n.To)
			walkStmt(n.Body)
		}
	}
	for _, s := range stmts {
		walkStmt(s)
	}
	return count
}

// Compound assignment must disappear entirely: only plain ASSIGN remains.
func TestDesugarCompoundAssignmentRewritesToPlainAssign(t *testing.T) {
	x := ast.Var{Name: tok(token.IDENTIFIER, "x")}
	stmts := []ast.Stmt{
		ast.ExprStmt{Expression: ast.Binary{
			Left:     x,
			Operator: tok(token.ADD_ASSIGN, "+="),
			Right:    ast.IntLit{Token: tok(token.INT, "1")},
		}},
	}
	out := Desugar(stmts)

	if countBinaryOps(out, token.ADD_ASSIGN) != 0 {
		t.Fatalf("compound assignment survived desugaring: %+v", out)
	}
	if countBinaryOps(out, token.ASSIGN) != 1 {
		t.Fatalf("expected exactly one plain assignment, got tree %+v", out)
	}

	exprStmt, ok := out[0].(ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", out[0])
	}
	bin, ok := exprStmt.Expression.(ast.Binary)
	if !ok || bin.Operator.Type != token.ASSIGN {
		t.Fatalf("expected top-level ASSIGN, got %+v", exprStmt.Expression)
	}
	inner, ok := bin.Right.(ast.Binary)
	if !ok || inner.Operator.Type != token.ADD {
		t.Fatalf("expected inner ADD, got %+v", bin.Right)
	}
}

// For-loops must disappear entirely, replaced by the var/if/while template.
func TestDesugarForLoopLeavesNoForNode(t *testing.T) {
	stmts := []ast.Stmt{
		ast.For{
			Counter: tok(token.IDENTIFIER, "i"),
			From:    ast.IntLit{Token: tok(token.INT, "0")},
			To:      ast.IntLit{Token: tok(token.INT, "3")},
			Body:    ast.Compound{Statements: []ast.Stmt{}},
		},
	}
	out := Desugar(stmts)

	block, ok := out[0].(ast.Compound)
	if !ok {
		t.Fatalf("expected desugared For to produce a Compound, got %T", out[0])
	}
	if len(block.Statements) != 4 {
		t.Fatalf("expected 4 statements (2 var defs, counter var, if), got %d", len(block.Statements))
	}
	if _, ok := block.Statements[3].(ast.If); !ok {
		t.Fatalf("expected final statement to be an If, got %T", block.Statements[3])
	}
}

// Desugaring an already-desugared tree must be a no-op (idempotent).
func TestDesugarIsIdempotent(t *testing.T) {
	x := ast.Var{Name: tok(token.IDENTIFIER, "x")}
	stmts := []ast.Stmt{
		ast.For{
			Counter: tok(token.IDENTIFIER, "i"),
			From:    ast.IntLit{Token: tok(token.INT, "0")},
			To:      ast.IntLit{Token: tok(token.INT, "3")},
			Body: ast.ExprStmt{Expression: ast.Binary{
				Left:     x,
				Operator: tok(token.ADD_ASSIGN, "+="),
				Right:    ast.IntLit{Token: tok(token.INT, "2")},
			}},
		},
	}
	once := Desugar(stmts)
	twice := Desugar(once)

	if countBinaryOps(once, token.ADD_ASSIGN) != countBinaryOps(twice, token.ADD_ASSIGN) {
		t.Fatalf("second desugar pass changed the compound-assignment count")
	}
	if countBinaryOps(twice, token.ADD_ASSIGN) != 0 {
		t.Fatalf("expected no compound assignment left after desugaring")
	}
}
