package parser

import (
	"testing"

	"ember/ast"
	"ember/lexer"
)

func parseSrc(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, err := Make(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return stmts
}

// Precedence: `*` binds tighter than `+`, so `1 + 2 * 3` parses with the
// multiplication as the right child of the addition.
func TestParserArithmeticPrecedence(t *testing.T) {
	stmts := parseSrc(t, "1 + 2 * 3;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	exprStmt, ok := stmts[0].(ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt, got %T", stmts[0])
	}
	add, ok := exprStmt.Expression.(ast.Binary)
	if !ok || string(add.Operator.Type) != "+" {
		t.Fatalf("expected top-level +, got %+v", exprStmt.Expression)
	}
	if _, ok := add.Left.(ast.IntLit); !ok {
		t.Fatalf("expected left operand to be an int literal, got %T", add.Left)
	}
	mul, ok := add.Right.(ast.Binary)
	if !ok || string(mul.Operator.Type) != "*" {
		t.Fatalf("expected right operand to be *, got %+v", add.Right)
	}
}

// Relational operators bind looser than arithmetic: `1 + 1 < 3` groups as
// `(1 + 1) < 3`.
func TestParserRelationalLooserThanArithmetic(t *testing.T) {
	stmts := parseSrc(t, "1 + 1 < 3;")
	exprStmt := stmts[0].(ast.ExprStmt)
	cmp, ok := exprStmt.Expression.(ast.Binary)
	if !ok || string(cmp.Operator.Type) != "<" {
		t.Fatalf("expected top-level <, got %+v", exprStmt.Expression)
	}
	if _, ok := cmp.Left.(ast.Binary); !ok {
		t.Fatalf("expected left side to be the nested +, got %T", cmp.Left)
	}
}

// `1 - 2 - 3` must group as `(1 - 2) - 3`.
func TestParserSubtractionIsLeftAssociative(t *testing.T) {
	stmts := parseSrc(t, "1 - 2 - 3;")
	outer := stmts[0].(ast.ExprStmt).Expression.(ast.Binary)
	if string(outer.Operator.Type) != "-" {
		t.Fatalf("expected top-level -, got %+v", outer)
	}
	inner, ok := outer.Left.(ast.Binary)
	if !ok || string(inner.Operator.Type) != "-" {
		t.Fatalf("expected the left child to be the nested subtraction, got %T", outer.Left)
	}
	if _, ok := outer.Right.(ast.IntLit); !ok {
		t.Fatalf("expected the right child to be the literal 3, got %T", outer.Right)
	}
}

// `a = b = c` must group as `a = (b = c)`.
func TestParserAssignmentIsRightAssociative(t *testing.T) {
	stmts := parseSrc(t, "a = b = c;")
	outer := stmts[0].(ast.ExprStmt).Expression.(ast.Binary)
	if string(outer.Operator.Type) != "=" {
		t.Fatalf("expected top-level =, got %+v", outer)
	}
	if _, ok := outer.Left.(ast.Var); !ok {
		t.Fatalf("expected the left child to be the variable a, got %T", outer.Left)
	}
	inner, ok := outer.Right.(ast.Binary)
	if !ok || string(inner.Operator.Type) != "=" {
		t.Fatalf("expected the right child to be the nested assignment, got %T", outer.Right)
	}
}

func TestParserIfWithoutElseGetsEmptyCompound(t *testing.T) {
	stmts := parseSrc(t, "if true { } ")
	ifStmt, ok := stmts[0].(ast.If)
	if !ok {
		t.Fatalf("expected If, got %T", stmts[0])
	}
	elseBlock, ok := ifStmt.Else.(ast.Compound)
	if !ok || len(elseBlock.Statements) != 0 {
		t.Fatalf("expected an empty Compound for missing else, got %+v", ifStmt.Else)
	}
}

func TestParserFunctionDefAndCall(t *testing.T) {
	stmts := parseSrc(t, `
function add(a, b) {
  return a + b;
}
add(1, 2);
`)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(stmts))
	}
	fn, ok := stmts[0].(ast.FunctionDef)
	if !ok {
		t.Fatalf("expected FunctionDef, got %T", stmts[0])
	}
	if fn.Name != "add" || len(fn.Params) != 2 {
		t.Fatalf("unexpected function shape: %+v", fn)
	}

	call := stmts[1].(ast.ExprStmt).Expression.(ast.Call)
	if len(call.Args) != 2 {
		t.Fatalf("expected 2 call args, got %d", len(call.Args))
	}
}

func TestParserForLoopSurfaceSyntax(t *testing.T) {
	stmts := parseSrc(t, "for i 0, 10 print(i);")
	forStmt, ok := stmts[0].(ast.For)
	if !ok {
		t.Fatalf("expected For, got %T", stmts[0])
	}
	if forStmt.Counter.Text != "i" {
		t.Fatalf("expected counter 'i', got %q", forStmt.Counter.Text)
	}
}

func TestParserMissingSemicolonIsAnError(t *testing.T) {
	tokens, err := lexer.New("var x = 1").Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	if _, err := Make(tokens).Parse(); err == nil {
		t.Fatal("expected a parse error for a missing semicolon")
	}
}
