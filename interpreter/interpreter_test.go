package interpreter

import (
	"bufio"
	"strings"
	"testing"

	"ember/desugar"
	"ember/lexer"
	"ember/parser"
)

func runSource(t *testing.T, src string) string {
	t.Helper()
	lex := lexer.New(src)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, err := parser.Make(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	stmts = desugar.Desugar(stmts)

	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	interp := Make(w)
	if err := interp.Interpret(stmts); err != nil {
		t.Fatalf("interpret error: %v", err)
	}
	w.Flush()
	return sb.String()
}

func runSourceErr(t *testing.T, src string) error {
	t.Helper()
	lex := lexer.New(src)
	tokens, err := lex.Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, err := parser.Make(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	stmts = desugar.Desugar(stmts)

	var sb strings.Builder
	w := bufio.NewWriter(&sb)
	return Make(w).Interpret(stmts)
}

func TestInterpreterArithmeticPrecedence(t *testing.T) {
	if got := runSource(t, "println(2 + 3 * 4);"); got != "14\n" {
		t.Errorf("got %q, want %q", got, "14\n")
	}
}

func TestInterpreterVarAndAssignment(t *testing.T) {
	got := runSource(t, "var x = 10; x = x + 5; println(x);")
	if got != "15\n" {
		t.Errorf("got %q, want %q", got, "15\n")
	}
}

func TestInterpreterCompoundAssignment(t *testing.T) {
	got := runSource(t, "var x = 2; x *= 5; x -= 4; println(x);")
	if got != "6\n" {
		t.Errorf("got %q, want %q", got, "6\n")
	}
}

func TestInterpreterIfElse(t *testing.T) {
	got := runSource(t, "if 1 > 2 { println('a'); } else { println('b'); }")
	if got != "b\n" {
		t.Errorf("got %q, want %q", got, "b\n")
	}
}

func TestInterpreterWhileLoop(t *testing.T) {
	got := runSource(t, "var i = 0; while i < 4 { print(i); i += 1; } println();")
	if got != "0123\n" {
		t.Errorf("got %q, want %q", got, "0123\n")
	}
}

func TestInterpreterForLoopDescending(t *testing.T) {
	got := runSource(t, "for i 4, 1 print(i); println();")
	if got != "432\n" {
		t.Errorf("got %q, want %q", got, "432\n")
	}
}

func TestInterpreterUserFunctionAndReturn(t *testing.T) {
	got := runSource(t, `
function add(a, b) {
  return a + b;
}
println(add(3, 4));
`)
	if got != "7\n" {
		t.Errorf("got %q, want %q", got, "7\n")
	}
}

func TestInterpreterRecursiveFunction(t *testing.T) {
	got := runSource(t, `
function fib(n) {
  if n < 2 { return n; }
  return fib(n - 1) + fib(n - 2);
}
println(fib(10));
`)
	if got != "55\n" {
		t.Errorf("got %q, want %q", got, "55\n")
	}
}

func TestInterpreterShortCircuitAnd(t *testing.T) {
	// The right operand calls println, so if && actually short-circuited
	// on a false left operand, "called" would never print.
	got := runSource(t, `
function sideEffect() {
  println('called');
  return true;
}
var result = false && sideEffect();
println(result);
`)
	if got != "false\n" {
		t.Errorf("got %q, want %q (side effect should not have run)", got, "false\n")
	}
}

// A var in an inner block is invisible to enclosing blocks after the block
// ends; a function sees globals and its own parameters, never the caller's
// locals.
func TestInterpreterScopeRules(t *testing.T) {
	if err := runSourceErr(t, "{ var inner = 1; } println(inner);"); err == nil {
		t.Error("expected a symbol-not-found error for a block-local after its block")
	}
	if err := runSourceErr(t, `
function f() {
  return callerLocal;
}
function g() {
  var callerLocal = 1;
  return f();
}
g();
`); err == nil {
		t.Error("expected a symbol-not-found error: functions must not see caller locals")
	}
	got := runSource(t, `
var g = 10;
function f(a) {
  return g + a;
}
println(f(5));
`)
	if got != "15\n" {
		t.Errorf("got %q, want %q (functions see globals plus parameters)", got, "15\n")
	}
}

func TestInterpreterVarRedeclaringParameterIsAnError(t *testing.T) {
	err := runSourceErr(t, `
function f(a) {
  var a = 2;
  return a;
}
f(1);
`)
	if err == nil {
		t.Fatal("expected an error: the function body shares the call scope with its parameters")
	}
}

func TestInterpreterAssignToFunctionNameIsAnError(t *testing.T) {
	err := runSourceErr(t, "function f() { return 1; } f = 2;")
	if err == nil {
		t.Fatal("expected an error assigning to a function name")
	}
}

func TestInterpreterTopLevelReturnIsRuntimeError(t *testing.T) {
	err := runSourceErr(t, "return 1;")
	if err == nil {
		t.Fatal("expected a runtime error for a top-level return")
	}
}

func TestInterpreterCrossKindEqualityIsTypeError(t *testing.T) {
	err := runSourceErr(t, "println(1 == 'a');")
	if err == nil {
		t.Fatal("expected a type error comparing an integer and a string")
	}
}

func TestInterpreterDivideByZero(t *testing.T) {
	err := runSourceErr(t, "println(1 / 0);")
	if err == nil {
		t.Fatal("expected a runtime error for division by zero")
	}
}

func TestInterpreterStringRepeat(t *testing.T) {
	got := runSource(t, "println('ab' * 3);")
	if got != "ababab\n" {
		t.Errorf("got %q, want %q", got, "ababab\n")
	}
}
