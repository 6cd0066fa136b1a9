package compiler

import (
	"bufio"
	"strings"
	"testing"

	"ember/desugar"
	"ember/lexer"
	"ember/parser"
)

func compileSrc(t *testing.T, src string) *Bytecode {
	t.Helper()
	tokens, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}
	stmts, err := parser.Make(tokens).Parse()
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	stmts = desugar.Desugar(stmts)

	var sb strings.Builder
	bc, err := Compile(stmts, bufio.NewWriter(&sb))
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return bc
}

func TestCompilePushiUsesConstantPoolNotInlineOperand(t *testing.T) {
	bc := compileSrc(t, "println(42);")
	found := false
	for _, c := range bc.Constants {
		if c.String() == "42" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected 42 to be pooled as a constant, constants: %+v", bc.Constants)
	}
}

func TestDisassembleListsEveryOpcode(t *testing.T) {
	bc := compileSrc(t, "var x = 1; if x < 2 { x = x + 1; } println(x);")
	out := Disassemble(bc)
	for _, want := range []string{"GAlloc", "GStore", "Pushi", "JumpIf", "Jump", "Add", "Return"} {
		if !strings.Contains(out, want) {
			t.Errorf("disassembly missing opcode %q:\n%s", want, out)
		}
	}
}

func TestDisassembleAnnotatesConstantPoolOperands(t *testing.T) {
	bc := compileSrc(t, "println('hi');")
	out := Disassemble(bc)
	if !strings.Contains(out, "'hi'") && !strings.Contains(out, "hi") {
		t.Errorf("expected the disassembly to annotate the pooled string constant:\n%s", out)
	}
}
