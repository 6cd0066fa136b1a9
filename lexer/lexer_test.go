package lexer

import (
	"testing"

	"ember/token"
)

func kinds(t *testing.T, tokens []token.Token) []token.TokenType {
	t.Helper()
	out := make([]token.TokenType, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Type
	}
	return out
}

func assertKinds(t *testing.T, src string, want []token.TokenType) {
	t.Helper()
	tokens, err := New(src).Scan()
	if err != nil {
		t.Fatalf("Scan(%q) returned error: %v", src, err)
	}
	got := kinds(t, tokens)
	if len(got) != len(want) {
		t.Fatalf("Scan(%q) = %v, want %v", src, got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Scan(%q)[%d] = %s, want %s", src, i, got[i], want[i])
		}
	}
}

// Keyword/operator tie-breaks: longest match wins.
func TestOperatorTieBreaks(t *testing.T) {
	assertKinds(t, "==/=*+>-<!=<=>=!!", []token.TokenType{
		token.EQUAL_EQUAL, token.DIV_ASSIGN, token.MULT, token.ADD,
		token.LARGER, token.SUB, token.LESS, token.NOT_EQUAL, token.LESS_EQUAL,
		token.LARGER_EQUAL, token.BANG, token.BANG, token.EOF,
	})
}

func TestPunctuationAndCompoundAssignment(t *testing.T) {
	assertKinds(t, "(){}**;+!=<=", []token.TokenType{
		token.LPA, token.RPA, token.LCUR, token.RCUR, token.MULT, token.MULT,
		token.SEMICOLON, token.ADD, token.NOT_EQUAL, token.LESS_EQUAL, token.EOF,
	})
	assertKinds(t, "+= -= *= /= %=", []token.TokenType{
		token.ADD_ASSIGN, token.SUB_ASSIGN, token.MULT_ASSIGN, token.DIV_ASSIGN, token.MOD_ASSIGN, token.EOF,
	})
}

func TestKeywordNotCapturedByIdentifierPrefix(t *testing.T) {
	// "iffy" must lex as a single identifier, not keyword `if` + identifier `fy`.
	assertKinds(t, "iffy", []token.TokenType{token.IDENTIFIER, token.EOF})
	assertKinds(t, "if iffy", []token.TokenType{token.IF, token.IDENTIFIER, token.EOF})
}

func TestIgnoresWhitespaceAndLineComments(t *testing.T) {
	assertKinds(t, "  1 // a comment\n  2", []token.TokenType{token.INT, token.INT, token.EOF})
}

func TestStringLiteralWithEscapes(t *testing.T) {
	tokens, err := New(`'a\'b\nc'`).Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if len(tokens) != 2 || tokens[0].Type != token.STRING {
		t.Fatalf("Scan() = %v, want a single STRING token", tokens)
	}
	want := `'a\'b\nc'`
	if tokens[0].Text != want {
		t.Errorf("Token.Text = %q, want %q (raw, unescaped later by litparse)", tokens[0].Text, want)
	}
}

func TestUnknownCharacterIsFatal(t *testing.T) {
	_, err := New("1 @ 2").Scan()
	if err == nil {
		t.Fatal("Scan() on input with '@' should return an error")
	}
}

func TestPositionsAreZeroBasedAndAdvanceByLine(t *testing.T) {
	tokens, err := New("1\n22").Scan()
	if err != nil {
		t.Fatalf("Scan returned error: %v", err)
	}
	if tokens[0].Pos.Line != 0 || tokens[0].Pos.Character != 0 {
		t.Errorf("first token pos = %+v, want line 0 char 0", tokens[0].Pos)
	}
	if tokens[1].Pos.Line != 1 || tokens[1].Pos.Character != 0 {
		t.Errorf("second token pos = %+v, want line 1 char 0", tokens[1].Pos)
	}
}
