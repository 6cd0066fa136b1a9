package parser

import "ember/token"

// Assoc tags a precedence level's associativity.
type Assoc int

const (
	LeftAssoc Assoc = iota
	RightAssoc
)

// level is one row of the precedence table: a set of operator kinds and
// how parseBinary recurses for them.
type level struct {
	assoc     Assoc
	operators map[token.TokenType]bool
}

// precedenceTable is kept as data, lowest precedence first. The
// compound-assignment operators bind at level 0 alongside `=`,
// right-associative, because the desugarer depends on that.
var precedenceTable = []level{
	{assoc: RightAssoc, operators: set(token.ASSIGN, token.ADD_ASSIGN, token.SUB_ASSIGN, token.MULT_ASSIGN, token.DIV_ASSIGN, token.MOD_ASSIGN)},
	{assoc: LeftAssoc, operators: set(token.OR)},
	{assoc: LeftAssoc, operators: set(token.AND)},
	{assoc: LeftAssoc, operators: set(token.EQUAL_EQUAL, token.NOT_EQUAL)},
	{assoc: LeftAssoc, operators: set(token.LARGER, token.LARGER_EQUAL, token.LESS, token.LESS_EQUAL)},
	{assoc: LeftAssoc, operators: set(token.ADD, token.SUB)},
	{assoc: LeftAssoc, operators: set(token.MULT, token.DIV, token.MODULO)},
}

func set(kinds ...token.TokenType) map[token.TokenType]bool {
	m := make(map[token.TokenType]bool, len(kinds))
	for _, k := range kinds {
		m[k] = true
	}
	return m
}
