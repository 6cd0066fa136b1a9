package desugar

import "ember/ast"
import "ember/token"

// desugarFor builds the nested var/if/while template:
//
//	{
//	  var for.from = a;
//	  var for.to   = b;
//	  var i        = for.from;
//	  if i <= for.to {
//	      while i < for.to { body; i += 1; }
//	  } else {
//	      while i > for.to { body; i -= 1; }
//	  }
//	}
//
// The auxiliary names contain a dot, which the lexer can never produce, so
// user code cannot capture or reference them.
func desugarFor(n ast.For) ast.Stmt {
	pos := n.Counter.Pos
	src := n.Counter.Source

	ident := func(name string) token.Token {
		return token.New(token.IDENTIFIER, name, pos, src)
	}
	one := ast.IntLit{Token: token.New(token.INT, "1", pos, src)}

	fromTok := ident("for.from")
	toTok := ident("for.to")
	counterVar := ast.Var{Name: n.Counter}

	increment := ast.ExprStmt{Expression: ast.Binary{
		Left:     counterVar,
		Operator: token.New(token.ADD_ASSIGN, "+=", pos, src),
		Right:    one,
	}}
	decrement := ast.ExprStmt{Expression: ast.Binary{
		Left:     counterVar,
		Operator: token.New(token.SUB_ASSIGN, "-=", pos, src),
		Right:    one,
	}}

	ascending := ast.While{
		Condition: ast.Binary{Left: counterVar, Operator: token.New(token.LESS, "<", pos, src), Right: ast.Var{Name: toTok}},
		Body:      ast.Compound{Statements: []ast.Stmt{n.Body, increment}},
	}
	descending := ast.While{
		Condition: ast.Binary{Left: counterVar, Operator: token.New(token.LARGER, ">", pos, src), Right: ast.Var{Name: toTok}},
		Body:      ast.Compound{Statements: []ast.Stmt{n.Body, decrement}},
	}

	dispatch := ast.If{
		Condition: ast.Binary{Left: counterVar, Operator: token.New(token.LESS_EQUAL, "<=", pos, src), Right: ast.Var{Name: toTok}},
		Then:      ast.Compound{Statements: []ast.Stmt{ascending}},
		Else:      ast.Compound{Statements: []ast.Stmt{descending}},
	}

	return ast.Compound{Statements: []ast.Stmt{
		ast.VarDef{Name: fromTok, Value: n.From},
		ast.VarDef{Name: toTok, Value: n.To},
		ast.VarDef{Name: n.Counter, Value: ast.Var{Name: fromTok}},
		dispatch,
	}}
}
