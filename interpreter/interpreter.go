// Package interpreter implements the tree-walk evaluator: it executes the
// desugared AST directly against a symtab.SymbolTable, with no
// intermediate bytecode.
package interpreter

import (
	"bufio"

	"ember/ast"
	"ember/builtins"
	"ember/errs"
	"ember/litparse"
	"ember/symtab"
	"ember/token"
	"ember/value"
)

// stepKind distinguishes ordinary fall-through execution from an unwinding
// `return`: a plain value propagated through execute, never a panic or a
// host exception pressed into control-flow duty.
type stepKind int

const (
	stepNormal stepKind = iota
	stepReturned
)

type step struct {
	kind  stepKind
	value value.Value
}

func normalStep() step                { return step{kind: stepNormal} }
func returnedStep(v value.Value) step { return step{kind: stepReturned, value: v} }
func (s step) isReturn() bool         { return s.kind == stepReturned }

// execResult and evalResult let Accept's `any` return type carry a
// (result, error) pair through the visitor dispatch; execute/evaluate
// unpack them immediately.
type execResult struct {
	step step
	err  error
}

type evalResult struct {
	value value.Value
	err   error
}

// Interpreter walks a desugared AST against a single shared symbol table.
type Interpreter struct {
	symbols *symtab.SymbolTable
	out     *bufio.Writer
}

// Make builds an Interpreter with the native function table registered
// into the global scope, writing to out.
func Make(out *bufio.Writer) *Interpreter {
	interp := &Interpreter{symbols: symtab.New(), out: out}
	table := builtins.Table(out)
	for _, name := range builtins.Names {
		sym, err := interp.symbols.Define(name, false)
		if err != nil {
			panic(err) // only possible if builtins.Names has a duplicate
		}
		sym.Value = table[name]
	}
	return interp
}

// Interpret runs a desugared program to completion. A `return` that
// unwinds all the way to the top level is a RuntimeError rather than a
// silent halt.
func (i *Interpreter) Interpret(statements []ast.Stmt) error {
	for _, s := range statements {
		st, err := i.execute(s)
		if err != nil {
			return err
		}
		if st.isReturn() {
			return errs.NewRuntimeError("return outside function")
		}
	}
	return i.out.Flush()
}

func (i *Interpreter) execute(s ast.Stmt) (step, error) {
	r := s.Accept(i).(execResult)
	return r.step, r.err
}

func (i *Interpreter) evaluate(e ast.Expression) (value.Value, error) {
	r := e.Accept(i).(evalResult)
	return r.value, r.err
}

// requireBool evaluates e and requires the result to be Bool: If/While
// conditions and &&/|| operands raise TypeError on anything else.
func (i *Interpreter) requireBool(e ast.Expression) (bool, error) {
	v, err := i.evaluate(e)
	if err != nil {
		return false, err
	}
	b, ok := v.(value.Bool)
	if !ok {
		return false, &errs.TypeError{Expected: "bool", Got: v.Kind().String(), Pos: ast.ExprPos(e)}
	}
	return b.V, nil
}

func (i *Interpreter) VisitCompound(n ast.Compound) any {
	i.symbols.PushScope()
	defer i.symbols.PopScope()
	st, err := i.executeAll(n.Statements)
	return execResult{step: st, err: err}
}

// executeAll runs statements in order in the current scope, without pushing
// a new one. Used by VisitCompound (after it pushes) and by callFunction,
// whose body shares the call scope with the bound parameters.
func (i *Interpreter) executeAll(statements []ast.Stmt) (step, error) {
	for _, s := range statements {
		st, err := i.execute(s)
		if err != nil {
			return st, err
		}
		if st.isReturn() {
			return st, nil
		}
	}
	return normalStep(), nil
}

func (i *Interpreter) VisitExprStmt(n ast.ExprStmt) any {
	if _, err := i.evaluate(n.Expression); err != nil {
		return execResult{err: err}
	}
	return execResult{step: normalStep()}
}

func (i *Interpreter) VisitVarDef(n ast.VarDef) any {
	v, err := i.evaluate(n.Value)
	if err != nil {
		return execResult{err: err}
	}
	sym, defErr := i.symbols.Define(n.Name.Text, true)
	if defErr != nil {
		return execResult{err: errs.NewRuntimeErrorAt(defErr.Error(), n.Name.Pos)}
	}
	sym.Value = v
	return execResult{step: normalStep()}
}

func (i *Interpreter) VisitIf(n ast.If) any {
	cond, err := i.requireBool(n.Condition)
	if err != nil {
		return execResult{err: err}
	}
	if cond {
		st, err := i.execute(n.Then)
		return execResult{step: st, err: err}
	}
	st, err := i.execute(n.Else)
	return execResult{step: st, err: err}
}

func (i *Interpreter) VisitWhile(n ast.While) any {
	for {
		cond, err := i.requireBool(n.Condition)
		if err != nil {
			return execResult{err: err}
		}
		if !cond {
			break
		}
		st, err := i.execute(n.Body)
		if err != nil {
			return execResult{err: err}
		}
		if st.isReturn() {
			return execResult{step: st}
		}
	}
	return execResult{step: normalStep()}
}

func (i *Interpreter) VisitFunctionDef(n ast.FunctionDef) any {
	sym, err := i.symbols.Define(n.Name, false)
	if err != nil {
		return execResult{err: errs.NewRuntimeErrorAt(err.Error(), n.NameToken.Pos)}
	}
	node := n
	sym.Value = value.Function{Node: &node, Name: n.Name}
	return execResult{step: normalStep()}
}

func (i *Interpreter) VisitReturn(n ast.Return) any {
	v := value.Value(value.Void{})
	if n.Value != nil {
		var err error
		v, err = i.evaluate(n.Value)
		if err != nil {
			return execResult{err: err}
		}
	}
	return execResult{step: returnedStep(v)}
}

// VisitFor should never be reached: the desugarer eliminates For nodes
// before the interpreter sees the tree.
func (i *Interpreter) VisitFor(n ast.For) any {
	return execResult{err: errs.NewRuntimeErrorAt("internal error: For node reached the interpreter undesugared", n.Counter.Pos)}
}

func (i *Interpreter) VisitIntLit(n ast.IntLit) any {
	v, err := litparse.ParseInt(n.Token.Text)
	if err != nil {
		return evalResult{err: errs.NewRuntimeErrorAt(err.Error(), n.Token.Pos)}
	}
	return evalResult{value: value.NewIntegerFromBig(v)}
}

func (i *Interpreter) VisitBoolLit(n ast.BoolLit) any {
	return evalResult{value: value.Bool{V: n.Token.Type == token.TRUE}}
}

func (i *Interpreter) VisitStringLit(n ast.StringLit) any {
	return evalResult{value: value.String{V: litparse.UnescapeString(n.Token.Text)}}
}

func (i *Interpreter) VisitVar(n ast.Var) any {
	sym, _, ok := i.symbols.Resolve(n.Name.Text)
	if !ok {
		return evalResult{err: &errs.SymbolNotFound{Name: n.Name.Text, Pos: n.Name.Pos}}
	}
	return evalResult{value: sym.Value}
}

func (i *Interpreter) VisitUnary(n ast.Unary) any {
	right, err := i.evaluate(n.Right)
	if err != nil {
		return evalResult{err: err}
	}
	var result value.Value
	switch n.Operator.Type {
	case token.SUB:
		result, err = value.Neg(right)
	case token.ADD:
		result, err = value.Pos(right)
	case token.BANG:
		result, err = value.Not(right)
	default:
		return evalResult{err: errs.NewRuntimeErrorAt("unknown unary operator '"+string(n.Operator.Type)+"'", n.Operator.Pos)}
	}
	if err != nil {
		return evalResult{err: errs.FromValueError(err, n.Operator.Pos)}
	}
	return evalResult{value: result}
}

// VisitBinary handles `=` (assignment target must be a plain Var — the
// shared check mentioned in desugar/desugar.go), the short-circuiting
// &&/||, and every other binary operator via value's operator table.
func (i *Interpreter) VisitBinary(n ast.Binary) any {
	if n.Operator.Type == token.ASSIGN {
		return i.visitAssign(n)
	}
	if n.Operator.Type == token.AND || n.Operator.Type == token.OR {
		return i.visitShortCircuit(n)
	}

	left, err := i.evaluate(n.Left)
	if err != nil {
		return evalResult{err: err}
	}
	right, err := i.evaluate(n.Right)
	if err != nil {
		return evalResult{err: err}
	}

	var result value.Value
	switch n.Operator.Type {
	case token.ADD:
		result, err = value.Add(left, right)
	case token.SUB:
		result, err = value.Sub(left, right)
	case token.MULT:
		result, err = value.Mul(left, right)
	case token.DIV:
		result, err = value.Div(left, right)
	case token.MODULO:
		result, err = value.Mod(left, right)
	case token.LESS:
		result, err = value.Less(left, right)
	case token.LESS_EQUAL:
		result, err = value.LessEqual(left, right)
	case token.LARGER:
		result, err = value.Greater(left, right)
	case token.LARGER_EQUAL:
		result, err = value.GreaterEqual(left, right)
	case token.EQUAL_EQUAL:
		result, err = value.Eq(left, right)
	case token.NOT_EQUAL:
		result, err = value.NotEq(left, right)
	default:
		return evalResult{err: errs.NewRuntimeErrorAt("unknown binary operator '"+string(n.Operator.Type)+"'", n.Operator.Pos)}
	}
	if err != nil {
		return evalResult{err: errs.FromValueError(err, n.Operator.Pos)}
	}
	return evalResult{value: result}
}

func (i *Interpreter) visitShortCircuit(n ast.Binary) any {
	left, err := i.requireBool(n.Left)
	if err != nil {
		return evalResult{err: err}
	}
	if n.Operator.Type == token.AND && !left {
		return evalResult{value: value.Bool{V: false}}
	}
	if n.Operator.Type == token.OR && left {
		return evalResult{value: value.Bool{V: true}}
	}
	right, err := i.requireBool(n.Right)
	if err != nil {
		return evalResult{err: err}
	}
	return evalResult{value: value.Bool{V: right}}
}

func (i *Interpreter) visitAssign(n ast.Binary) any {
	target, ok := n.Left.(ast.Var)
	if !ok {
		return evalResult{err: errs.NewRuntimeErrorAt("assignment target must be a variable", n.Operator.Pos)}
	}
	v, err := i.evaluate(n.Right)
	if err != nil {
		return evalResult{err: err}
	}
	sym, _, found := i.symbols.Resolve(target.Name.Text)
	if !found {
		return evalResult{err: &errs.SymbolNotFound{Name: target.Name.Text, Pos: target.Name.Pos}}
	}
	if !sym.Mutable {
		return evalResult{err: errs.NewRuntimeErrorAt("can't assign to constant '"+target.Name.Text+"'", target.Name.Pos)}
	}
	sym.Value = v
	return evalResult{value: v}
}

func (i *Interpreter) VisitCall(n ast.Call) any {
	callee, err := i.evaluate(n.Callee)
	if err != nil {
		return evalResult{err: err}
	}
	args := make([]value.Value, len(n.Args))
	for idx, a := range n.Args {
		args[idx], err = i.evaluate(a)
		if err != nil {
			return evalResult{err: err}
		}
	}

	switch fn := callee.(type) {
	case value.NativeFunction:
		result, callErr := fn.Fn(args)
		if callErr != nil {
			return evalResult{err: errs.NewRuntimeErrorAt(callErr.Error(), n.Paren.Pos)}
		}
		return evalResult{value: result}
	case value.Function:
		result, callErr := i.callFunction(fn, args, n.Paren)
		return evalResult{value: result, err: callErr}
	default:
		return evalResult{err: errs.NewRuntimeErrorAt("value is not callable", n.Paren.Pos)}
	}
}

// callFunction binds args to fn's parameters in a fresh scope parented at
// the global scope (no closures) and executes the body.
func (i *Interpreter) callFunction(fn value.Function, args []value.Value, paren token.Token) (value.Value, error) {
	if len(args) != len(fn.Node.Params) {
		return nil, errs.NewRuntimeErrorAt("wrong number of arguments", paren.Pos)
	}
	restore := i.symbols.Call()
	defer restore()

	for idx, param := range fn.Node.Params {
		sym, err := i.symbols.Define(param, true)
		if err != nil {
			return nil, errs.NewRuntimeErrorAt(err.Error(), paren.Pos)
		}
		sym.Value = args[idx]
	}

	st, err := i.executeAll(fn.Node.Body.Statements)
	if err != nil {
		return nil, err
	}
	if st.isReturn() {
		return st.value, nil
	}
	return value.Void{}, nil
}
