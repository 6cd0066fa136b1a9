// Package compiler implements the bytecode compiler: it lowers a desugared
// AST to a flat opcode stream for the stack VM, sharing the same
// symtab.SymbolTable shape the tree-walk interpreter uses, but populating
// Symbol.RegisterIndex instead of Symbol.Value.
package compiler

import (
	"bufio"
	"encoding/binary"
	"fmt"

	"ember/ast"
	"ember/builtins"
	"ember/errs"
	"ember/litparse"
	"ember/symtab"
	"ember/token"
	"ember/value"
)

// Compiler walks a desugared program once, emitting Instructions and
// growing Constants as literals and native functions are encountered.
type Compiler struct {
	symbols   *symtab.SymbolTable
	code      Instructions
	constants []value.Value
	// callDepth counts nested function bodies being compiled. At depth 0
	// every symbol lives in the globals vector, even one defined inside a
	// top-level block: the main frame never executes an Alloc, so it has no
	// register file to Store into. The register counter only resets on
	// Call, so block-scoped top-level symbols still get unique global slots.
	callDepth int
}

// New builds a Compiler with an empty symbol table.
func New() *Compiler {
	return &Compiler{symbols: symtab.New()}
}

func (c *Compiler) emit(op Opcode, operands ...int) int {
	ins, err := AssembleInstruction(op, operands...)
	if err != nil {
		panic(err) // only possible for a genuinely unknown opcode, a programming error
	}
	pos := len(c.code)
	c.code = append(c.code, ins...)
	return pos
}

// patchOperand overwrites the operandIdx'th operand of the instruction at
// pos (already emitted, placeholder zero) with value. Used to back-patch
// forward jump targets and allocation counts once they are known.
func (c *Compiler) patchOperand(pos int, operandIdx int, val int) {
	def, err := Get(Opcode(c.code[pos]))
	if err != nil {
		panic(err)
	}
	offset := pos + 1
	for i := 0; i < operandIdx; i++ {
		offset += def.OperandWidths[i]
	}
	switch def.OperandWidths[operandIdx] {
	case 1:
		c.code[offset] = byte(val)
	case 4:
		binary.BigEndian.PutUint32(c.code[offset:], uint32(val))
	case 8:
		binary.BigEndian.PutUint64(c.code[offset:], uint64(val))
	}
}

func (c *Compiler) addConstant(v value.Value) int {
	c.constants = append(c.constants, v)
	return len(c.constants) - 1
}

// Compile lowers a desugared program to Bytecode. out is where the
// compiled program's print/println/space/plot_x calls will eventually
// write (the native functions are bound once, here, at compile time, and
// referenced by Pushnf the same way string/integer literals are referenced
// by Pushs/Pushi).
func Compile(stmts []ast.Stmt, out *bufio.Writer) (*Bytecode, error) {
	c := New()

	allocPos := c.emit(OpGAlloc, 0)

	table := builtins.Table(out)
	for _, name := range builtins.Names {
		sym, err := c.symbols.Define(name, false)
		if err != nil {
			panic(err) // only possible if builtins.Names has a duplicate
		}
		idx := c.symbols.NextRegister()
		sym.RegisterIndex = idx
		sym.HasRegister = true
		constIdx := c.addConstant(table[name])
		c.emit(OpPushnf, constIdx)
		c.emit(OpGStore, idx)
	}

	for _, s := range stmts {
		if err := c.stmt(s); err != nil {
			return nil, err
		}
	}
	c.emit(OpReturn)

	c.patchOperand(allocPos, 0, c.symbols.SymbolCount)

	return &Bytecode{
		Instructions: c.code,
		Constants:    c.constants,
		GlobalCount:  c.symbols.SymbolCount,
	}, nil
}

func (c *Compiler) stmt(s ast.Stmt) error {
	switch n := s.(type) {
	case ast.Compound:
		return c.compileBlock(n, false)
	case ast.ExprStmt:
		if err := c.expr(n.Expression); err != nil {
			return err
		}
		c.emit(OpPop)
		return nil
	case ast.VarDef:
		return c.compileVarDef(n)
	case ast.If:
		return c.compileIf(n)
	case ast.While:
		return c.compileWhile(n)
	case ast.FunctionDef:
		return c.compileFunctionDef(n)
	case ast.Return:
		return c.compileReturn(n)
	case ast.For:
		return errs.NewRuntimeErrorAt("internal error: For node reached the compiler undesugared", n.Counter.Pos)
	default:
		return fmt.Errorf("compiler: unknown statement node %T", s)
	}
}

// compileBlock compiles a Compound's statements in order. suppress skips
// pushing a fresh lexical scope, used for a function's body so its
// declarations land directly in the call scope rather than one level
// deeper. The program's top-level statements never pass through here:
// Compile compiles them directly in the global scope.
func (c *Compiler) compileBlock(n ast.Compound, suppress bool) error {
	if !suppress {
		c.symbols.PushScope()
		defer c.symbols.PopScope()
	}
	for _, s := range n.Statements {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *Compiler) compileVarDef(n ast.VarDef) error {
	if err := c.expr(n.Value); err != nil {
		return err
	}
	sym, err := c.symbols.Define(n.Name.Text, true)
	if err != nil {
		return errs.NewRuntimeErrorAt(err.Error(), n.Name.Pos)
	}
	idx := c.symbols.NextRegister()
	sym.RegisterIndex = idx
	sym.HasRegister = true
	if c.callDepth == 0 {
		c.emit(OpGStore, idx)
	} else {
		c.emit(OpStore, idx)
	}
	return nil
}

// compileIf emits the classical jump skeleton: evaluate cond; JumpIf then;
// Jump else; then-addr = current; compile then; Jump end; else-addr =
// current; compile else; end-addr = current; back-patch.
func (c *Compiler) compileIf(n ast.If) error {
	if err := c.expr(n.Condition); err != nil {
		return err
	}
	jumpIfPos := c.emit(OpJumpIf, 0)
	jumpElsePos := c.emit(OpJump, 0)

	thenAddr := len(c.code)
	c.patchOperand(jumpIfPos, 0, thenAddr)
	if err := c.stmt(n.Then); err != nil {
		return err
	}

	jumpEndPos := c.emit(OpJump, 0)

	elseAddr := len(c.code)
	c.patchOperand(jumpElsePos, 0, elseAddr)
	if err := c.stmt(n.Else); err != nil {
		return err
	}

	endAddr := len(c.code)
	c.patchOperand(jumpEndPos, 0, endAddr)
	return nil
}

// compileWhile: Jump cond; body-addr = current; compile body; cond-addr =
// current; compile cond; JumpIf body; back-patch.
func (c *Compiler) compileWhile(n ast.While) error {
	jumpToCondPos := c.emit(OpJump, 0)

	bodyAddr := len(c.code)
	if err := c.stmt(n.Body); err != nil {
		return err
	}

	condAddr := len(c.code)
	c.patchOperand(jumpToCondPos, 0, condAddr)
	if err := c.expr(n.Condition); err != nil {
		return err
	}
	c.emit(OpJumpIf, bodyAddr)
	return nil
}

// compileFunctionDef allocates the outer symbol slot, enters a nested call
// scope (fresh register numbering from 0), emits the skip-jump and frame
// alloc, binds parameters in reverse, compiles the body, then patches both
// fixups and emits the function value into the outer slot.
func (c *Compiler) compileFunctionDef(n ast.FunctionDef) error {
	sym, err := c.symbols.Define(n.Name, false)
	if err != nil {
		return errs.NewRuntimeErrorAt(err.Error(), n.NameToken.Pos)
	}
	outerIsGlobal := c.callDepth == 0
	outerIdx := c.symbols.NextRegister()
	sym.RegisterIndex = outerIdx
	sym.HasRegister = true

	savedScope := c.symbols.Call()
	c.callDepth++
	restore := func() {
		c.callDepth--
		savedScope()
	}

	afterJumpPos := c.emit(OpJump, 0)
	funcAddr := len(c.code)
	allocPos := c.emit(OpAlloc, 0)

	paramSyms := make([]*symtab.Symbol, len(n.Params))
	for idx, p := range n.Params {
		psym, defErr := c.symbols.Define(p, true)
		if defErr != nil {
			restore()
			return errs.NewRuntimeErrorAt(defErr.Error(), n.NameToken.Pos)
		}
		psym.RegisterIndex = c.symbols.NextRegister()
		psym.HasRegister = true
		paramSyms[idx] = psym
	}
	for idx := len(paramSyms) - 1; idx >= 0; idx-- {
		c.emit(OpStore, paramSyms[idx].RegisterIndex)
	}

	if err := c.compileBlock(n.Body, true); err != nil {
		restore()
		return err
	}
	// A body that falls off the end without an explicit return still needs
	// its frame popped; this trailing Return is unreachable when the body
	// already returns on every path.
	c.emit(OpReturn)

	frameCount := c.symbols.SymbolCount
	restore()

	c.patchOperand(allocPos, 0, frameCount)
	afterAddr := len(c.code)
	c.patchOperand(afterJumpPos, 0, afterAddr)

	c.emit(OpPushf, funcAddr)
	if outerIsGlobal {
		c.emit(OpGStore, outerIdx)
	} else {
		c.emit(OpStore, outerIdx)
	}
	return nil
}

// compileReturn rejects a return outside any function body: emitting a
// bare OpReturn there would pop the VM's last frame and end the program as
// if it had succeeded.
func (c *Compiler) compileReturn(n ast.Return) error {
	if c.callDepth == 0 {
		return errs.NewRuntimeErrorAt("return outside function", n.Keyword.Pos)
	}
	if n.Value != nil {
		if err := c.expr(n.Value); err != nil {
			return err
		}
	}
	c.emit(OpReturn)
	return nil
}

func (c *Compiler) expr(e ast.Expression) error {
	switch n := e.(type) {
	case ast.IntLit:
		v, err := litparse.ParseInt(n.Token.Text)
		if err != nil {
			return errs.NewRuntimeErrorAt(err.Error(), n.Token.Pos)
		}
		idx := c.addConstant(value.NewIntegerFromBig(v))
		c.emit(OpPushi, idx)
		return nil
	case ast.BoolLit:
		b := 0
		if n.Token.Type == token.TRUE {
			b = 1
		}
		c.emit(OpPushb, b)
		return nil
	case ast.StringLit:
		idx := c.addConstant(value.String{V: litparse.UnescapeString(n.Token.Text)})
		c.emit(OpPushs, idx)
		return nil
	case ast.Var:
		return c.compileVarLoad(n)
	case ast.Unary:
		return c.compileUnary(n)
	case ast.Binary:
		return c.compileBinary(n)
	case ast.Call:
		return c.compileCall(n)
	default:
		return fmt.Errorf("compiler: unknown expression node %T", e)
	}
}

func (c *Compiler) compileVarLoad(n ast.Var) error {
	sym, scope, ok := c.symbols.Resolve(n.Name.Text)
	if !ok {
		return &errs.SymbolNotFound{Name: n.Name.Text, Pos: n.Name.Pos}
	}
	if c.callDepth == 0 || c.symbols.IsGlobal(scope) {
		c.emit(OpGLoad, sym.RegisterIndex)
	} else {
		c.emit(OpLoad, sym.RegisterIndex)
	}
	return nil
}

func (c *Compiler) compileUnary(n ast.Unary) error {
	if err := c.expr(n.Right); err != nil {
		return err
	}
	switch n.Operator.Type {
	case token.SUB:
		c.emit(OpNeg)
	case token.BANG:
		c.emit(OpNot)
	case token.ADD:
		// unary + is a no-op: the operand is already on the stack.
	default:
		return errs.NewRuntimeErrorAt("unknown unary operator '"+string(n.Operator.Type)+"'", n.Operator.Pos)
	}
	return nil
}

func (c *Compiler) compileBinary(n ast.Binary) error {
	switch n.Operator.Type {
	case token.ASSIGN:
		return c.compileAssign(n)
	case token.AND:
		return c.compileAnd(n)
	case token.OR:
		return c.compileOr(n)
	}

	if err := c.expr(n.Left); err != nil {
		return err
	}
	if err := c.expr(n.Right); err != nil {
		return err
	}
	switch n.Operator.Type {
	case token.ADD:
		c.emit(OpAdd)
	case token.SUB:
		c.emit(OpSub)
	case token.MULT:
		c.emit(OpMul)
	case token.DIV:
		c.emit(OpDiv)
	case token.MODULO:
		c.emit(OpMod)
	case token.LESS:
		c.emit(OpLess)
	case token.LARGER:
		c.emit(OpGreater)
	case token.EQUAL_EQUAL:
		c.emit(OpEq)
	case token.LESS_EQUAL:
		c.emit(OpGreater)
		c.emit(OpNot)
	case token.LARGER_EQUAL:
		c.emit(OpLess)
		c.emit(OpNot)
	case token.NOT_EQUAL:
		c.emit(OpEq)
		c.emit(OpNot)
	default:
		return errs.NewRuntimeErrorAt("unknown binary operator '"+string(n.Operator.Type)+"'", n.Operator.Pos)
	}
	return nil
}

func (c *Compiler) compileAssign(n ast.Binary) error {
	target, ok := n.Left.(ast.Var)
	if !ok {
		return errs.NewRuntimeErrorAt("assignment target must be a variable", n.Operator.Pos)
	}
	if err := c.expr(n.Right); err != nil {
		return err
	}
	sym, scope, found := c.symbols.Resolve(target.Name.Text)
	if !found {
		return &errs.SymbolNotFound{Name: target.Name.Text, Pos: target.Name.Pos}
	}
	if !sym.Mutable {
		return errs.NewRuntimeErrorAt("can't assign to constant '"+target.Name.Text+"'", target.Name.Pos)
	}
	global := c.callDepth == 0 || c.symbols.IsGlobal(scope)
	if global {
		c.emit(OpGStore, sym.RegisterIndex)
		c.emit(OpGLoad, sym.RegisterIndex)
	} else {
		c.emit(OpStore, sym.RegisterIndex)
		c.emit(OpLoad, sym.RegisterIndex)
	}
	return nil
}

// compileAnd: if left is false, the result is false without evaluating
// right. Both operands flow through a JumpIf, which pops and type-checks
// the bool, so a non-bool operand fails on either side exactly as it does
// in the tree-walk engine; the result is a freshly pushed bool.
func (c *Compiler) compileAnd(n ast.Binary) error {
	if err := c.expr(n.Left); err != nil {
		return err
	}
	jumpToRightPos := c.emit(OpJumpIf, 0)
	c.emit(OpPushb, 0)
	jumpLeftFalsePos := c.emit(OpJump, 0)

	rightAddr := len(c.code)
	c.patchOperand(jumpToRightPos, 0, rightAddr)
	if err := c.expr(n.Right); err != nil {
		return err
	}
	jumpToTruePos := c.emit(OpJumpIf, 0)
	c.emit(OpPushb, 0)
	jumpRightFalsePos := c.emit(OpJump, 0)

	trueAddr := len(c.code)
	c.patchOperand(jumpToTruePos, 0, trueAddr)
	c.emit(OpPushb, 1)

	endAddr := len(c.code)
	c.patchOperand(jumpLeftFalsePos, 0, endAddr)
	c.patchOperand(jumpRightFalsePos, 0, endAddr)
	return nil
}

// compileOr: if left is true, the result is true without evaluating right.
// Same JumpIf discipline as compileAnd: both operands get popped and
// type-checked, never passed through as the result.
func (c *Compiler) compileOr(n ast.Binary) error {
	if err := c.expr(n.Left); err != nil {
		return err
	}
	jumpLeftTruePos := c.emit(OpJumpIf, 0)
	if err := c.expr(n.Right); err != nil {
		return err
	}
	jumpRightTruePos := c.emit(OpJumpIf, 0)
	c.emit(OpPushb, 0)
	jumpToEndPos := c.emit(OpJump, 0)

	trueAddr := len(c.code)
	c.patchOperand(jumpLeftTruePos, 0, trueAddr)
	c.patchOperand(jumpRightTruePos, 0, trueAddr)
	c.emit(OpPushb, 1)

	endAddr := len(c.code)
	c.patchOperand(jumpToEndPos, 0, endAddr)
	return nil
}

func (c *Compiler) compileCall(n ast.Call) error {
	if err := c.expr(n.Callee); err != nil {
		return err
	}
	for _, a := range n.Args {
		if err := c.expr(a); err != nil {
			return err
		}
	}
	c.emit(OpCall, len(n.Args))
	return nil
}
