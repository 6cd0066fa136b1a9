// Package vm implements the stack virtual machine: it executes a
// compiler.Bytecode program against a globals vector and a stack of
// per-call frames, each with its own register file and computation stack.
package vm

import (
	"fmt"

	"ember/compiler"
	"ember/value"
)

// VM holds the state that survives a single Run: the globals vector
// (sized by OpGAlloc) and the live frame stack. Both are reset at the
// start of Run, so a VM instance can be reused across programs without a
// failed run leaking partially mutated state into the next one.
type VM struct {
	globals []value.Value
	frames  []*frame
}

// New builds an idle VM.
func New() *VM {
	return &VM{}
}

func (vm *VM) currentFrame() *frame {
	return vm.frames[len(vm.frames)-1]
}

// Run executes bc from instruction 0 to completion. It returns nil once
// the outermost frame returns (or an error on any runtime failure:
// type mismatches, divide-by-zero, calling a non-callable, or too few
// arguments, which underflow the callee's stack). Call does not check
// arity, so surplus arguments raise no error.
func (vm *VM) Run(bc *compiler.Bytecode) error {
	vm.globals = nil
	vm.frames = []*frame{newFrame(0)}

	for len(vm.frames) > 0 {
		f := vm.currentFrame()
		if f.ip >= len(bc.Instructions) {
			return runtimeError("instruction pointer ran past the end of the program")
		}
		op := compiler.Opcode(bc.Instructions[f.ip])
		width := compiler.InstructionWidth(op)

		switch op {
		case compiler.OpGAlloc:
			n := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			vm.globals = make([]value.Value, n)
			f.ip += width

		case compiler.OpGStore:
			idx := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			v, err := f.mustPop()
			if err != nil {
				return err
			}
			vm.globals[idx] = v
			f.ip += width

		case compiler.OpGLoad:
			idx := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			f.push(vm.globals[idx])
			f.ip += width

		case compiler.OpAlloc:
			n := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			f.registers = make([]value.Value, n)
			f.ip += width

		case compiler.OpStore:
			idx := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			v, err := f.mustPop()
			if err != nil {
				return err
			}
			f.registers[idx] = v
			f.ip += width

		case compiler.OpLoad:
			idx := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			f.push(f.registers[idx])
			f.ip += width

		case compiler.OpPushi, compiler.OpPushs, compiler.OpPushnf:
			idx := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			f.push(bc.Constants[idx])
			f.ip += width

		case compiler.OpPushb:
			b := compiler.ReadOperand(bc.Instructions, f.ip, 1)
			f.push(value.Bool{V: b != 0})
			f.ip += width

		case compiler.OpPushf:
			addr := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			f.push(value.Function{Address: addr})
			f.ip += width

		case compiler.OpPop:
			if _, err := f.mustPop(); err != nil {
				return err
			}
			f.ip += width

		case compiler.OpJump:
			addr := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			f.ip = addr

		case compiler.OpJumpIf:
			addr := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			v, err := f.mustPop()
			if err != nil {
				return err
			}
			b, ok := v.(value.Bool)
			if !ok {
				return runtimeError(fmt.Sprintf("type error: expected bool, got %s", v.Kind()))
			}
			f.ip += width
			if b.V {
				f.ip = addr
			}

		case compiler.OpCall:
			argc := int(compiler.ReadOperand(bc.Instructions, f.ip, 4))
			if err := vm.call(f, argc); err != nil {
				return err
			}
			f.ip += width

		case compiler.OpReturn:
			if err := vm.doReturn(); err != nil {
				return err
			}
			if len(vm.frames) == 0 {
				return nil
			}

		case compiler.OpAdd, compiler.OpSub, compiler.OpMul, compiler.OpDiv, compiler.OpMod,
			compiler.OpLess, compiler.OpGreater, compiler.OpEq:
			if err := vm.binaryOp(f, op); err != nil {
				return err
			}
			f.ip += width

		case compiler.OpNot:
			v, err := f.mustPop()
			if err != nil {
				return err
			}
			result, opErr := value.Not(v)
			if opErr != nil {
				return fromValueError(opErr)
			}
			f.push(result)
			f.ip += width

		case compiler.OpNeg:
			v, err := f.mustPop()
			if err != nil {
				return err
			}
			result, opErr := value.Neg(v)
			if opErr != nil {
				return fromValueError(opErr)
			}
			f.push(result)
			f.ip += width

		default:
			return runtimeError(fmt.Sprintf("unknown opcode %d at ip %d", op, f.ip))
		}
	}
	return nil
}

// call pops argc arguments (first pop is the last argument) and the
// callee, then either pushes a new frame (user-defined function) with the
// arguments restored to original order on its own stack, or invokes a
// native function directly and pushes its result onto f.
func (vm *VM) call(f *frame, argc int) error {
	args := make([]value.Value, argc)
	for i := argc - 1; i >= 0; i-- {
		v, err := f.mustPop()
		if err != nil {
			return err
		}
		args[i] = v
	}
	callee, err := f.mustPop()
	if err != nil {
		return err
	}

	switch fn := callee.(type) {
	case value.Function:
		nf := newFrame(fn.Address)
		for _, a := range args {
			nf.push(a)
		}
		vm.frames = append(vm.frames, nf)
		return nil
	case value.NativeFunction:
		result, callErr := fn.Fn(args)
		if callErr != nil {
			return runtimeError(callErr.Error())
		}
		f.push(result)
		return nil
	default:
		return runtimeError("value is not callable")
	}
}

// doReturn pops the current frame's top value (absent becomes Void),
// discards the frame, and pushes the result onto the caller's stack. The
// caller's ip already points past its Call (Call advances ip before
// transferring control), so execution resumes right after it.
func (vm *VM) doReturn() error {
	f := vm.currentFrame()
	result := value.Value(value.Void{})
	if v, ok := f.pop(); ok {
		result = v
	}
	vm.frames = vm.frames[:len(vm.frames)-1]
	if len(vm.frames) == 0 {
		return nil
	}
	vm.currentFrame().push(result)
	return nil
}

func (vm *VM) binaryOp(f *frame, op compiler.Opcode) error {
	right, err := f.mustPop()
	if err != nil {
		return err
	}
	left, err := f.mustPop()
	if err != nil {
		return err
	}

	var result value.Value
	var opErr error
	switch op {
	case compiler.OpAdd:
		result, opErr = value.Add(left, right)
	case compiler.OpSub:
		result, opErr = value.Sub(left, right)
	case compiler.OpMul:
		result, opErr = value.Mul(left, right)
	case compiler.OpDiv:
		result, opErr = value.Div(left, right)
	case compiler.OpMod:
		result, opErr = value.Mod(left, right)
	case compiler.OpLess:
		result, opErr = value.Less(left, right)
	case compiler.OpGreater:
		result, opErr = value.Greater(left, right)
	case compiler.OpEq:
		result, opErr = value.Eq(left, right)
	}
	if opErr != nil {
		return fromValueError(opErr)
	}
	f.push(result)
	return nil
}
