package compiler

import (
	"encoding/binary"
	"fmt"

	"ember/value"
)

// Bytecode is the compiled program: a flat instruction stream plus the
// constant pool that Pushi/Pushs/Pushnf operands index into. GlobalCount is
// the final size the globals vector must be allocated to: the GAlloc
// operand, already back-patched into Instructions, but kept here too for
// convenience/introspection.
type Bytecode struct {
	Instructions Instructions
	Constants    []value.Value
	GlobalCount  int
}

type Opcode byte

type Instructions []byte

// The closed opcode set. Pushi takes a constant-pool index rather than an
// inline literal: an inline operand can only ever be as wide as a machine
// word, which would silently truncate the arbitrary-precision integers the
// value model requires, so integer literals are pooled the same way string
// literals already are.
const (
	OpGAlloc Opcode = iota
	OpGStore
	OpGLoad
	OpAlloc
	OpStore
	OpLoad
	OpPushi
	OpPushb
	OpPushs
	OpPushf
	OpPushnf
	OpPop
	OpJump
	OpJumpIf
	OpCall
	OpReturn
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLess
	OpGreater
	OpEq
	OpNot
	OpNeg
)

// OpDefinition names an opcode and the byte width of each inline operand it
// expects, in order.
type OpDefinition struct {
	Name          string
	OperandWidths []int
}

// definitions keeps every opcode's encoding shape in one table.
var definitions = map[Opcode]*OpDefinition{
	OpGAlloc:  {"GAlloc", []int{4}},
	OpGStore:  {"GStore", []int{4}},
	OpGLoad:   {"GLoad", []int{4}},
	OpAlloc:   {"Alloc", []int{4}},
	OpStore:   {"Store", []int{4}},
	OpLoad:    {"Load", []int{4}},
	OpPushi:   {"Pushi", []int{4}},
	OpPushb:   {"Pushb", []int{1}},
	OpPushs:   {"Pushs", []int{4}},
	OpPushf:   {"Pushf", []int{4}},
	OpPushnf:  {"Pushnf", []int{4}},
	OpPop:     {"Pop", nil},
	OpJump:    {"Jump", []int{4}},
	OpJumpIf:  {"JumpIf", []int{4}},
	OpCall:    {"Call", []int{4}},
	OpReturn:  {"Return", nil},
	OpAdd:     {"Add", nil},
	OpSub:     {"Sub", nil},
	OpMul:     {"Mul", nil},
	OpDiv:     {"Div", nil},
	OpMod:     {"Mod", nil},
	OpLess:    {"Less", nil},
	OpGreater: {"Greater", nil},
	OpEq:      {"Eq", nil},
	OpNot:     {"Not", nil},
	OpNeg:     {"Neg", nil},
}

func Get(op Opcode) (*OpDefinition, error) {
	def, ok := definitions[op]
	if !ok {
		return nil, fmt.Errorf("opcode %d undefined", op)
	}
	return def, nil
}

// AssembleInstruction encodes op and its operands (big-endian, per the
// opcode's fixed operand widths) into a single instruction.
func AssembleInstruction(op Opcode, operands ...int) ([]byte, error) {
	def, err := Get(op)
	if err != nil {
		return nil, err
	}
	length := 1
	for _, w := range def.OperandWidths {
		length += w
	}
	instruction := make([]byte, length)
	instruction[0] = byte(op)

	offset := 1
	for idx, width := range def.OperandWidths {
		switch width {
		case 1:
			instruction[offset] = byte(operands[idx])
		case 4:
			binary.BigEndian.PutUint32(instruction[offset:], uint32(operands[idx]))
		case 8:
			binary.BigEndian.PutUint64(instruction[offset:], uint64(operands[idx]))
		default:
			return nil, fmt.Errorf("unsupported operand width %d", width)
		}
		offset += width
	}
	return instruction, nil
}

// ReadOperand decodes the operand of the instruction starting at ip
// (pointing at the opcode byte) according to width.
func ReadOperand(code Instructions, ip int, width int) int64 {
	offset := ip + 1
	switch width {
	case 1:
		return int64(code[offset])
	case 4:
		return int64(binary.BigEndian.Uint32(code[offset:]))
	case 8:
		return int64(binary.BigEndian.Uint64(code[offset:]))
	}
	return 0
}

// InstructionWidth returns the total byte length (opcode + operands) of an
// instruction with opcode op.
func InstructionWidth(op Opcode) int {
	def, err := Get(op)
	if err != nil {
		return 1
	}
	width := 1
	for _, w := range def.OperandWidths {
		width += w
	}
	return width
}
