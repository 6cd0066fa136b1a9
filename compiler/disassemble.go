package compiler

import (
	"fmt"
	"strings"
)

// Disassemble renders bc's instruction stream as human-readable text, one
// line per instruction: offset, opcode name, and decoded operands. Operands
// that index the constant pool are annotated with the constant's value.
func Disassemble(bc *Bytecode) string {
	var sb strings.Builder
	code := bc.Instructions

	for ip := 0; ip < len(code); {
		op := Opcode(code[ip])
		def, err := Get(op)
		if err != nil {
			fmt.Fprintf(&sb, "%04d ERROR: %s\n", ip, err)
			ip++
			continue
		}

		fmt.Fprintf(&sb, "%04d %-8s", ip, def.Name)
		operands := make([]int64, len(def.OperandWidths))
		offset := ip + 1
		for i, width := range def.OperandWidths {
			operands[i] = ReadOperand(code, ip, width)
			fmt.Fprintf(&sb, " %d", operands[i])
			offset += width
		}

		if isConstantOp(op) && len(operands) == 1 {
			idx := int(operands[0])
			if idx >= 0 && idx < len(bc.Constants) {
				fmt.Fprintf(&sb, "  ; %s", bc.Constants[idx].String())
			}
		}
		sb.WriteByte('\n')

		ip += InstructionWidth(op)
	}
	return sb.String()
}

func isConstantOp(op Opcode) bool {
	switch op {
	case OpPushi, OpPushs, OpPushnf:
		return true
	}
	return false
}
