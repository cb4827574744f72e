// Package program implements the instruction layer: opcodes, operands,
// the write-once register store, instruction parsing and binary encoding,
// and the stream driver that executes a program against a circuit builder.
package program

import "fmt"

// Opcode identifies an operation. The numbering is part of the binary
// encoding and must not change.
type Opcode uint16

const (
	OpNeg Opcode = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpPow
	OpAnd
	OpOr
	OpXor
	OpNot
)

type opcodeInfo struct {
	name  string
	arity int
}

var opcodes = map[Opcode]opcodeInfo{
	OpNeg: {"neg", 1},
	OpAdd: {"add", 2},
	OpSub: {"sub", 2},
	OpMul: {"mul", 2},
	OpDiv: {"div", 2},
	OpPow: {"pow", 2},
	OpAnd: {"and", 2},
	OpOr:  {"or", 2},
	OpXor: {"xor", 2},
	OpNot: {"not", 1},
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return fmt.Sprintf("unknown(%d)", uint16(op))
}

// Arity returns the operand count of the opcode.
func (op Opcode) Arity() int {
	return opcodes[op].arity
}

// Valid reports whether the opcode is registered.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// OpcodeFromName resolves an opcode by its mnemonic.
func OpcodeFromName(name string) (Opcode, bool) {
	for op, info := range opcodes {
		if info.name == name {
			return op, true
		}
	}
	return 0, false
}

// Opcodes lists every registered opcode in encoding order.
func Opcodes() []Opcode {
	out := make([]Opcode, 0, len(opcodes))
	for op := OpNeg; op <= OpNot; op++ {
		out = append(out, op)
	}
	return out
}
