package program

import (
	"fmt"

	"InstructionCircuit/modules/literal"
)

// Register names a slot in the register store.
type Register uint32

func (r Register) String() string {
	return fmt.Sprintf("r%d", uint32(r))
}

// Operand is either a register reference or an inline literal.
type Operand struct {
	register Register
	literal  literal.Literal
	isReg    bool
}

// RegisterOperand wraps a register reference.
func RegisterOperand(r Register) Operand {
	return Operand{register: r, isReg: true}
}

// LiteralOperand wraps an inline literal.
func LiteralOperand(l literal.Literal) Operand {
	return Operand{literal: l}
}

// IsRegister reports whether the operand is a register reference.
func (o Operand) IsRegister() bool { return o.isReg }

// Register returns the register reference; valid only when IsRegister.
func (o Operand) Register() Register { return o.register }

// Literal returns the inline literal; valid only when !IsRegister.
func (o Operand) Literal() literal.Literal { return o.literal }

func (o Operand) String() string {
	if o.isReg {
		return o.register.String()
	}
	return literal.Format(o.literal)
}
