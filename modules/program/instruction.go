package program

import (
	"fmt"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
)

// Instruction is one operation: an opcode, its source operands and a
// destination register.
type Instruction struct {
	op       Opcode
	operands []Operand
	dest     Register
}

// NewInstruction builds an instruction, checking the operand count
// against the opcode's arity.
func NewInstruction(op Opcode, operands []Operand, dest Register) (Instruction, error) {
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("unknown opcode %d", uint16(op))
	}
	if len(operands) != op.Arity() {
		return Instruction{}, fmt.Errorf("'%s' expects %d operands, got %d", op, op.Arity(), len(operands))
	}
	return Instruction{op: op, operands: operands, dest: dest}, nil
}

// Opcode returns the instruction's operation.
func (ins Instruction) Opcode() Opcode { return ins.op }

// Operands returns the source operands.
func (ins Instruction) Operands() []Operand {
	out := make([]Operand, len(ins.operands))
	copy(out, ins.operands)
	return out
}

// Destination returns the destination register.
func (ins Instruction) Destination() Register { return ins.dest }

func (ins Instruction) String() string {
	s := ins.op.String()
	for _, o := range ins.operands {
		s += " " + o.String()
	}
	return fmt.Sprintf("%s into %s;", s, ins.dest)
}

// resolve loads the operand's literal, reading through the register store
// when needed.
func (ins Instruction) resolve(regs *Registers, o Operand) (literal.Literal, error) {
	if o.IsRegister() {
		return regs.Load(o.Register())
	}
	return o.Literal(), nil
}

// Evaluate resolves the operands, applies the operation on the builder and
// binds the result to the destination register. Returns the result literal.
func (ins Instruction) Evaluate(b *circuit.Builder, regs *Registers) (literal.Literal, error) {
	in := make([]literal.Literal, len(ins.operands))
	for i, o := range ins.operands {
		l, err := ins.resolve(regs, o)
		if err != nil {
			return literal.Literal{}, err
		}
		in[i] = l
	}

	var out literal.Literal
	var err error
	switch ins.op {
	case OpNeg:
		out, err = literal.Neg(b, in[0])
	case OpAdd:
		out, err = literal.Add(b, in[0], in[1])
	case OpSub:
		out, err = literal.Sub(b, in[0], in[1])
	case OpMul:
		out, err = literal.Mul(b, in[0], in[1])
	case OpDiv:
		out, err = literal.Div(b, in[0], in[1])
	case OpPow:
		out, err = literal.Pow(b, in[0], in[1])
	case OpAnd:
		out, err = literal.And(b, in[0], in[1])
	case OpOr:
		out, err = literal.Or(b, in[0], in[1])
	case OpXor:
		out, err = literal.Xor(b, in[0], in[1])
	case OpNot:
		out, err = literal.Not(b, in[0])
	default:
		err = circuit.Haltf("Invalid '%s' instruction", ins.op)
	}
	if err != nil {
		return literal.Literal{}, err
	}
	if err := regs.Assign(ins.dest, out); err != nil {
		return literal.Literal{}, err
	}
	return out, nil
}

// OutputMode predicts the mode of the instruction's result from its
// operand modes without evaluating: the join over all operands.
func (ins Instruction) OutputMode(regs *Registers) (circuit.Mode, error) {
	modes := make([]circuit.Mode, len(ins.operands))
	for i, o := range ins.operands {
		l, err := ins.resolve(regs, o)
		if err != nil {
			return circuit.Constant, err
		}
		modes[i] = l.Mode()
	}
	return circuit.Join(modes...), nil
}
