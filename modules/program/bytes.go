package program

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
)

// Binary layout per instruction: opcode as uint16, then exactly arity
// operands, then the destination register as uint32. Each operand is one
// tag byte (0 register, 1 literal) followed by its payload. All integers
// are little-endian.

const (
	operandTagRegister = 0
	operandTagLiteral  = 1
)

// EncodeInstructionTo writes one instruction's binary form.
func EncodeInstructionTo(w io.Writer, ins Instruction) error {
	if err := binary.Write(w, binary.LittleEndian, uint16(ins.op)); err != nil {
		return err
	}
	for _, o := range ins.operands {
		if o.IsRegister() {
			if _, err := w.Write([]byte{operandTagRegister}); err != nil {
				return err
			}
			if err := binary.Write(w, binary.LittleEndian, uint32(o.Register())); err != nil {
				return err
			}
			continue
		}
		if _, err := w.Write([]byte{operandTagLiteral}); err != nil {
			return err
		}
		if err := literal.EncodeTo(w, o.Literal()); err != nil {
			return err
		}
	}
	return binary.Write(w, binary.LittleEndian, uint32(ins.dest))
}

// DecodeInstruction reads one instruction, allocating literal operand
// wires on the builder.
func DecodeInstruction(b *circuit.Builder, r io.Reader) (Instruction, error) {
	var opRaw uint16
	if err := binary.Read(r, binary.LittleEndian, &opRaw); err != nil {
		return Instruction{}, err
	}
	op := Opcode(opRaw)
	if !op.Valid() {
		return Instruction{}, fmt.Errorf("unknown opcode %d", opRaw)
	}
	operands := make([]Operand, 0, op.Arity())
	for i := 0; i < op.Arity(); i++ {
		var tag [1]byte
		if _, err := io.ReadFull(r, tag[:]); err != nil {
			return Instruction{}, err
		}
		switch tag[0] {
		case operandTagRegister:
			var reg uint32
			if err := binary.Read(r, binary.LittleEndian, &reg); err != nil {
				return Instruction{}, err
			}
			operands = append(operands, RegisterOperand(Register(reg)))
		case operandTagLiteral:
			l, err := literal.Decode(b, r)
			if err != nil {
				return Instruction{}, err
			}
			operands = append(operands, LiteralOperand(l))
		default:
			return Instruction{}, fmt.Errorf("unknown operand tag %d", tag[0])
		}
	}
	var dest uint32
	if err := binary.Read(r, binary.LittleEndian, &dest); err != nil {
		return Instruction{}, err
	}
	return NewInstruction(op, operands, Register(dest))
}

// EncodeProgram writes a uint32 instruction count followed by each
// instruction's binary form.
func EncodeProgram(instructions []Instruction) ([]byte, error) {
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(instructions))); err != nil {
		return nil, err
	}
	for _, ins := range instructions {
		if err := EncodeInstructionTo(&buf, ins); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// DecodeProgram reads a length-prefixed instruction sequence.
func DecodeProgram(b *circuit.Builder, r io.Reader) ([]Instruction, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	// The count is untrusted input: cap the preallocation and let append
	// grow the slice if the payload really is that long.
	capHint := n
	if capHint > 1024 {
		capHint = 1024
	}
	out := make([]Instruction, 0, capHint)
	for i := uint32(0); i < n; i++ {
		ins, err := DecodeInstruction(b, r)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		out = append(out, ins)
	}
	return out, nil
}
