// Package cost predicts the circuit cost of an operation for a given
// operand kind and mode combination without touching the caller's builder.
// Costs are measured, not tabulated: each query dry-runs the operation's
// gadget on a scratch builder with safe sample values and memoizes the
// count delta. Circuit shape depends only on the operand modes, so one
// measurement per key is exact.
package cost

import (
	"fmt"
	"math/big"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
	"InstructionCircuit/modules/program"
)

type key struct {
	op    program.Opcode
	kind  literal.Kind
	arity int
	modes [2]circuit.Mode
}

type entry struct {
	count circuit.CircuitCount
	err   error
}

// Registry memoizes operation costs. Not safe for concurrent use.
type Registry struct {
	entries map[key]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[key]entry)}
}

// sample builds a benign operand of the given kind and mode: values are
// chosen so that no supported operation halts on them.
func sample(b *circuit.Builder, kind literal.Kind, mode circuit.Mode) (literal.Literal, error) {
	switch kind {
	case literal.KindBoolean:
		return literal.NewBoolean(b, true, mode), nil
	case literal.KindField:
		return literal.Parse(b, fmt.Sprintf("1field.%s", mode))
	case literal.KindGroup:
		return literal.NewGroup(b, literal.Generator(big.NewInt(1)), mode), nil
	case literal.KindScalar:
		return literal.NewScalar(big.NewInt(1), mode), nil
	case literal.KindString:
		return literal.NewString("a", mode), nil
	case literal.KindAddress:
		return literal.NewAddress("addr1qyqszqgp", mode)
	default:
		if t, ok := kind.IntegerType(); ok {
			return literal.NewInteger(b, t, big.NewInt(1), mode)
		}
		return literal.Literal{}, fmt.Errorf("operations are not defined on %s literals", kind)
	}
}

func measure(op program.Opcode, kind literal.Kind, modes []circuit.Mode) entry {
	b := circuit.NewBuilder()
	operands := make([]program.Operand, len(modes))
	for i, mode := range modes {
		l, err := sample(b, kind, mode)
		if err != nil {
			return entry{err: err}
		}
		operands[i] = program.LiteralOperand(l)
	}
	ins, err := program.NewInstruction(op, operands, 0)
	if err != nil {
		return entry{err: err}
	}
	before := b.Count()
	if _, err := ins.Evaluate(b, program.NewRegisters()); err != nil {
		return entry{err: err}
	}
	return entry{count: b.Count().Delta(before)}
}

// Cost returns the circuit count of applying op to operands of the given
// kind at the given modes. The mode count must match the opcode's arity.
// Operations undefined on the kind return the same halt evaluation would.
func (r *Registry) Cost(op program.Opcode, kind literal.Kind, modes ...circuit.Mode) (circuit.CircuitCount, error) {
	if len(modes) != op.Arity() {
		return circuit.CircuitCount{}, fmt.Errorf("'%s' expects %d operand modes, got %d", op, op.Arity(), len(modes))
	}
	k := key{op: op, kind: kind, arity: len(modes)}
	copy(k.modes[:], modes)
	if e, ok := r.entries[k]; ok {
		return e.count, e.err
	}
	e := measure(op, kind, modes)
	r.entries[k] = e
	return e.count, e.err
}

var defaultRegistry = NewRegistry()

// Count queries the package-level registry.
func Count(op program.Opcode, kind literal.Kind, modes ...circuit.Mode) (circuit.CircuitCount, error) {
	return defaultRegistry.Cost(op, kind, modes...)
}
