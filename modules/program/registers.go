package program

import (
	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
)

// Registers is a write-once store mapping register indices to literals.
// Loading an unbound register or rebinding a bound one is a halt: both
// indicate a malformed program, not a recoverable condition.
type Registers struct {
	slots map[Register]literal.Literal
}

// NewRegisters returns an empty store.
func NewRegisters() *Registers {
	return &Registers{slots: make(map[Register]literal.Literal)}
}

// Load returns the literal bound to r.
func (s *Registers) Load(r Register) (literal.Literal, error) {
	l, ok := s.slots[r]
	if !ok {
		return literal.Literal{}, circuit.Haltf("Register %s is not bound", r)
	}
	return l, nil
}

// Assign binds r to l. Each register may be assigned exactly once.
func (s *Registers) Assign(r Register, l literal.Literal) error {
	if _, ok := s.slots[r]; ok {
		return circuit.Haltf("Register %s is already bound", r)
	}
	s.slots[r] = l
	return nil
}

// Bound reports whether r has been assigned.
func (s *Registers) Bound(r Register) bool {
	_, ok := s.slots[r]
	return ok
}

// Len returns the number of bound registers.
func (s *Registers) Len() int {
	return len(s.slots)
}
