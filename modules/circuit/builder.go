package circuit

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Variable indexes a wire in the constraint system. Variable 0 is the
// constant-one wire and is always assigned 1.
type Variable uint32

const oneVariable Variable = 0

// Term is a single coefficient*variable product inside a linear combination.
type Term struct {
	Coeff fr.Element
	Var   Variable
}

// LinearCombination is a sum of terms over the builder's variables.
type LinearCombination []Term

func lcOfConstant(v fr.Element) LinearCombination {
	if v.IsZero() {
		return nil
	}
	return LinearCombination{{Coeff: v, Var: oneVariable}}
}

func lcOfVariable(v Variable) LinearCombination {
	var one fr.Element
	one.SetOne()
	return LinearCombination{{Coeff: one, Var: v}}
}

// lcAdd returns a + b. Terms are concatenated, not merged; evaluation and
// the emitted matrices are insensitive to duplicates.
func lcAdd(a, b LinearCombination) LinearCombination {
	out := make(LinearCombination, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

// lcSub returns a - b.
func lcSub(a, b LinearCombination) LinearCombination {
	out := make(LinearCombination, 0, len(a)+len(b))
	out = append(out, a...)
	var minusOne fr.Element
	minusOne.SetOne().Neg(&minusOne)
	for _, t := range b {
		var c fr.Element
		c.Mul(&t.Coeff, &minusOne)
		out = append(out, Term{Coeff: c, Var: t.Var})
	}
	return out
}

// lcScale returns k * a.
func lcScale(k fr.Element, a LinearCombination) LinearCombination {
	if k.IsZero() {
		return nil
	}
	out := make(LinearCombination, 0, len(a))
	for _, t := range a {
		var c fr.Element
		c.Mul(&t.Coeff, &k)
		out = append(out, Term{Coeff: c, Var: t.Var})
	}
	return out
}

type rank1Constraint struct {
	a, b, c LinearCombination
}

// Builder is the native constraint-system builder the gadgets emit into: an
// R1CS over the bn254 scalar field whose full witness is known at synthesis
// time. Constant wires never allocate a variable, so an all-constant gadget
// leaves the builder untouched apart from the constants counter.
//
// A Builder is exclusively owned by one execution context and is not safe
// for concurrent use. Once a gadget halts, the builder must be discarded.
type Builder struct {
	assignments []fr.Element
	modes       []Mode
	constraints []rank1Constraint

	count CircuitCount
}

// NewBuilder returns an empty builder holding only the constant-one wire.
func NewBuilder() *Builder {
	var one fr.Element
	one.SetOne()
	return &Builder{
		assignments: []fr.Element{one},
		modes:       []Mode{Constant},
	}
}

// allocate creates a witness variable with the given mode and assignment.
// Constant-mode wires are represented as coefficients of the one-wire and
// never reach here.
func (b *Builder) allocate(mode Mode, value fr.Element) Variable {
	v := Variable(len(b.assignments))
	b.assignments = append(b.assignments, value)
	b.modes = append(b.modes, mode)
	switch mode {
	case Public:
		b.count.PublicVariables++
	default:
		b.count.PrivateVariables++
	}
	return v
}

// noteConstant records a constant value in the cost accounting.
func (b *Builder) noteConstant() {
	b.count.Constants++
}

// Enforce appends the rank-1 constraint a * b = c.
func (b *Builder) Enforce(lhs, rhs, out LinearCombination) {
	b.constraints = append(b.constraints, rank1Constraint{a: lhs, b: rhs, c: out})
	b.count.Constraints++
}

// Eval evaluates a linear combination over the current assignments.
func (b *Builder) Eval(lc LinearCombination) fr.Element {
	var acc, tmp fr.Element
	for _, t := range lc {
		tmp.Mul(&t.Coeff, &b.assignments[t.Var])
		acc.Add(&acc, &tmp)
	}
	return acc
}

// Count snapshots the builder's resource counters.
func (b *Builder) Count() CircuitCount {
	return b.count
}

// NumConstraints returns the number of enforced constraints.
func (b *Builder) NumConstraints() int {
	return len(b.constraints)
}

// NumVariables returns the number of allocated variables, the one-wire
// included.
func (b *Builder) NumVariables() int {
	return len(b.assignments)
}

// Constraint is one enforced rank-1 relation A * B = C.
type Constraint struct {
	A, B, C LinearCombination
}

// ConstraintAt returns the i-th enforced constraint.
func (b *Builder) ConstraintAt(i int) Constraint {
	c := b.constraints[i]
	return Constraint{A: c.a, B: c.b, C: c.c}
}

// VariableMode returns the mode a variable was allocated with.
func (b *Builder) VariableMode(v Variable) Mode {
	return b.modes[v]
}

// VariableValue returns a variable's current assignment.
func (b *Builder) VariableValue(v Variable) fr.Element {
	return b.assignments[v]
}

// Satisfied re-checks every enforced constraint against the current
// assignments and returns the index of the first violated one.
func (b *Builder) Satisfied() (bool, int) {
	for i, c := range b.constraints {
		va := b.Eval(c.a)
		vb := b.Eval(c.b)
		vc := b.Eval(c.c)
		var prod fr.Element
		prod.Mul(&va, &vb)
		if !prod.Equal(&vc) {
			return false, i
		}
	}
	return true, -1
}

// FlipAssignment replaces a boolean variable's assignment with its
// complement. Intended for satisfiability tests; flipping a result bit of a
// correctly constrained gadget must leave the system unsatisfiable.
func (b *Builder) FlipAssignment(v Variable) error {
	if v == oneVariable || int(v) >= len(b.assignments) {
		return fmt.Errorf("variable %d is not flippable", v)
	}
	var one fr.Element
	one.SetOne()
	b.assignments[v].Sub(&one, &b.assignments[v])
	return nil
}
