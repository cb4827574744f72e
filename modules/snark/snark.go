// Package snark lowers an executed builder into a gnark circuit, so a
// program evaluation can be compiled, proven and verified with groth16.
// The lowering replays the builder's rank-1 constraints verbatim: one
// frontend variable per non-constant wire, constants folded into
// coefficients of the one-wire.
package snark

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark/frontend"

	"InstructionCircuit/modules/circuit"
)

const (
	slotOne = iota
	slotPublic
	slotPrivate
)

type term struct {
	coeff *big.Int
	slot  int
	index int
}

type plan struct {
	constraints [][3][]term
}

// Circuit is a gnark rendering of a builder's constraint system. The same
// value serves as both the compile-time placeholder (via Blank) and the
// witness assignment.
type Circuit struct {
	Public  []frontend.Variable `gnark:",public"`
	Private []frontend.Variable

	plan *plan
}

func lowerLC(lc circuit.LinearCombination, slotOf func(circuit.Variable) (int, int)) []term {
	out := make([]term, 0, len(lc))
	for _, t := range lc {
		coeff := t.Coeff
		slot, index := slotOf(t.Var)
		out = append(out, term{coeff: coeff.BigInt(new(big.Int)), slot: slot, index: index})
	}
	return out
}

// FromBuilder lowers b into a circuit carrying b's current assignments as
// the witness. The builder must be fully executed and satisfied.
func FromBuilder(b *circuit.Builder) (*Circuit, error) {
	if ok, i := b.Satisfied(); !ok {
		return nil, fmt.Errorf("constraint %d is not satisfied; refusing to lower", i)
	}

	publicOf := make(map[circuit.Variable]int)
	privateOf := make(map[circuit.Variable]int)
	var public, private []frontend.Variable
	for v := circuit.Variable(1); int(v) < b.NumVariables(); v++ {
		value := b.VariableValue(v)
		assignment := value.BigInt(new(big.Int))
		if b.VariableMode(v) == circuit.Public {
			publicOf[v] = len(public)
			public = append(public, assignment)
		} else {
			privateOf[v] = len(private)
			private = append(private, assignment)
		}
	}

	slotOf := func(v circuit.Variable) (int, int) {
		if v == 0 {
			return slotOne, 0
		}
		if i, ok := publicOf[v]; ok {
			return slotPublic, i
		}
		return slotPrivate, privateOf[v]
	}

	p := &plan{constraints: make([][3][]term, b.NumConstraints())}
	for i := 0; i < b.NumConstraints(); i++ {
		c := b.ConstraintAt(i)
		p.constraints[i] = [3][]term{
			lowerLC(c.A, slotOf),
			lowerLC(c.B, slotOf),
			lowerLC(c.C, slotOf),
		}
	}
	return &Circuit{Public: public, Private: private, plan: p}, nil
}

// Blank returns a compile-time placeholder with the same shape and plan
// but no assignments.
func (c *Circuit) Blank() *Circuit {
	return &Circuit{
		Public:  make([]frontend.Variable, len(c.Public)),
		Private: make([]frontend.Variable, len(c.Private)),
		plan:    c.plan,
	}
}

func (c *Circuit) evalLC(api frontend.API, terms []term) frontend.Variable {
	acc := frontend.Variable(0)
	for _, t := range terms {
		var v frontend.Variable
		switch t.slot {
		case slotOne:
			v = 1
		case slotPublic:
			v = c.Public[t.index]
		default:
			v = c.Private[t.index]
		}
		acc = api.Add(acc, api.Mul(t.coeff, v))
	}
	return acc
}

// Define replays every lowered constraint.
func (c *Circuit) Define(api frontend.API) error {
	if c.plan == nil {
		return fmt.Errorf("circuit has no lowering plan; construct it with FromBuilder")
	}
	for _, cs := range c.plan.constraints {
		a := c.evalLC(api, cs[0])
		b := c.evalLC(api, cs[1])
		out := c.evalLC(api, cs[2])
		api.AssertIsEqual(api.Mul(a, b), out)
	}
	return nil
}
