package circuit

import "fmt"

// CircuitCount is the static resource cost of a piece of circuit: how many
// constant values, public and private witness variables, and constraints it
// creates. Pure data, no identity.
type CircuitCount struct {
	Constants        uint64
	PublicVariables  uint64
	PrivateVariables uint64
	Constraints      uint64
}

// Add returns the component-wise sum.
func (c CircuitCount) Add(o CircuitCount) CircuitCount {
	return CircuitCount{
		Constants:        c.Constants + o.Constants,
		PublicVariables:  c.PublicVariables + o.PublicVariables,
		PrivateVariables: c.PrivateVariables + o.PrivateVariables,
		Constraints:      c.Constraints + o.Constraints,
	}
}

// Delta returns c - base. Builder counters only grow, so a snapshot taken
// before a gadget runs subtracts cleanly from one taken after.
func (c CircuitCount) Delta(base CircuitCount) CircuitCount {
	return CircuitCount{
		Constants:        c.Constants - base.Constants,
		PublicVariables:  c.PublicVariables - base.PublicVariables,
		PrivateVariables: c.PrivateVariables - base.PrivateVariables,
		Constraints:      c.Constraints - base.Constraints,
	}
}

// IsZero reports whether the count is all zero, i.e. the measured piece of
// circuit was fully constant-folded.
func (c CircuitCount) IsZero() bool {
	return c == CircuitCount{}
}

func (c CircuitCount) String() string {
	return fmt.Sprintf("%d constants, %d public, %d private, %d constraints",
		c.Constants, c.PublicVariables, c.PrivateVariables, c.Constraints)
}
