package snark

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/stretchr/testify/require"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/program"
)

func executedBuilder(t *testing.T, src string) *circuit.Builder {
	t.Helper()
	b := circuit.NewBuilder()
	stream, err := program.StreamFromSource(b, src)
	require.NoError(t, err)
	require.NoError(t, stream.Execute())
	return b
}

func TestLoweredStreamIsSolvable(t *testing.T) {
	b := executedBuilder(t, `
add 2u8.public 3u8.private into r0;
mul r0 4u8.private into r1;
xor r1 255u8.constant into r2;
`)

	assignment, err := FromBuilder(b)
	require.NoError(t, err)
	require.NotEmpty(t, assignment.Private)
	require.NotEmpty(t, assignment.Public)

	compiled, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, assignment.Blank())
	require.NoError(t, err)
	require.Positive(t, compiled.GetNbConstraints())

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	require.NoError(t, err)
	require.NoError(t, compiled.IsSolved(witness))
}

func TestLoweredFieldAndGroupStream(t *testing.T) {
	b := executedBuilder(t, `
div 21field.private 3field.public into r0;
mul r0 r0 into r1;
add 0group.private 0group.private into r2;
`)

	assignment, err := FromBuilder(b)
	require.NoError(t, err)

	compiled, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, assignment.Blank())
	require.NoError(t, err)

	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	require.NoError(t, err)
	require.NoError(t, compiled.IsSolved(witness))
}

func TestForgedWitnessIsRejected(t *testing.T) {
	b := executedBuilder(t, "mul 5u8.private 5u8.private into r0;")

	assignment, err := FromBuilder(b)
	require.NoError(t, err)

	compiled, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, assignment.Blank())
	require.NoError(t, err)

	// Forge one private wire and re-solve. The first private wire is an
	// operand bit, so shifting it violates its booleanity constraint.
	forged := &Circuit{
		Public:  assignment.Public,
		Private: append([]frontend.Variable{}, assignment.Private...),
		plan:    assignment.plan,
	}
	old, ok := forged.Private[0].(*big.Int)
	require.True(t, ok)
	forged.Private[0] = new(big.Int).Add(old, big.NewInt(1))

	witness, err := frontend.NewWitness(forged, ecc.BN254.ScalarField())
	require.NoError(t, err)
	require.Error(t, compiled.IsSolved(witness), "a forged wire must not satisfy the lowered system")
}

func TestUnsatisfiedBuilderIsRefused(t *testing.T) {
	b := circuit.NewBuilder()
	x := b.AllocBool(circuit.Private, true)
	y := b.AllocBool(circuit.Private, true)
	z := b.And(x, y)

	v, ok := z.Wire()
	require.True(t, ok)
	require.NoError(t, b.FlipAssignment(v))

	_, err := FromBuilder(b)
	require.Error(t, err)
}
