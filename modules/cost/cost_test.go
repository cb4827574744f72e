package cost

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
	"InstructionCircuit/modules/program"
)

// evaluateDelta re-measures an operation the long way: fresh builder, same
// benign operands, count delta around Evaluate.
func evaluateDelta(t *testing.T, op program.Opcode, kind literal.Kind, modes []circuit.Mode) (circuit.CircuitCount, error) {
	t.Helper()
	b := circuit.NewBuilder()
	operands := make([]program.Operand, len(modes))
	for i, mode := range modes {
		l, err := sample(b, kind, mode)
		require.NoError(t, err)
		operands[i] = program.LiteralOperand(l)
	}
	ins, err := program.NewInstruction(op, operands, 0)
	require.NoError(t, err)
	before := b.Count()
	if _, err := ins.Evaluate(b, program.NewRegisters()); err != nil {
		return circuit.CircuitCount{}, err
	}
	return b.Count().Delta(before), nil
}

func TestCostMatchesEvaluation(t *testing.T) {
	reg := NewRegistry()
	ops := []program.Opcode{program.OpAdd, program.OpSub, program.OpMul,
		program.OpDiv, program.OpAnd, program.OpOr, program.OpXor}
	kinds := []literal.Kind{literal.KindU8, literal.KindI16, literal.KindU64}
	modes := []circuit.Mode{circuit.Constant, circuit.Public, circuit.Private}

	for _, op := range ops {
		for _, kind := range kinds {
			for _, mx := range modes {
				for _, my := range modes {
					predicted, err := reg.Cost(op, kind, mx, my)
					require.NoError(t, err, "%s on %s at %s,%s", op, kind, mx, my)
					measured, err := evaluateDelta(t, op, kind, []circuit.Mode{mx, my})
					require.NoError(t, err)
					require.Equal(t, measured, predicted,
						"prediction must equal evaluation for %s on %s at %s,%s", op, kind, mx, my)
				}
			}
		}
	}
}

func TestPowCost(t *testing.T) {
	// Kept off the big sweep: the square-and-multiply ladder over a wide
	// exponent is by far the largest gadget.
	reg := NewRegistry()
	for _, kind := range []literal.Kind{literal.KindU8, literal.KindI16} {
		predicted, err := reg.Cost(program.OpPow, kind, circuit.Private, circuit.Private)
		require.NoError(t, err)
		measured, err := evaluateDelta(t, program.OpPow, kind, []circuit.Mode{circuit.Private, circuit.Private})
		require.NoError(t, err)
		require.Equal(t, measured, predicted, "pow on %s", kind)
	}
}

func TestCostUnaryAndField(t *testing.T) {
	reg := NewRegistry()

	predicted, err := reg.Cost(program.OpNot, literal.KindBoolean, circuit.Private)
	require.NoError(t, err)
	measured, err := evaluateDelta(t, program.OpNot, literal.KindBoolean, []circuit.Mode{circuit.Private})
	require.NoError(t, err)
	require.Equal(t, measured, predicted)

	predicted, err = reg.Cost(program.OpNeg, literal.KindI32, circuit.Private)
	require.NoError(t, err)
	measured, err = evaluateDelta(t, program.OpNeg, literal.KindI32, []circuit.Mode{circuit.Private})
	require.NoError(t, err)
	require.Equal(t, measured, predicted)

	predicted, err = reg.Cost(program.OpMul, literal.KindField, circuit.Private, circuit.Private)
	require.NoError(t, err)
	require.EqualValues(t, 1, predicted.Constraints, "a witness field product is one rank-1 constraint")

	predicted, err = reg.Cost(program.OpAdd, literal.KindGroup, circuit.Private, circuit.Private)
	require.NoError(t, err)
	require.Positive(t, predicted.Constraints)
}

func TestAllConstantOperationsAreFree(t *testing.T) {
	reg := NewRegistry()
	count, err := reg.Cost(program.OpMul, literal.KindU128, circuit.Constant, circuit.Constant)
	require.NoError(t, err)
	require.Zero(t, count.Constraints)
	require.Zero(t, count.PublicVariables)
	require.Zero(t, count.PrivateVariables)
}

func TestCostOfUndefinedOperationHalts(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Cost(program.OpNeg, literal.KindU8, circuit.Private)
	require.True(t, circuit.IsHalt(err), "the registry reports the same halt evaluation would")

	_, err = reg.Cost(program.OpAdd, literal.KindString, circuit.Constant, circuit.Constant)
	require.True(t, circuit.IsHalt(err), "inert kinds halt exactly as evaluation does")

	_, err = reg.Cost(program.OpMul, literal.KindScalar, circuit.Private, circuit.Private)
	require.True(t, circuit.IsHalt(err))
}

func TestCostIsMemoized(t *testing.T) {
	reg := NewRegistry()
	first, err := reg.Cost(program.OpAdd, literal.KindU8, circuit.Private, circuit.Private)
	require.NoError(t, err)
	second, err := reg.Cost(program.OpAdd, literal.KindU8, circuit.Private, circuit.Private)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, reg.entries, 1)
}

func TestCostRejectsArityMismatch(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Cost(program.OpAdd, literal.KindU8, circuit.Private)
	require.Error(t, err)
	require.False(t, circuit.IsHalt(err))
}

func TestShapeIndependentOfValues(t *testing.T) {
	// The registry samples with ones; any other in-range witness values must
	// produce the same count.
	reg := NewRegistry()
	predicted, err := reg.Cost(program.OpAdd, literal.KindU16, circuit.Private, circuit.Private)
	require.NoError(t, err)

	u16, ok := literal.KindU16.IntegerType()
	require.True(t, ok)

	b := circuit.NewBuilder()
	x, err := literal.NewInteger(b, u16, big.NewInt(4413), circuit.Private)
	require.NoError(t, err)
	y, err := literal.NewInteger(b, u16, big.NewInt(17712), circuit.Private)
	require.NoError(t, err)
	before := b.Count()
	_, err = literal.Add(b, x, y)
	require.NoError(t, err)
	require.Equal(t, predicted, b.Count().Delta(before))
}

func TestCostMatchesMixedConstantOperands(t *testing.T) {
	// The registry samples constants with value 1. A constant operand with a
	// different bit pattern must not change what the gadget emits.
	reg := NewRegistry()
	cases := []struct {
		op       program.Opcode
		kind     literal.Kind
		lhs, rhs string
	}{
		{program.OpAdd, literal.KindU8, "0u8.constant", "4u8.private"},
		{program.OpAdd, literal.KindU8, "170u8.constant", "4u8.private"},
		{program.OpSub, literal.KindU8, "200u8.private", "37u8.constant"},
		{program.OpMul, literal.KindI16, "-3i16.constant", "7i16.private"},
		{program.OpDiv, literal.KindU8, "9u8.private", "3u8.constant"},
		{program.OpAnd, literal.KindU8, "0u8.constant", "99u8.public"},
		{program.OpPow, literal.KindU8, "2u8.constant", "5u8.private"},
		{program.OpPow, literal.KindU8, "3u8.private", "5u8.constant"},
	}
	for _, c := range cases {
		b := circuit.NewBuilder()
		x, err := literal.Parse(b, c.lhs)
		require.NoError(t, err)
		y, err := literal.Parse(b, c.rhs)
		require.NoError(t, err)

		predicted, err := reg.Cost(c.op, c.kind, x.Mode(), y.Mode())
		require.NoError(t, err)

		ins, err := program.NewInstruction(c.op, []program.Operand{
			program.LiteralOperand(x), program.LiteralOperand(y)}, 0)
		require.NoError(t, err)
		before := b.Count()
		_, err = ins.Evaluate(b, program.NewRegisters())
		require.NoError(t, err)
		require.Equal(t, predicted, b.Count().Delta(before),
			"%s %s %s", c.op, c.lhs, c.rhs)
	}
}
