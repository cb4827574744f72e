package integers

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"InstructionCircuit/modules/circuit"
)

func mustNew(t *testing.T, b *circuit.Builder, typ Type, v int64, mode circuit.Mode) Int {
	t.Helper()
	n, err := New(b, typ, big.NewInt(v), mode)
	require.NoError(t, err)
	return n
}

func TestAddExhaustiveI8(t *testing.T) {
	for xv := int64(-128); xv <= 127; xv++ {
		for yv := int64(-128); yv <= 127; yv++ {
			b := circuit.NewBuilder()
			x := mustNew(t, b, I8, xv, circuit.Private)
			y := mustNew(t, b, I8, yv, circuit.Private)

			sum, err := Add(b, x, y)
			want := xv + yv
			if want < -128 || want > 127 {
				require.Error(t, err, "%d + %d must overflow", xv, yv)
				require.True(t, circuit.IsHalt(err))
				continue
			}
			require.NoError(t, err, "%d + %d", xv, yv)
			require.Equal(t, want, sum.Value().Int64())
			ok, bad := b.Satisfied()
			require.True(t, ok, "constraint %d violated for %d + %d", bad, xv, yv)
		}
	}
}

func TestAddMatchesNativeSampled(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, typ := range Types {
		for trial := 0; trial < 50; trial++ {
			span := new(big.Int).Sub(typ.Max(), typ.Min())
			span.Add(span, big.NewInt(1))
			xv := new(big.Int).Add(typ.Min(), new(big.Int).Rand(rng, span))
			yv := new(big.Int).Add(typ.Min(), new(big.Int).Rand(rng, span))

			b := circuit.NewBuilder()
			x, err := New(b, typ, xv, circuit.Private)
			require.NoError(t, err)
			y, err := New(b, typ, yv, circuit.Public)
			require.NoError(t, err)

			sum, err := Add(b, x, y)
			want := new(big.Int).Add(xv, yv)
			if !typ.Contains(want) {
				require.True(t, circuit.IsHalt(err), "%s + %s on %s", xv, yv, typ)
				continue
			}
			require.NoError(t, err)
			require.Zero(t, sum.Value().Cmp(want), "%s + %s on %s", xv, yv, typ)
		}
	}
}

func TestNegBoundaries(t *testing.T) {
	for _, typ := range Types {
		b := circuit.NewBuilder()
		one, err := New(b, typ, big.NewInt(1), circuit.Private)
		require.NoError(t, err)

		if !typ.Signed {
			_, err := Neg(b, one)
			require.True(t, circuit.IsHalt(err), "unsigned negation must halt")
			continue
		}

		neg, err := Neg(b, one)
		require.NoError(t, err)
		require.Equal(t, int64(-1), neg.Value().Int64())

		min, err := New(b, typ, typ.Min(), circuit.Private)
		require.NoError(t, err)
		_, err = Neg(b, min)
		require.True(t, circuit.IsHalt(err), "negating the %s minimum must halt", typ)

		max, err := New(b, typ, typ.Max(), circuit.Private)
		require.NoError(t, err)
		negMax, err := Neg(b, max)
		require.NoError(t, err)
		wantMin := new(big.Int).Add(typ.Min(), big.NewInt(1))
		require.Zero(t, negMax.Value().Cmp(wantMin))

		ok, bad := b.Satisfied()
		require.True(t, ok, "constraint %d violated", bad)
	}
}

func TestSubUnsigned(t *testing.T) {
	b := circuit.NewBuilder()
	five := mustNew(t, b, U8, 5, circuit.Private)
	three := mustNew(t, b, U8, 3, circuit.Private)

	diff, err := Sub(b, five, three)
	require.NoError(t, err)
	require.Equal(t, int64(2), diff.Value().Int64())

	_, err = Sub(b, three, five)
	require.True(t, circuit.IsHalt(err), "unsigned underflow must halt")
}

func TestSubSignedInheritsNegationHalt(t *testing.T) {
	b := circuit.NewBuilder()
	zero := mustNew(t, b, I8, 0, circuit.Private)
	min := mustNew(t, b, I8, -128, circuit.Private)

	// 0 - (-128) = 128 is unrepresentable; the halt comes from negating -128.
	_, err := Sub(b, zero, min)
	require.True(t, circuit.IsHalt(err))

	seven := mustNew(t, b, I8, 7, circuit.Private)
	diff, err := Sub(b, seven, zero)
	require.NoError(t, err)
	require.Equal(t, int64(7), diff.Value().Int64())
}

func TestMul(t *testing.T) {
	cases := []struct {
		typ   Type
		x, y  int64
		want  int64
		halts bool
	}{
		{U8, 12, 20, 240, false},
		{U8, 16, 16, 0, true},
		{I8, -8, 16, -128, false},
		{I8, -8, 17, 0, true},
		{I8, -1, -128, 0, true},
		{I16, 181, 181, 32761, false},
		{U64, 1 << 31, 1 << 31, 1 << 62, false},
		{U64, 1 << 32, 1 << 32, 0, true},
	}
	for _, tc := range cases {
		b := circuit.NewBuilder()
		x := mustNew(t, b, tc.typ, tc.x, circuit.Private)
		y := mustNew(t, b, tc.typ, tc.y, circuit.Private)
		prod, err := Mul(b, x, y)
		if tc.halts {
			require.True(t, circuit.IsHalt(err), "%d * %d on %s must halt", tc.x, tc.y, tc.typ)
			continue
		}
		require.NoError(t, err, "%d * %d on %s", tc.x, tc.y, tc.typ)
		want := tc.want
		if want == 0 {
			want = tc.x * tc.y
		}
		require.Equal(t, want, prod.Value().Int64())
		ok, bad := b.Satisfied()
		require.True(t, ok, "constraint %d violated", bad)
	}
}

func TestDivTruncatesTowardZero(t *testing.T) {
	cases := []struct {
		x, y, q, r int64
	}{
		{7, 2, 3, 1},
		{-7, 2, -3, -1},
		{7, -2, -3, 1},
		{-7, -2, 3, -1},
		{-128, 2, -64, 0},
		{127, -1, -127, 0},
	}
	for _, tc := range cases {
		b := circuit.NewBuilder()
		x := mustNew(t, b, I8, tc.x, circuit.Private)
		y := mustNew(t, b, I8, tc.y, circuit.Private)
		q, r, err := DivMod(b, x, y)
		require.NoError(t, err, "%d / %d", tc.x, tc.y)
		require.Equal(t, tc.q, q.Value().Int64(), "%d / %d quotient", tc.x, tc.y)
		require.Equal(t, tc.r, r.Value().Int64(), "%d / %d remainder", tc.x, tc.y)
		ok, bad := b.Satisfied()
		require.True(t, ok, "constraint %d violated for %d / %d", bad, tc.x, tc.y)
	}
}

func TestDivEdges(t *testing.T) {
	b := circuit.NewBuilder()
	min := mustNew(t, b, I8, -128, circuit.Private)
	minusOne := mustNew(t, b, I8, -1, circuit.Private)
	_, err := Div(b, min, minusOne)
	require.True(t, circuit.IsHalt(err), "MIN / -1 must halt")

	b = circuit.NewBuilder()
	seven := mustNew(t, b, I8, 7, circuit.Private)
	zero := mustNew(t, b, I8, 0, circuit.Private)
	_, err = Div(b, seven, zero)
	require.True(t, circuit.IsHalt(err), "division by zero must halt")

	b = circuit.NewBuilder()
	uzero := mustNew(t, b, U64, 0, circuit.Private)
	uone := mustNew(t, b, U64, 1, circuit.Private)
	q, err := Div(b, uzero, uone)
	require.NoError(t, err)
	require.Equal(t, int64(0), q.Value().Int64())
}

func TestPow(t *testing.T) {
	cases := []struct {
		base, exp int64
		baseTyp   Type
		expTyp    Type
		want      int64
		halts     bool
	}{
		{2, 3, I8, U8, 8, false},
		{2, 6, I8, U8, 64, false},
		{2, 7, I8, U8, 0, true},
		{-2, 3, I8, U8, -8, false},
		{-2, 7, I8, U8, -128, false},
		{0, 0, U8, U8, 1, false},
		{0, 200, U8, U8, 0, false},
		{1, 255, U8, U8, 1, false},
		{3, 5, U8, U8, 243, false},
		{4, 4, U8, U8, 0, true},
		{2, 3, I8, I16, 8, false},
	}
	for _, tc := range cases {
		b := circuit.NewBuilder()
		x := mustNew(t, b, tc.baseTyp, tc.base, circuit.Private)
		e := mustNew(t, b, tc.expTyp, tc.exp, circuit.Private)
		res, err := Pow(b, x, e)
		if tc.halts {
			require.True(t, circuit.IsHalt(err), "%d ^ %d on %s must halt", tc.base, tc.exp, tc.baseTyp)
			continue
		}
		require.NoError(t, err, "%d ^ %d on %s", tc.base, tc.exp, tc.baseTyp)
		require.Equal(t, tc.want, res.Value().Int64())
		ok, bad := b.Satisfied()
		require.True(t, ok, "constraint %d violated for %d ^ %d", bad, tc.base, tc.exp)
	}
}

func TestPowNegativeExponentHalts(t *testing.T) {
	b := circuit.NewBuilder()
	two := mustNew(t, b, U8, 2, circuit.Private)
	minusOne := mustNew(t, b, I8, -1, circuit.Private)
	_, err := Pow(b, two, minusOne)
	require.True(t, circuit.IsHalt(err))
}

func TestBitwise(t *testing.T) {
	b := circuit.NewBuilder()
	x := mustNew(t, b, U8, 0b1100_1010, circuit.Private)
	y := mustNew(t, b, U8, 0b1010_0110, circuit.Private)

	and, err := And(b, x, y)
	require.NoError(t, err)
	require.Equal(t, int64(0b1000_0010), and.Value().Int64())

	or, err := Or(b, x, y)
	require.NoError(t, err)
	require.Equal(t, int64(0b1110_1110), or.Value().Int64())

	xor, err := Xor(b, x, y)
	require.NoError(t, err)
	require.Equal(t, int64(0b0110_1100), xor.Value().Int64())

	before := b.NumConstraints()
	not := Not(b, x)
	require.Equal(t, int64(0b0011_0101), not.Value().Int64())
	require.Equal(t, before, b.NumConstraints(), "complement is linear")

	ok, bad := b.Satisfied()
	require.True(t, ok, "constraint %d violated", bad)
}

func TestTypeMismatchHalts(t *testing.T) {
	b := circuit.NewBuilder()
	x := mustNew(t, b, U8, 1, circuit.Private)
	y := mustNew(t, b, U16, 1, circuit.Private)
	_, err := Add(b, x, y)
	require.True(t, circuit.IsHalt(err))
	require.Contains(t, err.Error(), "operand types u8 and u16 do not match")
}

func TestHaltsAgreeAcrossModes(t *testing.T) {
	modes := []circuit.Mode{circuit.Constant, circuit.Public, circuit.Private}
	for _, mx := range modes {
		for _, my := range modes {
			b := circuit.NewBuilder()
			x := mustNew(t, b, I8, 100, mx)
			y := mustNew(t, b, I8, 100, my)
			_, err := Add(b, x, y)
			require.True(t, circuit.IsHalt(err), "overflow must halt at modes %s,%s", mx, my)

			b = circuit.NewBuilder()
			x = mustNew(t, b, I8, 100, mx)
			y = mustNew(t, b, I8, 27, my)
			sum, err := Add(b, x, y)
			require.NoError(t, err)
			require.Equal(t, int64(127), sum.Value().Int64())
			if mx == circuit.Constant && my == circuit.Constant {
				require.Zero(t, b.NumConstraints(), "all-constant addition must be free")
			}
		}
	}
}

func TestFlippedResultBitIsUnsatisfiable(t *testing.T) {
	b := circuit.NewBuilder()
	x := mustNew(t, b, U8, 21, circuit.Private)
	y := mustNew(t, b, U8, 33, circuit.Private)
	sum, err := Add(b, x, y)
	require.NoError(t, err)
	require.Equal(t, int64(54), sum.Value().Int64())

	ok, _ := b.Satisfied()
	require.True(t, ok)

	v, isWire := sum.ToBitsLE()[0].Wire()
	require.True(t, isWire)
	require.NoError(t, b.FlipAssignment(v))
	ok, _ = b.Satisfied()
	require.False(t, ok, "a forged sum bit must violate the adder constraints")
}
