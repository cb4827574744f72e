package integers

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"InstructionCircuit/modules/circuit"
)

func TestTypeNamesRoundTrip(t *testing.T) {
	for _, typ := range Types {
		parsed, ok := TypeFromString(typ.String())
		require.True(t, ok)
		require.Equal(t, typ, parsed)
	}
	_, ok := TypeFromString("u7")
	require.False(t, ok)
}

func TestTypeBounds(t *testing.T) {
	require.Equal(t, int64(-128), I8.Min().Int64())
	require.Equal(t, int64(127), I8.Max().Int64())
	require.Equal(t, int64(0), U8.Min().Int64())
	require.Equal(t, int64(255), U8.Max().Int64())

	two127 := new(big.Int).Lsh(big.NewInt(1), 127)
	require.Zero(t, I128.Max().Cmp(new(big.Int).Sub(two127, big.NewInt(1))))
	require.Zero(t, I128.Min().Cmp(new(big.Int).Neg(two127)))
}

func TestNewRejectsOutOfRange(t *testing.T) {
	b := circuit.NewBuilder()
	_, err := New(b, U8, big.NewInt(256), circuit.Private)
	require.Error(t, err)
	require.False(t, circuit.IsHalt(err), "allocation failures are plain errors")

	_, err = New(b, I8, big.NewInt(-129), circuit.Private)
	require.Error(t, err)
}

func TestBitViewsRoundTrip(t *testing.T) {
	b := circuit.NewBuilder()
	x, err := New(b, I16, big.NewInt(-12345), circuit.Private)
	require.NoError(t, err)

	le := x.ToBitsLE()
	require.Len(t, le, 16)
	fromLE, err := FromBitsLE(I16, le)
	require.NoError(t, err)
	require.Zero(t, fromLE.Value().Cmp(x.Value()))

	be := x.ToBitsBE()
	fromBE, err := FromBitsBE(I16, be)
	require.NoError(t, err)
	require.Zero(t, fromBE.Value().Cmp(x.Value()))

	for i := range le {
		require.Equal(t, le[i].Value(), be[len(be)-1-i].Value())
	}

	_, err = FromBitsLE(I16, le[:8])
	require.Error(t, err, "width mismatch must be rejected")
}

func TestByteViewsRoundTrip(t *testing.T) {
	b := circuit.NewBuilder()
	x, err := New(b, I32, big.NewInt(-2), circuit.Public)
	require.NoError(t, err)

	le := x.ToBytesLE()
	require.Equal(t, []byte{0xfe, 0xff, 0xff, 0xff}, le)
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xfe}, x.ToBytesBE())

	back, err := FromBytesLE(b, I32, le, circuit.Public)
	require.NoError(t, err)
	require.Equal(t, int64(-2), back.Value().Int64())

	backBE, err := FromBytesBE(b, I32, x.ToBytesBE(), circuit.Public)
	require.NoError(t, err)
	require.Equal(t, int64(-2), backBE.Value().Int64())
}

func TestFromNative(t *testing.T) {
	b := circuit.NewBuilder()
	x, err := FromNative(b, I64, int64(-9000), circuit.Private)
	require.NoError(t, err)
	require.Equal(t, int64(-9000), x.Value().Int64())
	require.Equal(t, "-9000i64", x.String())

	u, err := FromNative(b, U128, uint64(1)<<63, circuit.Constant)
	require.NoError(t, err)
	require.Zero(t, u.Value().Cmp(new(big.Int).Lsh(big.NewInt(1), 63)))

	_, err = FromNative(b, U8, 300, circuit.Private)
	require.Error(t, err)
}

func TestModeJoinOverBits(t *testing.T) {
	b := circuit.NewBuilder()
	x, err := New(b, U8, big.NewInt(9), circuit.Constant)
	require.NoError(t, err)
	require.Equal(t, circuit.Constant, x.Mode())

	y, err := New(b, U8, big.NewInt(9), circuit.Public)
	require.NoError(t, err)
	sum, err := Add(b, x, y)
	require.NoError(t, err)
	require.Equal(t, circuit.Public, sum.Mode(), "result mode is the join of operand modes")
}

func TestResidue(t *testing.T) {
	b := circuit.NewBuilder()
	x, err := New(b, I8, big.NewInt(-1), circuit.Private)
	require.NoError(t, err)
	require.Equal(t, int64(255), x.Residue().Int64())
	require.Equal(t, int64(-1), x.Value().Int64())
}
