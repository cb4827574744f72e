// Package integers implements fixed-width two's-complement integers over
// boolean wires: allocation, bit and byte views, and checked negate, add,
// subtract, multiply, divide and power. All-constant operations fold through
// the gates natively and emit no constraints; the halt conditions are
// identical on both paths.
package integers

import (
	"fmt"
	"math/big"

	"golang.org/x/exp/constraints"

	"InstructionCircuit/modules/circuit"
)

// Type is the configuration-time width/signedness parameter of an integer
// gadget. The five signed and five unsigned widths share one implementation.
type Type struct {
	Width  uint
	Signed bool
}

var (
	I8   = Type{Width: 8, Signed: true}
	I16  = Type{Width: 16, Signed: true}
	I32  = Type{Width: 32, Signed: true}
	I64  = Type{Width: 64, Signed: true}
	I128 = Type{Width: 128, Signed: true}
	U8   = Type{Width: 8, Signed: false}
	U16  = Type{Width: 16, Signed: false}
	U32  = Type{Width: 32, Signed: false}
	U64  = Type{Width: 64, Signed: false}
	U128 = Type{Width: 128, Signed: false}
)

// Types lists every supported integer type.
var Types = []Type{I8, I16, I32, I64, I128, U8, U16, U32, U64, U128}

func (t Type) String() string {
	if t.Signed {
		return fmt.Sprintf("i%d", t.Width)
	}
	return fmt.Sprintf("u%d", t.Width)
}

// TypeFromString resolves a type suffix such as "i8" or "u128".
func TypeFromString(s string) (Type, bool) {
	for _, t := range Types {
		if t.String() == s {
			return t, true
		}
	}
	return Type{}, false
}

// Min returns the smallest representable value.
func (t Type) Min() *big.Int {
	if !t.Signed {
		return new(big.Int)
	}
	// -2^(W-1)
	m := new(big.Int).Lsh(big.NewInt(1), t.Width-1)
	return m.Neg(m)
}

// Max returns the largest representable value.
func (t Type) Max() *big.Int {
	w := t.Width
	if t.Signed {
		w--
	}
	m := new(big.Int).Lsh(big.NewInt(1), w)
	return m.Sub(m, big.NewInt(1))
}

// Contains reports whether v is representable.
func (t Type) Contains(v *big.Int) bool {
	return v.Cmp(t.Min()) >= 0 && v.Cmp(t.Max()) <= 0
}

// residueOf maps a representable value to its unsigned two's-complement
// residue in [0, 2^W).
func (t Type) residueOf(v *big.Int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), t.Width)
	return new(big.Int).Mod(v, mod)
}

// signedOf maps a residue in [0, 2^W) back to the represented value.
func (t Type) signedOf(residue *big.Int) *big.Int {
	v := new(big.Int).Set(residue)
	if t.Signed && v.Bit(int(t.Width-1)) == 1 {
		mod := new(big.Int).Lsh(big.NewInt(1), t.Width)
		v.Sub(v, mod)
	}
	return v
}

// Int is an N-bit integer gadget: exactly Width boolean wires in
// little-endian order, fixed at construction, plus the value they encode
// under the type's two's-complement interpretation.
type Int struct {
	typ   Type
	bits  []circuit.Bool
	value *big.Int
}

// New allocates an integer of the given type, value and mode. An
// out-of-range value is an allocation error, not a halt.
func New(b *circuit.Builder, t Type, v *big.Int, mode circuit.Mode) (Int, error) {
	if !t.Contains(v) {
		return Int{}, fmt.Errorf("value %s is out of range for %s", v, t)
	}
	residue := t.residueOf(v)
	bits := make([]circuit.Bool, t.Width)
	for i := range bits {
		bits[i] = b.AllocBool(mode, residue.Bit(i) == 1)
	}
	return Int{typ: t, bits: bits, value: new(big.Int).Set(v)}, nil
}

// FromNative allocates an integer from a native Go integer value.
func FromNative[T constraints.Integer](b *circuit.Builder, t Type, v T, mode circuit.Mode) (Int, error) {
	var val big.Int
	if v >= 0 {
		val.SetUint64(uint64(v))
	} else {
		val.SetInt64(int64(v))
	}
	return New(b, t, &val, mode)
}

// fromBits rebuilds an Int around existing wires, deriving the value from
// the wire assignments.
func fromBits(t Type, bits []circuit.Bool) Int {
	residue := new(big.Int)
	for i, bit := range bits[:t.Width] {
		if bit.Value() {
			residue.SetBit(residue, i, 1)
		}
	}
	return Int{typ: t, bits: bits[:t.Width], value: t.signedOf(residue)}
}

// Type returns the gadget's integer type.
func (x Int) Type() Type { return x.typ }

// Mode returns the join of the bit modes.
func (x Int) Mode() circuit.Mode {
	modes := make([]circuit.Mode, len(x.bits))
	for i, bit := range x.bits {
		modes[i] = bit.Mode()
	}
	return circuit.Join(modes...)
}

// Value returns the represented value.
func (x Int) Value() *big.Int {
	return new(big.Int).Set(x.value)
}

// Residue returns the unsigned two's-complement residue in [0, 2^W).
func (x Int) Residue() *big.Int {
	return x.typ.residueOf(x.value)
}

func (x Int) String() string {
	return fmt.Sprintf("%s%s", x.value, x.typ)
}

// ToBitsLE returns the wires in little-endian order.
func (x Int) ToBitsLE() []circuit.Bool {
	out := make([]circuit.Bool, len(x.bits))
	copy(out, x.bits)
	return out
}

// ToBitsBE returns the wires in big-endian order, the exact reverse of the
// little-endian view.
func (x Int) ToBitsBE() []circuit.Bool {
	out := x.ToBitsLE()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// FromBitsLE rebuilds an integer from little-endian wires.
func FromBitsLE(t Type, bits []circuit.Bool) (Int, error) {
	if uint(len(bits)) != t.Width {
		return Int{}, fmt.Errorf("%s expects %d bits, got %d", t, t.Width, len(bits))
	}
	return fromBits(t, bits), nil
}

// FromBitsBE rebuilds an integer from big-endian wires.
func FromBitsBE(t Type, bits []circuit.Bool) (Int, error) {
	if uint(len(bits)) != t.Width {
		return Int{}, fmt.Errorf("%s expects %d bits, got %d", t, t.Width, len(bits))
	}
	le := make([]circuit.Bool, len(bits))
	for i := range bits {
		le[len(bits)-1-i] = bits[i]
	}
	return fromBits(t, le), nil
}

// ToBytesLE returns the two's-complement byte view, least-significant byte
// first.
func (x Int) ToBytesLE() []byte {
	out := make([]byte, x.typ.Width/8)
	residue := x.Residue()
	for i := range out {
		for j := 0; j < 8; j++ {
			if residue.Bit(i*8+j) == 1 {
				out[i] |= 1 << j
			}
		}
	}
	return out
}

// ToBytesBE returns the byte view most-significant byte first.
func (x Int) ToBytesBE() []byte {
	out := x.ToBytesLE()
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// FromBytesLE allocates an integer from a little-endian two's-complement
// byte view.
func FromBytesLE(b *circuit.Builder, t Type, data []byte, mode circuit.Mode) (Int, error) {
	if uint(len(data)) != t.Width/8 {
		return Int{}, fmt.Errorf("%s expects %d bytes, got %d", t, t.Width/8, len(data))
	}
	residue := new(big.Int)
	for i, by := range data {
		for j := 0; j < 8; j++ {
			if by&(1<<j) != 0 {
				residue.SetBit(residue, i*8+j, 1)
			}
		}
	}
	return New(b, t, t.signedOf(residue), mode)
}

// FromBytesBE allocates an integer from a big-endian byte view.
func FromBytesBE(b *circuit.Builder, t Type, data []byte, mode circuit.Mode) (Int, error) {
	le := make([]byte, len(data))
	for i := range data {
		le[len(data)-1-i] = data[i]
	}
	return FromBytesLE(b, t, le, mode)
}
