// Package literal implements the closed tagged union over the value kinds
// an instruction can operate on: booleans, field and group elements, the
// ten fixed-width integers, scalars, strings and addresses. Wire-backed
// kinds carry their mode through the wires; inert kinds carry it directly.
package literal

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/twistededwards"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/integers"
)

// Kind tags a literal variant. The numbering is part of the binary
// encoding and must not change.
type Kind uint8

const (
	KindBoolean Kind = iota
	KindField
	KindGroup
	KindI8
	KindI16
	KindI32
	KindI64
	KindI128
	KindU8
	KindU16
	KindU32
	KindU64
	KindU128
	KindScalar
	KindString
	KindAddress
)

var kindNames = map[Kind]string{
	KindBoolean: "boolean",
	KindField:   "field",
	KindGroup:   "group",
	KindI8:      "i8",
	KindI16:     "i16",
	KindI32:     "i32",
	KindI64:     "i64",
	KindI128:    "i128",
	KindU8:      "u8",
	KindU16:     "u16",
	KindU32:     "u32",
	KindU64:     "u64",
	KindU128:    "u128",
	KindScalar:  "scalar",
	KindString:  "string",
	KindAddress: "address",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("unknown(%d)", uint8(k))
}

// KindFromName resolves a kind by its textual suffix.
func KindFromName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

var integerKinds = map[Kind]integers.Type{
	KindI8:   integers.I8,
	KindI16:  integers.I16,
	KindI32:  integers.I32,
	KindI64:  integers.I64,
	KindI128: integers.I128,
	KindU8:   integers.U8,
	KindU16:  integers.U16,
	KindU32:  integers.U32,
	KindU64:  integers.U64,
	KindU128: integers.U128,
}

// IntegerType returns the integer type of an integer kind.
func (k Kind) IntegerType() (integers.Type, bool) {
	t, ok := integerKinds[k]
	return t, ok
}

// KindOfIntegerType maps an integer type back to its kind.
func KindOfIntegerType(t integers.Type) Kind {
	for k, kt := range integerKinds {
		if kt == t {
			return k
		}
	}
	panic("unreachable: unregistered integer type " + t.String())
}

// Literal is one value of a closed kind. The zero Literal is a constant
// false boolean wire with an empty linear combination and must not be used;
// construct literals through the New* functions or Parse.
type Literal struct {
	kind    Kind
	boolean circuit.Bool
	element circuit.Element
	group   groupWire
	integer integers.Int
	scalar  *big.Int
	text    string
	mode    circuit.Mode
}

// NewBoolean allocates a boolean literal.
func NewBoolean(b *circuit.Builder, v bool, mode circuit.Mode) Literal {
	return Literal{kind: KindBoolean, boolean: b.AllocBool(mode, v)}
}

// NewField allocates a field literal.
func NewField(b *circuit.Builder, v fr.Element, mode circuit.Mode) Literal {
	return Literal{kind: KindField, element: b.AllocElement(mode, v)}
}

// NewGroup allocates a group literal from an affine point.
func NewGroup(b *circuit.Builder, p twistededwards.PointAffine, mode circuit.Mode) Literal {
	return Literal{kind: KindGroup, group: newGroup(b, p, mode)}
}

// NewInteger allocates an integer literal of the given type.
func NewInteger(b *circuit.Builder, t integers.Type, v *big.Int, mode circuit.Mode) (Literal, error) {
	n, err := integers.New(b, t, v, mode)
	if err != nil {
		return Literal{}, err
	}
	return Literal{kind: KindOfIntegerType(t), integer: n}, nil
}

// NewScalar builds a scalar literal, reduced modulo the group order.
func NewScalar(v *big.Int, mode circuit.Mode) Literal {
	params := twistededwards.GetEdwardsCurve()
	s := new(big.Int).Mod(v, &params.Order)
	return Literal{kind: KindScalar, scalar: s, mode: mode}
}

// NewString builds a string literal.
func NewString(s string, mode circuit.Mode) Literal {
	return Literal{kind: KindString, text: s, mode: mode}
}

const addressPrefix = "addr1"

// NewAddress builds an address literal, validating the textual form.
func NewAddress(s string, mode circuit.Mode) (Literal, error) {
	if !strings.HasPrefix(s, addressPrefix) || len(s) < len(addressPrefix)+6 {
		return Literal{}, fmt.Errorf("malformed address %q", s)
	}
	for _, c := range s[len(addressPrefix):] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return Literal{}, fmt.Errorf("malformed address %q", s)
		}
	}
	return Literal{kind: KindAddress, text: s, mode: mode}, nil
}

// Kind returns the literal's variant tag.
func (l Literal) Kind() Kind { return l.kind }

// Mode returns the literal's visibility: the join of its wire modes for
// wire-backed kinds, the stored mode otherwise.
func (l Literal) Mode() circuit.Mode {
	switch l.kind {
	case KindBoolean:
		return l.boolean.Mode()
	case KindField:
		return l.element.Mode()
	case KindGroup:
		return l.group.mode()
	case KindScalar, KindString, KindAddress:
		return l.mode
	default:
		return l.integer.Mode()
	}
}

// AsBoolean returns the boolean wire of a boolean literal.
func (l Literal) AsBoolean() (circuit.Bool, bool) {
	return l.boolean, l.kind == KindBoolean
}

// AsField returns the field wire of a field literal.
func (l Literal) AsField() (circuit.Element, bool) {
	return l.element, l.kind == KindField
}

// AsGroup returns the affine point of a group literal.
func (l Literal) AsGroup() (twistededwards.PointAffine, bool) {
	return l.group.point(), l.kind == KindGroup
}

// AsInteger returns the integer gadget of an integer literal.
func (l Literal) AsInteger() (integers.Int, bool) {
	_, ok := l.kind.IntegerType()
	return l.integer, ok
}

// AsScalar returns the value of a scalar literal.
func (l Literal) AsScalar() (*big.Int, bool) {
	if l.kind != KindScalar {
		return nil, false
	}
	return new(big.Int).Set(l.scalar), true
}

// AsString returns the value of a string or address literal.
func (l Literal) AsString() (string, bool) {
	return l.text, l.kind == KindString || l.kind == KindAddress
}

// WireValue returns the literal's value as the field residue its wires
// evaluate to: 0/1 for booleans, the canonical value for fields, the
// unsigned two's-complement residue for integers. Other kinds have no
// single-wire representation.
func (l Literal) WireValue() (*big.Int, error) {
	switch l.kind {
	case KindBoolean:
		if l.boolean.Value() {
			return big.NewInt(1), nil
		}
		return big.NewInt(0), nil
	case KindField:
		v := l.element.Value()
		return v.BigInt(new(big.Int)), nil
	default:
		if _, ok := l.kind.IntegerType(); ok {
			return l.integer.Residue(), nil
		}
		return nil, fmt.Errorf("%s literals have no single-wire value", l.kind)
	}
}
