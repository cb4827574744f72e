package literal

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/integers"
)

// Binary layout: one kind byte, one mode byte, then a kind-specific
// payload. Field, group and scalar payloads are 32 little-endian bytes;
// group carries one extra byte selecting the y root; integers use their
// two's-complement byte view; strings and addresses are length-prefixed.

const wordBytes = fr.Bytes

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i := range b {
		out[len(b)-1-i] = b[i]
	}
	return out
}

func elementLE(v fr.Element) []byte {
	be := v.Bytes()
	return reverse(be[:])
}

func elementFromLE(data []byte) (fr.Element, error) {
	raw := new(big.Int).SetBytes(reverse(data))
	if raw.Cmp(fr.Modulus()) >= 0 {
		return fr.Element{}, fmt.Errorf("field payload is not canonical")
	}
	var v fr.Element
	v.SetBigInt(raw)
	return v, nil
}

// EncodeTo writes the literal's binary form.
func EncodeTo(w io.Writer, l Literal) error {
	if _, err := w.Write([]byte{byte(l.kind), byte(l.Mode())}); err != nil {
		return err
	}
	switch l.kind {
	case KindBoolean:
		v := byte(0)
		if l.boolean.Value() {
			v = 1
		}
		_, err := w.Write([]byte{v})
		return err
	case KindField:
		_, err := w.Write(elementLE(l.element.Value()))
		return err
	case KindGroup:
		x := l.group.x.Value()
		y := l.group.y.Value()
		canonical, err := recoverY(x)
		if err != nil {
			return err
		}
		flag := byte(0)
		if !y.Equal(&canonical) {
			flag = 1
		}
		if _, err := w.Write(elementLE(x)); err != nil {
			return err
		}
		_, err = w.Write([]byte{flag})
		return err
	case KindScalar:
		buf := make([]byte, wordBytes)
		l.scalar.FillBytes(buf)
		_, err := w.Write(reverse(buf))
		return err
	case KindString, KindAddress:
		if err := binary.Write(w, binary.LittleEndian, uint32(len(l.text))); err != nil {
			return err
		}
		_, err := io.WriteString(w, l.text)
		return err
	default:
		if _, ok := l.kind.IntegerType(); !ok {
			return fmt.Errorf("cannot encode literal of kind %s", l.kind)
		}
		_, err := w.Write(l.integer.ToBytesLE())
		return err
	}
}

// Encode returns the literal's binary form.
func Encode(l Literal) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodeTo(&buf, l); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads one literal, allocating its wires on the builder at the
// encoded mode. Malformed payloads are plain errors.
func Decode(b *circuit.Builder, r io.Reader) (Literal, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Literal{}, err
	}
	kind := Kind(header[0])
	if _, ok := kindNames[kind]; !ok {
		return Literal{}, fmt.Errorf("unknown literal kind byte %d", header[0])
	}
	mode := circuit.Mode(header[1])
	if mode != circuit.Constant && mode != circuit.Public && mode != circuit.Private {
		return Literal{}, fmt.Errorf("unknown literal mode byte %d", header[1])
	}

	switch kind {
	case KindBoolean:
		var v [1]byte
		if _, err := io.ReadFull(r, v[:]); err != nil {
			return Literal{}, err
		}
		if v[0] > 1 {
			return Literal{}, fmt.Errorf("boolean payload byte %d is not 0 or 1", v[0])
		}
		return NewBoolean(b, v[0] == 1, mode), nil
	case KindField:
		buf := make([]byte, wordBytes)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Literal{}, err
		}
		v, err := elementFromLE(buf)
		if err != nil {
			return Literal{}, err
		}
		return NewField(b, v, mode), nil
	case KindGroup:
		buf := make([]byte, wordBytes+1)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Literal{}, err
		}
		x, err := elementFromLE(buf[:wordBytes])
		if err != nil {
			return Literal{}, err
		}
		y, err := recoverY(x)
		if err != nil {
			return Literal{}, err
		}
		switch buf[wordBytes] {
		case 0:
		case 1:
			y.Neg(&y)
		default:
			return Literal{}, fmt.Errorf("group root byte %d is not 0 or 1", buf[wordBytes])
		}
		return Literal{kind: KindGroup, group: groupWire{
			x: b.AllocElement(mode, x),
			y: b.AllocElement(mode, y),
		}}, nil
	case KindScalar:
		buf := make([]byte, wordBytes)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Literal{}, err
		}
		return NewScalar(new(big.Int).SetBytes(reverse(buf)), mode), nil
	case KindString, KindAddress:
		var n uint32
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return Literal{}, err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Literal{}, err
		}
		if kind == KindAddress {
			return NewAddress(string(buf), mode)
		}
		return NewString(string(buf), mode), nil
	default:
		t, _ := kind.IntegerType()
		buf := make([]byte, t.Width/8)
		if _, err := io.ReadFull(r, buf); err != nil {
			return Literal{}, err
		}
		n, err := integers.FromBytesLE(b, t, buf, mode)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: kind, integer: n}, nil
	}
}
