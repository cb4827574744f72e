package circuit

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Element is a field-element wire over the builder's scalar field. Field
// negation and addition are linear and therefore free; only products and
// inversions cost variables and constraints.
type Element struct {
	lc    LinearCombination
	value fr.Element
	mode  Mode
}

// Value returns the wire's concrete field value.
func (x Element) Value() fr.Element { return x.value }

// Mode returns the wire's visibility.
func (x Element) Mode() Mode { return x.mode }

// LC returns the wire's linear combination.
func (x Element) LC() LinearCombination { return x.lc }

// ConstantElement creates a constant field wire.
func (b *Builder) ConstantElement(v fr.Element) Element {
	b.noteConstant()
	return Element{lc: lcOfConstant(v), value: v, mode: Constant}
}

// AllocElement allocates a field wire of the given mode. Field witnesses
// carry no range constraint, so allocation enforces nothing.
func (b *Builder) AllocElement(mode Mode, v fr.Element) Element {
	if mode.IsConstant() {
		return b.ConstantElement(v)
	}
	w := b.allocate(mode, v)
	return Element{lc: lcOfVariable(w), value: v, mode: mode}
}

// ElemNeg returns -x. Linear, mode preserved.
func (b *Builder) ElemNeg(x Element) Element {
	var minusOne fr.Element
	minusOne.SetOne().Neg(&minusOne)
	var v fr.Element
	v.Neg(&x.value)
	return Element{lc: lcScale(minusOne, x.lc), value: v, mode: x.mode}
}

// ElemAdd returns x + y. Linear, mode is the join.
func (b *Builder) ElemAdd(x, y Element) Element {
	var v fr.Element
	v.Add(&x.value, &y.value)
	if x.mode.IsConstant() && y.mode.IsConstant() {
		return b.ConstantElement(v)
	}
	return Element{lc: lcAdd(x.lc, y.lc), value: v, mode: Join(x.mode, y.mode)}
}

// ElemSub returns x - y. Linear, mode is the join.
func (b *Builder) ElemSub(x, y Element) Element {
	var v fr.Element
	v.Sub(&x.value, &y.value)
	if x.mode.IsConstant() && y.mode.IsConstant() {
		return b.ConstantElement(v)
	}
	return Element{lc: lcSub(x.lc, y.lc), value: v, mode: Join(x.mode, y.mode)}
}

// ElemMul returns x * y. A constant factor is a linear rescaling; a product
// of two witnesses allocates the result and enforces x * y = z.
func (b *Builder) ElemMul(x, y Element) Element {
	var v fr.Element
	v.Mul(&x.value, &y.value)
	if x.mode.IsConstant() && y.mode.IsConstant() {
		return b.ConstantElement(v)
	}
	if x.mode.IsConstant() {
		return Element{lc: lcScale(x.value, y.lc), value: v, mode: y.mode}
	}
	if y.mode.IsConstant() {
		return Element{lc: lcScale(y.value, x.lc), value: v, mode: x.mode}
	}
	mode := Join(x.mode, y.mode)
	w := b.allocate(mode, v)
	z := lcOfVariable(w)
	b.Enforce(x.lc, y.lc, z)
	return Element{lc: z, value: v, mode: mode}
}

// ElemDiv returns x / y, halting on a zero divisor. A non-constant divisor
// allocates its inverse and enforces y * inv = 1 before the product.
func (b *Builder) ElemDiv(x, y Element) (Element, error) {
	if y.value.IsZero() {
		return Element{}, Haltf("Division by zero in a field operation")
	}
	var inv fr.Element
	inv.Inverse(&y.value)
	if y.mode.IsConstant() {
		return b.ElemMul(x, b.ConstantElement(inv)), nil
	}
	w := b.allocate(y.mode, inv)
	invLC := lcOfVariable(w)
	var one fr.Element
	one.SetOne()
	b.Enforce(y.lc, invLC, lcOfConstant(one))
	return b.ElemMul(x, Element{lc: invLC, value: inv, mode: y.mode}), nil
}
