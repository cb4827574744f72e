package circuit

import "github.com/consensys/gnark-crypto/ecc/bn254/fr"

// Bool is a boolean wire: a linear combination constrained (or known) to
// evaluate to 0 or 1, its concrete value, and its visibility mode. The
// value is always available because the builder synthesizes with the full
// witness in hand.
type Bool struct {
	lc    LinearCombination
	value bool
	mode  Mode
}

func frOfBool(v bool) fr.Element {
	var e fr.Element
	if v {
		e.SetOne()
	}
	return e
}

// Value returns the wire's concrete boolean value.
func (x Bool) Value() bool { return x.value }

// Mode returns the wire's visibility.
func (x Bool) Mode() Mode { return x.mode }

// LC returns the wire's linear combination.
func (x Bool) LC() LinearCombination { return x.lc }

// Wire returns the single underlying variable when the wire is exactly one
// freshly allocated variable, as produced by AllocBool and the binary gates.
func (x Bool) Wire() (Variable, bool) {
	var one fr.Element
	one.SetOne()
	if len(x.lc) == 1 && x.lc[0].Var != oneVariable && x.lc[0].Coeff.Equal(&one) {
		return x.lc[0].Var, true
	}
	return 0, false
}

// ConstantBool creates a constant boolean wire. It allocates no variable
// and enforces nothing.
func (b *Builder) ConstantBool(v bool) Bool {
	b.noteConstant()
	return Bool{lc: lcOfConstant(frOfBool(v)), value: v, mode: Constant}
}

// AllocBool allocates a boolean wire of the given mode. Non-constant modes
// allocate a witness variable and enforce booleanity, x * (x - 1) = 0.
func (b *Builder) AllocBool(mode Mode, v bool) Bool {
	if mode.IsConstant() {
		return b.ConstantBool(v)
	}
	w := b.allocate(mode, frOfBool(v))
	lc := lcOfVariable(w)
	var one fr.Element
	one.SetOne()
	b.Enforce(lc, lcSub(lc, lcOfConstant(one)), nil)
	return Bool{lc: lc, value: v, mode: mode}
}

// Not returns the complement 1 - x. Purely linear: no variable, no
// constraint, the input mode is preserved.
func (b *Builder) Not(x Bool) Bool {
	var one fr.Element
	one.SetOne()
	return Bool{
		lc:    lcSub(lcOfConstant(one), x.lc),
		value: !x.value,
		mode:  x.mode,
	}
}

// And returns x AND y as x * y. The gate folds only when both operands
// are constant; a lone constant operand enters the constraint as a
// coefficient of the one-wire, so the emitted count is a function of the
// operand modes alone, never of a constant's value.
func (b *Builder) And(x, y Bool) Bool {
	if x.mode.IsConstant() && y.mode.IsConstant() {
		return b.ConstantBool(x.value && y.value)
	}
	mode := Join(x.mode, y.mode)
	v := x.value && y.value
	w := b.allocate(mode, frOfBool(v))
	z := lcOfVariable(w)
	b.Enforce(x.lc, y.lc, z)
	return Bool{lc: z, value: v, mode: mode}
}

// Or returns x OR y as x + y - x*y. Folds only when both operands are
// constant.
func (b *Builder) Or(x, y Bool) Bool {
	if x.mode.IsConstant() && y.mode.IsConstant() {
		return b.ConstantBool(x.value || y.value)
	}
	mode := Join(x.mode, y.mode)
	v := x.value || y.value
	w := b.allocate(mode, frOfBool(v))
	z := lcOfVariable(w)
	// x*y = x + y - z
	b.Enforce(x.lc, y.lc, lcSub(lcAdd(x.lc, y.lc), z))
	return Bool{lc: z, value: v, mode: mode}
}

// Xor returns x XOR y as x + y - 2*x*y. Folds only when both operands are
// constant.
func (b *Builder) Xor(x, y Bool) Bool {
	if x.mode.IsConstant() && y.mode.IsConstant() {
		return b.ConstantBool(x.value != y.value)
	}
	mode := Join(x.mode, y.mode)
	v := x.value != y.value
	w := b.allocate(mode, frOfBool(v))
	z := lcOfVariable(w)
	var two fr.Element
	two.SetUint64(2)
	// (2x)*y = x + y - z
	b.Enforce(lcScale(two, x.lc), y.lc, lcSub(lcAdd(x.lc, y.lc), z))
	return Bool{lc: z, value: v, mode: mode}
}

// Select returns cond ? x : y as y + cond*(x - y). Folds only when the
// condition and both branches are constant.
func (b *Builder) Select(cond, x, y Bool) Bool {
	if cond.mode.IsConstant() && x.mode.IsConstant() && y.mode.IsConstant() {
		if cond.value {
			return b.ConstantBool(x.value)
		}
		return b.ConstantBool(y.value)
	}
	mode := Join(cond.mode, x.mode, y.mode)
	v := y.value
	if cond.value {
		v = x.value
	}
	w := b.allocate(mode, frOfBool(v))
	z := lcOfVariable(w)
	// cond*(x - y) = z - y
	b.Enforce(cond.lc, lcSub(x.lc, y.lc), lcSub(z, y.lc))
	return Bool{lc: z, value: v, mode: mode}
}

// AssertFalse enforces x = 0. The caller checks the concrete value first
// and halts with its own diagnostic, so a constant true here is an internal
// inconsistency.
func (b *Builder) AssertFalse(x Bool) error {
	if x.mode.IsConstant() {
		if x.value {
			return Haltf("Constant assertion failed")
		}
		return nil
	}
	var one fr.Element
	one.SetOne()
	b.Enforce(x.lc, lcOfConstant(one), nil)
	return nil
}

// AssertTrue enforces x = 1.
func (b *Builder) AssertTrue(x Bool) error {
	return b.AssertFalse(b.Not(x))
}
