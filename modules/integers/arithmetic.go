package integers

import (
	"math/big"

	"InstructionCircuit/modules/circuit"
)

func sameType(op string, x, y Int) error {
	if x.typ != y.typ {
		return circuit.Haltf("Invalid '%s' instruction: operand types %s and %s do not match", op, x.typ, y.typ)
	}
	return nil
}

// nativeCheck reconciles a gadget result against the native computation.
// The two paths are required to agree whenever neither halts; a divergence
// is itself a halt.
func nativeCheck(op string, res Int, want *big.Int) error {
	if res.value.Cmp(want) != 0 {
		return circuit.Haltf("Constrained '%s' on %s diverged from the native result", op, res.typ)
	}
	return nil
}

func zerosBits(b *circuit.Builder, n uint) []circuit.Bool {
	out := make([]circuit.Bool, n)
	for i := range out {
		out[i] = b.ConstantBool(false)
	}
	return out
}

// extendBits widens x to the given bit count, sign-extending signed types
// and zero-padding unsigned ones. Reused sign wires cost nothing.
func extendBits(b *circuit.Builder, x Int, to uint) []circuit.Bool {
	out := make([]circuit.Bool, to)
	copy(out, x.bits)
	pad := b.ConstantBool(false)
	if x.typ.Signed {
		pad = x.bits[x.typ.Width-1]
	}
	for i := x.typ.Width; i < to; i++ {
		out[i] = pad
	}
	return out
}

// rippleAdd is a full-adder chain from the least-significant wire upward.
// The carry-out terms a*b and carry*(a XOR b) are disjoint, so OR joins
// them exactly.
func rippleAdd(b *circuit.Builder, x, y []circuit.Bool, carryIn circuit.Bool) ([]circuit.Bool, circuit.Bool) {
	sum := make([]circuit.Bool, len(x))
	carry := carryIn
	for i := range x {
		axb := b.Xor(x[i], y[i])
		sum[i] = b.Xor(axb, carry)
		ab := b.And(x[i], y[i])
		cab := b.And(carry, axb)
		carry = b.Or(ab, cab)
	}
	return sum, carry
}

// subBorrow computes x - y with a borrow chain. The borrow-out terms
// (NOT x)*y and borrow*(NOT (x XOR y)) are disjoint.
func subBorrow(b *circuit.Builder, x, y []circuit.Bool) ([]circuit.Bool, circuit.Bool) {
	diff := make([]circuit.Bool, len(x))
	borrow := b.ConstantBool(false)
	for i := range x {
		xy := b.Xor(x[i], y[i])
		diff[i] = b.Xor(xy, borrow)
		t1 := b.And(b.Not(x[i]), y[i])
		t2 := b.And(borrow, b.Not(xy))
		borrow = b.Or(t1, t2)
	}
	return diff, borrow
}

func selectBits(b *circuit.Builder, cond circuit.Bool, x, y []circuit.Bool) []circuit.Bool {
	out := make([]circuit.Bool, len(x))
	for i := range x {
		out[i] = b.Select(cond, x[i], y[i])
	}
	return out
}

func selectInt(b *circuit.Builder, cond circuit.Bool, x, y Int) Int {
	return fromBits(x.typ, selectBits(b, cond, x.bits, y.bits))
}

// condNegate returns cond ? (two's-complement negation of bits) : bits,
// wrapping modulo 2^len.
func condNegate(b *circuit.Builder, cond circuit.Bool, bits []circuit.Bool) []circuit.Bool {
	inverted := make([]circuit.Bool, len(bits))
	for i := range bits {
		inverted[i] = b.Not(bits[i])
	}
	neg, _ := rippleAdd(b, inverted, zerosBits(b, uint(len(bits))), b.ConstantBool(true))
	return selectBits(b, cond, neg, bits)
}

// Neg returns -x by two's complement: bitwise complement plus one. Negating
// the minimum signed value overflows the width and halts; unsigned negation
// is undefined and always halts.
func Neg(b *circuit.Builder, x Int) (Int, error) {
	if !x.typ.Signed {
		return Int{}, circuit.Haltf("Negation is undefined on %s values", x.typ)
	}
	inverted := make([]circuit.Bool, len(x.bits))
	for i := range x.bits {
		inverted[i] = b.Not(x.bits[i])
	}
	one, err := New(b, x.typ, big.NewInt(1), circuit.Constant)
	if err != nil {
		return Int{}, err
	}
	return Add(b, fromBits(x.typ, inverted), one)
}

// Add returns x + y, halting when the mathematical sum is not
// representable. Unsigned overflow is the final carry-out; signed overflow
// is a sign agreement of the inputs that the sum does not share.
func Add(b *circuit.Builder, x, y Int) (Int, error) {
	if err := sameType("add", x, y); err != nil {
		return Int{}, err
	}
	t := x.typ
	sum, carry := rippleAdd(b, x.bits, y.bits, b.ConstantBool(false))
	var overflow circuit.Bool
	if t.Signed {
		same := b.Not(b.Xor(x.bits[t.Width-1], y.bits[t.Width-1]))
		diff := b.Xor(x.bits[t.Width-1], sum[t.Width-1])
		overflow = b.And(same, diff)
	} else {
		overflow = carry
	}
	if overflow.Value() {
		return Int{}, circuit.Haltf("Integer overflow on addition of two %s values", t)
	}
	if err := b.AssertFalse(overflow); err != nil {
		return Int{}, err
	}
	res := fromBits(t, sum)
	return res, nativeCheck("add", res, new(big.Int).Add(x.value, y.value))
}

// Sub returns x - y. For signed types it is add(x, neg(y)) and inherits
// the negation halt when y is the minimum representable value; for
// unsigned types underflow is a missing carry-out of x + NOT(y) + 1.
func Sub(b *circuit.Builder, x, y Int) (Int, error) {
	if err := sameType("sub", x, y); err != nil {
		return Int{}, err
	}
	t := x.typ
	if t.Signed {
		negY, err := Neg(b, y)
		if err != nil {
			return Int{}, err
		}
		return Add(b, x, negY)
	}
	inverted := make([]circuit.Bool, len(y.bits))
	for i := range y.bits {
		inverted[i] = b.Not(y.bits[i])
	}
	diff, carry := rippleAdd(b, x.bits, inverted, b.ConstantBool(true))
	if !carry.Value() {
		return Int{}, circuit.Haltf("Integer underflow on subtraction of two %s values", t)
	}
	if err := b.AssertTrue(carry); err != nil {
		return Int{}, err
	}
	res := fromBits(t, diff)
	return res, nativeCheck("sub", res, new(big.Int).Sub(x.value, y.value))
}

// mulWrapped multiplies by shift-and-add into a double-width accumulator
// and truncates to N bits, returning the low half and a flag wire that is
// set when truncation lost information: high bits that differ from zero
// (unsigned) or from the result sign (signed).
func mulWrapped(b *circuit.Builder, x, y Int) (Int, circuit.Bool) {
	t := x.typ
	w2 := 2 * t.Width
	xe := extendBits(b, x, w2)
	ye := extendBits(b, y, w2)
	acc := zerosBits(b, w2)
	for i := uint(0); i < w2; i++ {
		row := make([]circuit.Bool, w2)
		for k := uint(0); k < i; k++ {
			row[k] = b.ConstantBool(false)
		}
		for k := i; k < w2; k++ {
			row[k] = b.And(xe[k-i], ye[i])
		}
		acc, _ = rippleAdd(b, acc, row, b.ConstantBool(false))
	}
	low := fromBits(t, acc[:t.Width])
	expect := b.ConstantBool(false)
	if t.Signed {
		expect = acc[t.Width-1]
	}
	flag := b.ConstantBool(false)
	for k := t.Width; k < w2; k++ {
		flag = b.Or(flag, b.Xor(acc[k], expect))
	}
	return low, flag
}

// Mul returns x * y, halting when the product is not representable in the
// type's width.
func Mul(b *circuit.Builder, x, y Int) (Int, error) {
	if err := sameType("mul", x, y); err != nil {
		return Int{}, err
	}
	low, overflow := mulWrapped(b, x, y)
	if overflow.Value() {
		return Int{}, circuit.Haltf("Integer overflow on multiplication of two %s values", x.typ)
	}
	if err := b.AssertFalse(overflow); err != nil {
		return Int{}, err
	}
	return low, nativeCheck("mul", low, new(big.Int).Mul(x.value, y.value))
}

// udivBits is restoring long division over equal-length unsigned bit
// slices: one shift-compare-subtract step per bit, most significant first.
func udivBits(b *circuit.Builder, n, d []circuit.Bool) (q, r []circuit.Bool) {
	m := len(n)
	dExt := make([]circuit.Bool, m+1)
	copy(dExt, d)
	dExt[m] = b.ConstantBool(false)
	rem := zerosBits(b, uint(m+1))
	q = make([]circuit.Bool, m)
	for i := m - 1; i >= 0; i-- {
		shifted := make([]circuit.Bool, m+1)
		shifted[0] = n[i]
		copy(shifted[1:], rem[:m])
		diff, borrow := subBorrow(b, shifted, dExt)
		ge := b.Not(borrow)
		q[i] = ge
		rem = selectBits(b, ge, diff, shifted)
	}
	return q, rem[:m]
}

// Div returns the quotient of x / y, truncated toward zero.
func Div(b *circuit.Builder, x, y Int) (Int, error) {
	q, _, err := DivMod(b, x, y)
	return q, err
}

// DivMod returns quotient and remainder of x / y, truncated toward zero.
// Halts on a zero divisor and on the sole signed edge case where the
// quotient is not representable, minimum value divided by -1. The signed
// path divides magnitudes widened by one bit, so that the minimum value's
// magnitude is representable, then restores the signs.
func DivMod(b *circuit.Builder, x, y Int) (Int, Int, error) {
	if err := sameType("div", x, y); err != nil {
		return Int{}, Int{}, err
	}
	t := x.typ
	if y.value.Sign() == 0 {
		return Int{}, Int{}, circuit.Haltf("Division by zero on %s values", t)
	}
	nonzero := b.ConstantBool(false)
	for _, bit := range y.bits {
		nonzero = b.Or(nonzero, bit)
	}
	if err := b.AssertTrue(nonzero); err != nil {
		return Int{}, Int{}, err
	}

	if !t.Signed {
		qBits, rBits := udivBits(b, x.bits, y.bits)
		q := fromBits(t, qBits)
		r := fromBits(t, rBits)
		if err := nativeCheck("div", q, new(big.Int).Quo(x.value, y.value)); err != nil {
			return Int{}, Int{}, err
		}
		return q, r, nativeCheck("div", r, new(big.Int).Rem(x.value, y.value))
	}

	xSign := x.bits[t.Width-1]
	ySign := y.bits[t.Width-1]
	wide := t.Width + 1
	xMag := condNegate(b, xSign, extendBits(b, x, wide))
	yMag := condNegate(b, ySign, extendBits(b, y, wide))
	qMag, rMag := udivBits(b, xMag, yMag)

	qSign := b.Xor(xSign, ySign)
	qWide := condNegate(b, qSign, qMag)
	rWide := condNegate(b, xSign, rMag)

	// The quotient fits the width iff its widened sign bit agrees with its
	// top retained bit; only MIN / -1 violates this.
	misfit := b.Xor(qWide[t.Width], qWide[t.Width-1])
	if misfit.Value() {
		return Int{}, Int{}, circuit.Haltf("Integer overflow on division of two %s values", t)
	}
	if err := b.AssertFalse(misfit); err != nil {
		return Int{}, Int{}, err
	}

	q := fromBits(t, qWide[:t.Width])
	r := fromBits(t, rWide[:t.Width])
	if err := nativeCheck("div", q, new(big.Int).Quo(x.value, y.value)); err != nil {
		return Int{}, Int{}, err
	}
	return q, r, nativeCheck("div", r, new(big.Int).Rem(x.value, y.value))
}

// Pow raises x to the exponent e by square-and-multiply over e's bits. A
// negative exponent halts. Squarings are wrapped; an overflow only halts
// when the affected product is actually selected by an exponent bit, so
// the halt condition is exactly "x^e is not representable", on both the
// constant and the witness path.
func Pow(b *circuit.Builder, x, e Int) (Int, error) {
	t := x.typ
	expBits := e.bits
	if e.typ.Signed {
		if e.value.Sign() < 0 {
			return Int{}, circuit.Haltf("Exponentiation by a negative %s exponent", e.typ)
		}
		if err := b.AssertFalse(e.bits[e.typ.Width-1]); err != nil {
			return Int{}, err
		}
		expBits = e.bits[:e.typ.Width-1]
	}
	n := len(expBits)

	// suffix[i] is set when any exponent bit at index >= i is set.
	suffix := make([]circuit.Bool, n+1)
	suffix[n] = b.ConstantBool(false)
	for i := n - 1; i >= 0; i-- {
		suffix[i] = b.Or(expBits[i], suffix[i+1])
	}

	result, err := New(b, t, big.NewInt(1), circuit.Constant)
	if err != nil {
		return Int{}, err
	}
	base := x
	for i := 0; i < n; i++ {
		product, overflow := mulWrapped(b, result, base)
		bad := b.And(expBits[i], overflow)
		if bad.Value() {
			return Int{}, circuit.Haltf("Integer overflow on exponentiation of %s values", t)
		}
		if err := b.AssertFalse(bad); err != nil {
			return Int{}, err
		}
		result = selectInt(b, expBits[i], product, result)

		if i+1 < n {
			square, sqOverflow := mulWrapped(b, base, base)
			badSquare := b.And(sqOverflow, suffix[i+1])
			if badSquare.Value() {
				return Int{}, circuit.Haltf("Integer overflow on exponentiation of %s values", t)
			}
			if err := b.AssertFalse(badSquare); err != nil {
				return Int{}, err
			}
			base = square
		}
	}
	return result, nativeCheck("pow", result, new(big.Int).Exp(x.value, e.value, nil))
}

// And returns the bitwise conjunction of two same-typed integers.
func And(b *circuit.Builder, x, y Int) (Int, error) {
	if err := sameType("and", x, y); err != nil {
		return Int{}, err
	}
	out := make([]circuit.Bool, len(x.bits))
	for i := range x.bits {
		out[i] = b.And(x.bits[i], y.bits[i])
	}
	return fromBits(x.typ, out), nil
}

// Or returns the bitwise disjunction of two same-typed integers.
func Or(b *circuit.Builder, x, y Int) (Int, error) {
	if err := sameType("or", x, y); err != nil {
		return Int{}, err
	}
	out := make([]circuit.Bool, len(x.bits))
	for i := range x.bits {
		out[i] = b.Or(x.bits[i], y.bits[i])
	}
	return fromBits(x.typ, out), nil
}

// Xor returns the bitwise exclusive-or of two same-typed integers.
func Xor(b *circuit.Builder, x, y Int) (Int, error) {
	if err := sameType("xor", x, y); err != nil {
		return Int{}, err
	}
	out := make([]circuit.Bool, len(x.bits))
	for i := range x.bits {
		out[i] = b.Xor(x.bits[i], y.bits[i])
	}
	return fromBits(x.typ, out), nil
}

// Not returns the bitwise complement. Purely linear: no constraints.
func Not(b *circuit.Builder, x Int) Int {
	out := make([]circuit.Bool, len(x.bits))
	for i := range x.bits {
		out[i] = b.Not(x.bits[i])
	}
	return fromBits(x.typ, out)
}
