package literal

import (
	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/integers"
)

// invalid is the uniform halt for an operation applied to a kind (or kind
// pair) it is not defined on.
func invalid(op string, kinds ...Kind) error {
	if len(kinds) == 2 && kinds[0] != kinds[1] {
		return circuit.Haltf("Invalid '%s' instruction: operand kinds '%s' and '%s' do not match", op, kinds[0], kinds[1])
	}
	return circuit.Haltf("Invalid '%s' instruction", op)
}

// Neg negates a literal. Defined on fields, groups and signed integers;
// anything else halts.
func Neg(b *circuit.Builder, x Literal) (Literal, error) {
	switch x.kind {
	case KindField:
		return Literal{kind: KindField, element: b.ElemNeg(x.element)}, nil
	case KindGroup:
		return Literal{kind: KindGroup, group: groupNeg(b, x.group)}, nil
	default:
		if t, ok := x.kind.IntegerType(); ok && t.Signed {
			n, err := integers.Neg(b, x.integer)
			if err != nil {
				return Literal{}, err
			}
			return Literal{kind: x.kind, integer: n}, nil
		}
		return Literal{}, invalid("neg", x.kind)
	}
}

// Add adds two literals of the same kind. Defined on fields, groups and
// integers.
func Add(b *circuit.Builder, x, y Literal) (Literal, error) {
	if x.kind != y.kind {
		return Literal{}, invalid("add", x.kind, y.kind)
	}
	switch x.kind {
	case KindField:
		return Literal{kind: KindField, element: b.ElemAdd(x.element, y.element)}, nil
	case KindGroup:
		g, err := groupAdd(b, x.group, y.group)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: KindGroup, group: g}, nil
	default:
		if _, ok := x.kind.IntegerType(); ok {
			n, err := integers.Add(b, x.integer, y.integer)
			if err != nil {
				return Literal{}, err
			}
			return Literal{kind: x.kind, integer: n}, nil
		}
		return Literal{}, invalid("add", x.kind)
	}
}

// Sub subtracts y from x. Defined on fields, groups and integers.
func Sub(b *circuit.Builder, x, y Literal) (Literal, error) {
	if x.kind != y.kind {
		return Literal{}, invalid("sub", x.kind, y.kind)
	}
	switch x.kind {
	case KindField:
		return Literal{kind: KindField, element: b.ElemSub(x.element, y.element)}, nil
	case KindGroup:
		g, err := groupAdd(b, x.group, groupNeg(b, y.group))
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: KindGroup, group: g}, nil
	default:
		if _, ok := x.kind.IntegerType(); ok {
			n, err := integers.Sub(b, x.integer, y.integer)
			if err != nil {
				return Literal{}, err
			}
			return Literal{kind: x.kind, integer: n}, nil
		}
		return Literal{}, invalid("sub", x.kind)
	}
}

// Mul multiplies two literals of the same kind. Defined on fields and
// integers.
func Mul(b *circuit.Builder, x, y Literal) (Literal, error) {
	if x.kind != y.kind {
		return Literal{}, invalid("mul", x.kind, y.kind)
	}
	switch x.kind {
	case KindField:
		return Literal{kind: KindField, element: b.ElemMul(x.element, y.element)}, nil
	default:
		if _, ok := x.kind.IntegerType(); ok {
			n, err := integers.Mul(b, x.integer, y.integer)
			if err != nil {
				return Literal{}, err
			}
			return Literal{kind: x.kind, integer: n}, nil
		}
		return Literal{}, invalid("mul", x.kind)
	}
}

// Div divides x by y. Defined on fields (inverse multiplication) and
// integers (truncated division).
func Div(b *circuit.Builder, x, y Literal) (Literal, error) {
	if x.kind != y.kind {
		return Literal{}, invalid("div", x.kind, y.kind)
	}
	switch x.kind {
	case KindField:
		e, err := b.ElemDiv(x.element, y.element)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: KindField, element: e}, nil
	default:
		if _, ok := x.kind.IntegerType(); ok {
			n, err := integers.Div(b, x.integer, y.integer)
			if err != nil {
				return Literal{}, err
			}
			return Literal{kind: x.kind, integer: n}, nil
		}
		return Literal{}, invalid("div", x.kind)
	}
}

// Pow raises an integer base to an integer exponent. The result kind is
// the base's kind; exponents of any integer kind are accepted.
func Pow(b *circuit.Builder, x, e Literal) (Literal, error) {
	if _, ok := x.kind.IntegerType(); !ok {
		return Literal{}, invalid("pow", x.kind)
	}
	if _, ok := e.kind.IntegerType(); !ok {
		return Literal{}, invalid("pow", e.kind)
	}
	n, err := integers.Pow(b, x.integer, e.integer)
	if err != nil {
		return Literal{}, err
	}
	return Literal{kind: x.kind, integer: n}, nil
}

// And is bitwise/logical conjunction on booleans and integers.
func And(b *circuit.Builder, x, y Literal) (Literal, error) {
	if x.kind != y.kind {
		return Literal{}, invalid("and", x.kind, y.kind)
	}
	if x.kind == KindBoolean {
		return Literal{kind: KindBoolean, boolean: b.And(x.boolean, y.boolean)}, nil
	}
	if _, ok := x.kind.IntegerType(); ok {
		n, err := integers.And(b, x.integer, y.integer)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: x.kind, integer: n}, nil
	}
	return Literal{}, invalid("and", x.kind)
}

// Or is bitwise/logical disjunction on booleans and integers.
func Or(b *circuit.Builder, x, y Literal) (Literal, error) {
	if x.kind != y.kind {
		return Literal{}, invalid("or", x.kind, y.kind)
	}
	if x.kind == KindBoolean {
		return Literal{kind: KindBoolean, boolean: b.Or(x.boolean, y.boolean)}, nil
	}
	if _, ok := x.kind.IntegerType(); ok {
		n, err := integers.Or(b, x.integer, y.integer)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: x.kind, integer: n}, nil
	}
	return Literal{}, invalid("or", x.kind)
}

// Xor is bitwise/logical exclusive-or on booleans and integers.
func Xor(b *circuit.Builder, x, y Literal) (Literal, error) {
	if x.kind != y.kind {
		return Literal{}, invalid("xor", x.kind, y.kind)
	}
	if x.kind == KindBoolean {
		return Literal{kind: KindBoolean, boolean: b.Xor(x.boolean, y.boolean)}, nil
	}
	if _, ok := x.kind.IntegerType(); ok {
		n, err := integers.Xor(b, x.integer, y.integer)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: x.kind, integer: n}, nil
	}
	return Literal{}, invalid("xor", x.kind)
}

// Not is bitwise/logical complement on booleans and integers.
func Not(b *circuit.Builder, x Literal) (Literal, error) {
	if x.kind == KindBoolean {
		return Literal{kind: KindBoolean, boolean: b.Not(x.boolean)}, nil
	}
	if _, ok := x.kind.IntegerType(); ok {
		return Literal{kind: x.kind, integer: integers.Not(b, x.integer)}, nil
	}
	return Literal{}, invalid("not", x.kind)
}
