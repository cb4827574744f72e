package literal

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"InstructionCircuit/modules/circuit"
)

// splitMode strips an optional trailing ".constant"/".public"/".private"
// suffix. Absent suffixes default to constant.
func splitMode(s string) (string, circuit.Mode) {
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		if mode, err := circuit.ParseMode(s[i+1:]); err == nil {
			return s[:i], mode
		}
	}
	return s, circuit.Constant
}

// Parse reads a literal from its textual form, <value><suffix> with an
// optional mode suffix, allocating its wires on the builder. Failures are
// parse errors, never halts.
func Parse(b *circuit.Builder, s string) (Literal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Literal{}, fmt.Errorf("empty literal")
	}

	// Strings first: their bodies may contain dots.
	if s[0] == '"' {
		end := strings.LastIndexByte(s, '"')
		if end == 0 {
			return Literal{}, fmt.Errorf("unterminated string literal %s", s)
		}
		body, err := strconv.Unquote(s[:end+1])
		if err != nil {
			return Literal{}, fmt.Errorf("malformed string literal %s: %w", s, err)
		}
		mode := circuit.Constant
		if rest := s[end+1:]; rest != "" {
			if !strings.HasPrefix(rest, ".") {
				return Literal{}, fmt.Errorf("malformed string literal %s", s)
			}
			if mode, err = circuit.ParseMode(rest[1:]); err != nil {
				return Literal{}, err
			}
		}
		return NewString(body, mode), nil
	}

	body, mode := splitMode(s)
	switch {
	case body == "true":
		return NewBoolean(b, true, mode), nil
	case body == "false":
		return NewBoolean(b, false, mode), nil
	case strings.HasPrefix(body, addressPrefix):
		return NewAddress(body, mode)
	}

	// Numeric forms: optional sign, digits, kind suffix.
	digitsEnd := 0
	if body[0] == '-' {
		digitsEnd = 1
	}
	for digitsEnd < len(body) && body[digitsEnd] >= '0' && body[digitsEnd] <= '9' {
		digitsEnd++
	}
	if digitsEnd == 0 || (body[0] == '-' && digitsEnd == 1) {
		return Literal{}, fmt.Errorf("malformed literal %q", s)
	}
	value, ok := new(big.Int).SetString(body[:digitsEnd], 10)
	if !ok {
		return Literal{}, fmt.Errorf("malformed literal %q", s)
	}
	suffix := body[digitsEnd:]
	kind, ok := KindFromName(suffix)
	if !ok {
		return Literal{}, fmt.Errorf("unknown literal suffix %q in %q", suffix, s)
	}

	switch kind {
	case KindField:
		var v fr.Element
		v.SetBigInt(new(big.Int).Mod(value, fr.Modulus()))
		return NewField(b, v, mode), nil
	case KindGroup:
		var x fr.Element
		x.SetBigInt(new(big.Int).Mod(value, fr.Modulus()))
		y, err := recoverY(x)
		if err != nil {
			return Literal{}, err
		}
		return Literal{kind: KindGroup, group: groupWire{
			x: b.AllocElement(mode, x),
			y: b.AllocElement(mode, y),
		}}, nil
	case KindScalar:
		return NewScalar(value, mode), nil
	default:
		t, ok := kind.IntegerType()
		if !ok {
			return Literal{}, fmt.Errorf("suffix %q does not name a numeric literal kind", suffix)
		}
		return NewInteger(b, t, value, mode)
	}
}

// Format renders the literal's canonical textual form, mode suffix
// included. Parse(Format(l)) reproduces l for parse-originated literals;
// group literals print their x-coordinate, as the original system does.
func Format(l Literal) string {
	mode := l.Mode()
	switch l.kind {
	case KindBoolean:
		return fmt.Sprintf("%t.%s", l.boolean.Value(), mode)
	case KindField:
		v := l.element.Value()
		return fmt.Sprintf("%sfield.%s", v.String(), mode)
	case KindGroup:
		v := l.group.x.Value()
		return fmt.Sprintf("%sgroup.%s", v.String(), mode)
	case KindScalar:
		return fmt.Sprintf("%sscalar.%s", l.scalar, mode)
	case KindString:
		return fmt.Sprintf("%s.%s", strconv.Quote(l.text), mode)
	case KindAddress:
		return fmt.Sprintf("%s.%s", l.text, mode)
	default:
		return fmt.Sprintf("%s.%s", l.integer, mode)
	}
}
