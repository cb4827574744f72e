package circuit

import "fmt"

// Mode classifies the visibility of a wire: a Constant is known to both
// prover and verifier and costs no constraints, a Public wire is
// witness-bound but revealed, a Private wire is witness-bound and hidden.
type Mode uint8

const (
	Constant Mode = iota
	Public
	Private
)

func (m Mode) String() string {
	switch m {
	case Constant:
		return "constant"
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(m))
	}
}

// ParseMode parses the textual mode suffix used in literal syntax.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "constant":
		return Constant, nil
	case "public":
		return Public, nil
	case "private":
		return Private, nil
	default:
		return Constant, fmt.Errorf("unknown mode %q", s)
	}
}

// Join folds modes under the total order Constant < Public < Private.
// The join of no modes is Constant.
func Join(modes ...Mode) Mode {
	out := Constant
	for _, m := range modes {
		if m > out {
			out = m
		}
	}
	return out
}

// IsConstant reports whether the mode carries no witness.
func (m Mode) IsConstant() bool {
	return m == Constant
}
