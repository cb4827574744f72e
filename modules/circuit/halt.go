package circuit

import (
	"errors"
	"fmt"
)

// Halt is the fatal error class of the core. A halt aborts the whole
// instruction stream: it is never caught and retried below the top-level
// driver, and an execution context that produced one must be discarded.
//
// Parse and encode failures are ordinary errors, not halts.
type Halt struct {
	msg string
}

func (h *Halt) Error() string {
	return h.msg
}

// Haltf builds a halt with a plain-text diagnostic.
func Haltf(format string, args ...any) error {
	return &Halt{msg: fmt.Sprintf(format, args...)}
}

// IsHalt reports whether err is (or wraps) a halt.
func IsHalt(err error) bool {
	var h *Halt
	return errors.As(err, &h)
}
