package program

import (
	"fmt"
	"strconv"
	"strings"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
)

// tokenize splits an instruction body on whitespace, keeping quoted
// string literals (and their trailing mode suffix) as single tokens.
func tokenize(s string) ([]string, error) {
	var tokens []string
	i := 0
	for i < len(s) {
		switch {
		case s[i] == ' ' || s[i] == '\t':
			i++
		case s[i] == '"':
			j := i + 1
			for j < len(s) && (s[j] != '"' || s[j-1] == '\\') {
				j++
			}
			if j == len(s) {
				return nil, fmt.Errorf("unterminated string in %q", s)
			}
			j++
			for j < len(s) && s[j] != ' ' && s[j] != '\t' {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		default:
			j := i
			for j < len(s) && s[j] != ' ' && s[j] != '\t' {
				j++
			}
			tokens = append(tokens, s[i:j])
			i = j
		}
	}
	return tokens, nil
}

// parseRegister reads an rN register name.
func parseRegister(s string) (Register, error) {
	if len(s) < 2 || s[0] != 'r' {
		return 0, fmt.Errorf("malformed register %q", s)
	}
	n, err := strconv.ParseUint(s[1:], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed register %q", s)
	}
	return Register(n), nil
}

func isRegisterToken(s string) bool {
	_, err := parseRegister(s)
	return err == nil
}

func parseOperand(b *circuit.Builder, s string) (Operand, error) {
	if isRegisterToken(s) {
		r, _ := parseRegister(s)
		return RegisterOperand(r), nil
	}
	l, err := literal.Parse(b, s)
	if err != nil {
		return Operand{}, err
	}
	return LiteralOperand(l), nil
}

// ParseInstruction reads one instruction of the form
//
//	<opcode> <operand>... into rN;
//
// allocating literal operand wires on the builder.
func ParseInstruction(b *circuit.Builder, s string) (Instruction, error) {
	s = strings.TrimSpace(s)
	if !strings.HasSuffix(s, ";") {
		return Instruction{}, fmt.Errorf("instruction %q is not ';'-terminated", s)
	}
	tokens, err := tokenize(strings.TrimSuffix(s, ";"))
	if err != nil {
		return Instruction{}, err
	}
	if len(tokens) < 3 {
		return Instruction{}, fmt.Errorf("malformed instruction %q", s)
	}
	op, ok := OpcodeFromName(tokens[0])
	if !ok {
		return Instruction{}, fmt.Errorf("unknown opcode %q", tokens[0])
	}
	if tokens[len(tokens)-2] != "into" {
		return Instruction{}, fmt.Errorf("instruction %q is missing 'into'", s)
	}
	dest, err := parseRegister(tokens[len(tokens)-1])
	if err != nil {
		return Instruction{}, err
	}
	operands := make([]Operand, 0, len(tokens)-3)
	for _, tok := range tokens[1 : len(tokens)-2] {
		o, err := parseOperand(b, tok)
		if err != nil {
			return Instruction{}, err
		}
		operands = append(operands, o)
	}
	return NewInstruction(op, operands, dest)
}

// ParseProgram reads a sequence of ';'-terminated instructions, one or
// more per line. Blank lines and lines starting with "//" are skipped.
func ParseProgram(b *circuit.Builder, src string) ([]Instruction, error) {
	var out []Instruction
	for lineNo, line := range strings.Split(src, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		for _, stmt := range strings.SplitAfter(line, ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			ins, err := ParseInstruction(b, stmt)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			out = append(out, ins)
		}
	}
	return out, nil
}

// FormatProgram renders instructions one per line.
func FormatProgram(instructions []Instruction) string {
	lines := make([]string, len(instructions))
	for i, ins := range instructions {
		lines[i] = ins.String()
	}
	return strings.Join(lines, "\n")
}
