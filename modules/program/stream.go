package program

import (
	"github.com/rs/zerolog"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
)

// Stream executes an instruction sequence against one builder and one
// register store in a single forward pass. The first halt poisons the
// stream: execution stops and the partial register state is discarded.
type Stream struct {
	builder      *circuit.Builder
	registers    *Registers
	instructions []Instruction
	halted       error
	log          zerolog.Logger
}

// NewStream wraps instructions for execution on b.
func NewStream(b *circuit.Builder, instructions []Instruction) *Stream {
	return &Stream{
		builder:      b,
		registers:    NewRegisters(),
		instructions: instructions,
		log:          zerolog.Nop(),
	}
}

// StreamFromSource parses src and wraps the result.
func StreamFromSource(b *circuit.Builder, src string) (*Stream, error) {
	instructions, err := ParseProgram(b, src)
	if err != nil {
		return nil, err
	}
	return NewStream(b, instructions), nil
}

// WithLogger attaches a logger for per-instruction progress.
func (s *Stream) WithLogger(log zerolog.Logger) *Stream {
	s.log = log
	return s
}

// Builder returns the underlying circuit builder.
func (s *Stream) Builder() *circuit.Builder { return s.builder }

// Instructions returns the instruction sequence.
func (s *Stream) Instructions() []Instruction {
	out := make([]Instruction, len(s.instructions))
	copy(out, s.instructions)
	return out
}

// Halted returns the halt that poisoned the stream, or nil.
func (s *Stream) Halted() error { return s.halted }

// Execute runs every instruction in order. On the first halt the stream
// records it, clears the register state and returns the halt; register
// reads after a halt are not meaningful.
func (s *Stream) Execute() error {
	if s.halted != nil {
		return s.halted
	}
	for i, ins := range s.instructions {
		before := s.builder.Count()
		out, err := ins.Evaluate(s.builder, s.registers)
		if err != nil {
			s.halted = err
			s.registers = NewRegisters()
			s.log.Error().Int("instruction", i).Str("text", ins.String()).Err(err).Msg("stream halted")
			return err
		}
		s.log.Debug().
			Int("instruction", i).
			Str("text", ins.String()).
			Str("result", literal.Format(out)).
			Str("cost", s.builder.Count().Delta(before).String()).
			Msg("evaluated")
	}
	return nil
}

// Load reads a register after execution.
func (s *Stream) Load(r Register) (literal.Literal, error) {
	if s.halted != nil {
		return literal.Literal{}, s.halted
	}
	return s.registers.Load(r)
}

// Registers exposes the register store.
func (s *Stream) Registers() *Registers { return s.registers }

// Count returns the builder's accumulated circuit count.
func (s *Stream) Count() circuit.CircuitCount {
	return s.builder.Count()
}
