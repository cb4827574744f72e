package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/literal"
	"InstructionCircuit/modules/program"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute an instruction stream and print the register state",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		RunImpl()
	},
}

func init() {
	instructionCmd.AddCommand(runCmd)
}

func RunImpl() {
	log := newLogger()

	src, err := readProgram()
	if err != nil {
		log.Fatal().Err(err).Msg("reading program")
	}

	builder := circuit.NewBuilder()
	stream, err := program.StreamFromSource(builder, src)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing program")
	}
	stream = stream.WithLogger(log)

	if err := stream.Execute(); err != nil {
		if circuit.IsHalt(err) {
			log.Fatal().Err(err).Msg("program halted")
		}
		log.Fatal().Err(err).Msg("execution failed")
	}

	var bound []program.Register
	for _, ins := range stream.Instructions() {
		bound = append(bound, ins.Destination())
	}
	sort.Slice(bound, func(i, j int) bool { return bound[i] < bound[j] })
	for _, r := range bound {
		l, err := stream.Load(r)
		if err != nil {
			log.Fatal().Err(err).Msg("loading register")
		}
		fmt.Printf("%s = %s\n", r, literal.Format(l))
	}

	count := stream.Count()
	fmt.Printf("constants: %d, public: %d, private: %d, constraints: %d\n",
		count.Constants, count.PublicVariables, count.PrivateVariables, count.Constraints)

	if ok, i := builder.Satisfied(); !ok {
		log.Fatal().Int("constraint", i).Msg("constraint system is not satisfied")
	}
}
