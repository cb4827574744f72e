package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/cost"
	"InstructionCircuit/modules/literal"
	"InstructionCircuit/modules/program"
)

var (
	costOpcode string
	costKind   string
	costModes  []string
)

var costCmd = &cobra.Command{
	Use:   "cost",
	Short: "Predict the circuit cost of one operation",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		CostImpl()
	},
}

func init() {
	instructionCmd.AddCommand(costCmd)
	costCmd.PersistentFlags().StringVar(&costOpcode, "opcode", "", "The operation mnemonic, e.g. add.")
	costCmd.PersistentFlags().StringVar(&costKind, "kind", "", "The operand kind, e.g. u64.")
	costCmd.PersistentFlags().StringSliceVar(&costModes, "modes", nil, "One mode per operand, e.g. constant,private.")

	costCmd.MarkFlagRequired("opcode")
	costCmd.MarkFlagRequired("kind")
	costCmd.MarkFlagRequired("modes")
}

func CostImpl() {
	log := newLogger()

	op, ok := program.OpcodeFromName(costOpcode)
	if !ok {
		log.Fatal().Str("opcode", costOpcode).Msg("unknown opcode")
	}
	kind, ok := literal.KindFromName(costKind)
	if !ok {
		log.Fatal().Str("kind", costKind).Msg("unknown literal kind")
	}
	modes := make([]circuit.Mode, len(costModes))
	for i, s := range costModes {
		mode, err := circuit.ParseMode(s)
		if err != nil {
			log.Fatal().Err(err).Msg("parsing mode")
		}
		modes[i] = mode
	}

	count, err := cost.Count(op, kind, modes...)
	if err != nil {
		log.Fatal().Err(err).Msg("measuring cost")
	}
	fmt.Println(count.String())
}
