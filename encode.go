package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/program"
)

var binaryFile string

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Encode a textual instruction stream into its binary form",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		EncodeImpl()
	},
}

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Decode a binary instruction stream back into text",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		DecodeImpl()
	},
}

func init() {
	instructionCmd.AddCommand(encodeCmd)
	instructionCmd.AddCommand(decodeCmd)
	encodeCmd.PersistentFlags().StringVar(&binaryFile, "binary-file", "", "The binary output file.")
	decodeCmd.PersistentFlags().StringVar(&binaryFile, "binary-file", "", "The binary input file.")

	encodeCmd.MarkFlagRequired("binary-file")
	decodeCmd.MarkFlagRequired("binary-file")
}

func EncodeImpl() {
	log := newLogger()

	src, err := readProgram()
	if err != nil {
		log.Fatal().Err(err).Msg("reading program")
	}
	builder := circuit.NewBuilder()
	instructions, err := program.ParseProgram(builder, src)
	if err != nil {
		log.Fatal().Err(err).Msg("parsing program")
	}
	data, err := program.EncodeProgram(instructions)
	if err != nil {
		log.Fatal().Err(err).Msg("encoding program")
	}
	if err := os.WriteFile(binaryFile, data, 0644); err != nil {
		log.Fatal().Err(err).Msg("writing binary")
	}
	log.Info().Int("instructions", len(instructions)).Int("bytes", len(data)).Msg("encoded")
}

func DecodeImpl() {
	log := newLogger()

	data, err := os.ReadFile(binaryFile)
	if err != nil {
		log.Fatal().Err(err).Msg("reading binary")
	}
	builder := circuit.NewBuilder()
	instructions, err := program.DecodeProgram(builder, bytes.NewReader(data))
	if err != nil {
		log.Fatal().Err(err).Msg("decoding program")
	}
	fmt.Println(program.FormatProgram(instructions))
}
