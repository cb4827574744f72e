package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	programFile string
	verbose     bool
)

func init() {
	instructionCmd.PersistentFlags().StringVar(&programFile, "program-file", "", "The instruction stream to operate on, in textual form.")
	instructionCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every evaluated instruction.")
}

// readProgram loads the --program-file argument, shared by the commands
// that take a stream.
func readProgram() (string, error) {
	if programFile == "" {
		return "", fmt.Errorf("--program-file is required")
	}
	src, err := os.ReadFile(programFile)
	if err != nil {
		return "", err
	}
	return string(src), nil
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

var instructionCmd = &cobra.Command{
	Use:   "instruction-circuit",
	Short: "Evaluate, cost and prove instruction streams over circuit gadgets",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func main() {
	if err := instructionCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
