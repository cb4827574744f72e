package main

import (
	"os"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/spf13/cobra"

	"InstructionCircuit/modules/circuit"
	"InstructionCircuit/modules/program"
	"InstructionCircuit/modules/snark"
)

var (
	groth16CRSFile   string
	groth16VKFile    string
	groth16Mode      string
	groth16ProofFile string
)

var groth16Cmd = &cobra.Command{
	Use:   "groth16",
	Short: "Turn an executed instruction stream into a Groth16 proof",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		Groth16Impl()
	},
}

func init() {
	instructionCmd.AddCommand(groth16Cmd)
	groth16Cmd.PersistentFlags().StringVar(&groth16CRSFile, "groth16-crs", "", "The Groth16 CRS file.")
	groth16Cmd.PersistentFlags().StringVar(&groth16VKFile, "groth16-vk", "", "The Groth16 VK file.")
	groth16Cmd.PersistentFlags().StringVar(&groth16Mode, "groth16-mode", "", "The Groth16 work mode - one of prove/verify/setup.")
	groth16Cmd.PersistentFlags().StringVar(&groth16ProofFile, "groth16-proof", "", "The Groth16 proof file.")
}

func Groth16Impl() {
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
	if err := stream.WithLogger(log).Execute(); err != nil {
		log.Fatal().Err(err).Msg("executing program")
	}

	assignment, err := snark.FromBuilder(builder)
	if err != nil {
		log.Fatal().Err(err).Msg("lowering circuit")
	}

	compiled, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, assignment.Blank())
	if err != nil {
		panic(err.Error())
	}

	println("Nb Constraints: ", compiled.GetNbConstraints())
	println("Nb Internal Witnesss: ", compiled.GetNbInternalVariables())
	println("Nb Private Witness: ", compiled.GetNbSecretVariables())
	println("Nb Public Witness:", compiled.GetNbPublicVariables())

	println("Solving witness...")
	witness, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		panic(err.Error())
	}

	println("Checking satisfiability...")
	if err = compiled.IsSolved(witness); err != nil {
		panic("R1CS not satisfied.")
	}
	println("R1CS satisfied.")

	pk := groth16.NewProvingKey(ecc.BN254)
	vk := groth16.NewVerifyingKey(ecc.BN254)
	groth16Proof := groth16.NewProof(ecc.BN254)

	var pkFile *os.File = nil
	var vkFile *os.File = nil
	var proofFile *os.File = nil

	switch groth16Mode {
	case "setup":
		println("Groth16 generating setup from scratch...")
		if pk, vk, err = groth16.Setup(compiled); err != nil {
			panic(err.Error())
		}

		if pkFile, err = os.OpenFile(groth16CRSFile,
			os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			panic(err.Error())
		}
		pk.WriteTo(pkFile)

		if vkFile, err = os.OpenFile(groth16VKFile,
			os.O_WRONLY|os.O_CREATE, 0644); err != nil {
			panic(err.Error())
		}
		vk.WriteTo(vkFile)
	case "prove":
		println("Groth16 reading CRS from file...")
		if pkFile, err = os.OpenFile(groth16CRSFile, os.O_RDONLY, 0444); err != nil {
			panic(err.Error())
		}
		pk.ReadFrom(pkFile)

		groth16Proof, err = groth16.Prove(compiled, pk, witness)
		if err != nil {
			panic("Groth16 fails")
		}

		if proofFile, err = os.OpenFile(groth16ProofFile,
			os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644); err != nil {
			panic(err.Error())
		}
		groth16Proof.WriteTo(proofFile)
	case "verify":
		println("Groth16 reading vk from file...")
		if vkFile, err = os.OpenFile(groth16VKFile, os.O_RDONLY, 0444); err != nil {
			panic(err.Error())
		}
		vk.ReadFrom(vkFile)

		if proofFile, err = os.OpenFile(groth16ProofFile, os.O_RDONLY, 0444); err != nil {
			panic(err.Error())
		}
		groth16Proof.ReadFrom(proofFile)

		publicWitness, err := witness.Public()
		if err != nil {
			panic(err.Error())
		}

		if err = groth16.Verify(groth16Proof, vk, publicWitness); err != nil {
			panic(err.Error())
		}
	}

	println("Done.")
}
