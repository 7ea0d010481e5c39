package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AuriPersonalAssist/auri-flow/cmd/configure/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "auriflow-configure",
		Short: "Configuration tool for the AuriFlow API",
		Long:  "CLI tool for inspecting calibration tables and scoring task batches offline",
	}

	rootCmd.AddCommand(commands.NewCalibrationCmd())
	rootCmd.AddCommand(commands.NewScoreCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
