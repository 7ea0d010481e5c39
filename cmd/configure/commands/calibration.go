package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AuriPersonalAssist/auri-flow/internal/calibration"
)

// NewCalibrationCmd creates the calibration command group
func NewCalibrationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calibration",
		Short: "Inspect calibration tables",
	}

	cmd.AddCommand(newCalibrationShowCmd())
	cmd.AddCommand(newCalibrationCheckCmd())
	return cmd
}

func newCalibrationShowCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective calibration as YAML",
		Long:  "Print the built-in defaults merged with an optional override file, as the server would load them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cal, err := calibration.Load(file)
			if err != nil {
				return fmt.Errorf("failed to load calibration: %w", err)
			}

			out, err := calibration.Dump(cal)
			if err != nil {
				return fmt.Errorf("failed to render calibration: %w", err)
			}

			cmd.Print(string(out))
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Calibration override file (defaults only when empty)")
	return cmd
}

func newCalibrationCheckCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a calibration override file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				return fmt.Errorf("--file is required")
			}

			if _, err := calibration.Load(file); err != nil {
				return fmt.Errorf("calibration invalid: %w", err)
			}

			cmd.Printf("%s: OK\n", file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Calibration override file to validate")
	return cmd
}
