package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
)

var tuningCmd = &cobra.Command{
	Use:   "tuning",
	Short: "Inspect tuning documents",
}

var tuningInitForce bool

var tuningInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default tuning document (stdout when no path)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultTuningYAML)
			return err
		}
		flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
		if tuningInitForce {
			flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		f, err := os.OpenFile(args[0], flags, 0o644)
		if err != nil {
			return fmt.Errorf("write tuning: %w", err)
		}
		defer f.Close()
		_, err = f.WriteString(config.DefaultTuningYAML)
		return err
	},
}

var tuningCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Validate a tuning file and print the effective values",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		t, err := config.ParseTuning(data)
		if err != nil {
			return err
		}
		out, err := t.Marshal()
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

func init() {
	tuningInitCmd.Flags().BoolVarP(&tuningInitForce, "force", "f", false, "Overwrite an existing file")
	tuningCmd.AddCommand(tuningInitCmd, tuningCheckCmd)
	rootCmd.AddCommand(tuningCmd)
}
