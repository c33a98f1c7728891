package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/DoyleJ11/ball-contest-support/internal/config"
)

var tuningFile string

var rootCmd = &cobra.Command{
	Use:          "contestsim",
	Short:        "Replay ball contest scenarios headless",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&tuningFile, "tuning", "t", "", "Tuning YAML file (defaults when empty)")
}

func loadTuning() (config.Tuning, error) {
	t, err := config.LoadTuning(tuningFile)
	if err != nil {
		return config.Tuning{}, fmt.Errorf("load tuning: %w", err)
	}
	return t, nil
}
