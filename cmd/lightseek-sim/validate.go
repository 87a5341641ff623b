package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"lightseek-sim/internal/config"
)

var (
	valConfigPath string
	valSchemaPath string
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a simulation configuration",
	Long:  "validate checks a configuration file against the CUE schema and the semantic rules without running anything.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(valConfigPath, valSchemaPath)
		if err != nil {
			return err
		}
		fmt.Printf("ok: %.0fx%.0f arena, %d obstacles, seed %d\n",
			cfg.Arena.Width, cfg.Arena.Height, cfg.Obstacles.Count, cfg.Seed)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&valConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	validateCmd.Flags().StringVar(&valSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file")
}
