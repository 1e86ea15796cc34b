package main

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/spikenav/spikenav/internal/config"
	"github.com/spikenav/spikenav/internal/dataset"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic training dataset",
		Long: `Generate labelled sensor samples from the rule-based avoidance policy
and write them as CSV (front,left,right,back,action).

Example:
  spikenav generate --count 1000 --output sensors.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			count, _ := cmd.Flags().GetInt("count")
			output, _ := cmd.Flags().GetString("output")
			seed, _ := cmd.Flags().GetInt64("seed")

			cfg, err := config.Load(configPath(root))
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("seed") {
				seed = cfg.Training.Seed
			}
			if count <= 0 {
				return fmt.Errorf("count must be positive, got %d", count)
			}

			rng := rand.New(rand.NewSource(seed))
			samples := dataset.Generate(count, rng)

			if output == "" {
				return dataset.Write(cmd.OutOrStdout(), samples)
			}
			if err := dataset.Save(output, samples); err != nil {
				return fmt.Errorf("save dataset: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"samples": count,
					"seed":    seed,
					"path":    output,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d samples to %s (seed %d)\n", count, output, seed)
			return nil
		},
	}

	cmd.Flags().Int("count", 1000, "Number of samples to generate")
	cmd.Flags().StringP("output", "o", "", "Output CSV path (stdout when omitted)")
	cmd.Flags().Int64("seed", 0, "Random seed (defaults to the configured seed)")

	return cmd
}
