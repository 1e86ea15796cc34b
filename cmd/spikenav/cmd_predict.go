package main

import (
	"encoding/json"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/spikenav/spikenav/internal/config"
	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/store"
	"github.com/spikenav/spikenav/internal/training"
)

func newPredictCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the action for one sensor snapshot",
		Long: `Run the network on four distance readings (centimeters) and print the
selected action with per-action spike counts.

Weights from the most recent training run are used when one exists;
otherwise the network starts from seeded random weights.

Example:
  spikenav predict --front 100 --left 80 --right 90 --back 120`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			front, _ := cmd.Flags().GetFloat64("front")
			left, _ := cmd.Flags().GetFloat64("left")
			right, _ := cmd.Flags().GetFloat64("right")
			back, _ := cmd.Flags().GetFloat64("back")

			cfg, err := config.Load(configPath(root))
			if err != nil {
				return err
			}

			net := snn.NewNetwork(cfg.Params(), rand.New(rand.NewSource(cfg.Training.Seed)))

			st, err := store.Open(dataDir(root))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			trained := false
			latest, err := st.LatestRun(cmd.Context())
			if err != nil {
				return err
			}
			if latest != nil {
				if err := st.LoadWeights(cmd.Context(), latest.ID, net); err != nil {
					return fmt.Errorf("load weights: %w", err)
				}
				trained = true
			}

			trainer := training.NewTrainer(net, cfg.TrainerConfig())
			readings := models.Readings{front, left, right, back}

			action, err := trainer.Evaluate(readings)
			if err != nil {
				return err
			}
			counts, err := trainer.CountSpikes(readings)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				countMap := make(map[string]int, models.NumActions)
				for _, a := range models.Actions() {
					countMap[a.String()] = counts[a.Index()]
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"action":       action.String(),
					"spike_counts": countMap,
					"trained":      trained,
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Action: %s\n", action)
			for _, a := range models.Actions() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-12s %d spikes\n", a, counts[a.Index()])
			}
			if !trained {
				fmt.Fprintln(cmd.OutOrStdout(), "(untrained network; run 'spikenav train' first)")
			}
			return nil
		},
	}

	cmd.Flags().Float64("front", 0, "Front sensor distance in cm")
	cmd.Flags().Float64("left", 0, "Left sensor distance in cm")
	cmd.Flags().Float64("right", 0, "Right sensor distance in cm")
	cmd.Flags().Float64("back", 0, "Back sensor distance in cm")
	cmd.MarkFlagRequired("front")
	cmd.MarkFlagRequired("left")
	cmd.MarkFlagRequired("right")
	cmd.MarkFlagRequired("back")

	return cmd
}
