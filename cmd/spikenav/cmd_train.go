package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/spikenav/spikenav/internal/config"
	"github.com/spikenav/spikenav/internal/dataset"
	"github.com/spikenav/spikenav/internal/logging"
	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/store"
	"github.com/spikenav/spikenav/internal/training"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train the network and persist the run",
		Long: `Run the full training schedule: build a freshly-seeded network, train it
over the dataset for the configured number of epochs, and save the run
(metrics plus trained weights) to .spikenav/spikenav.db.

Without --data, a synthetic dataset is generated from the rule-based
avoidance policy.

Example:
  spikenav train --epochs 50
  spikenav train --data sensors.csv --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			dataPath, _ := cmd.Flags().GetString("data")
			epochs, _ := cmd.Flags().GetInt("epochs")
			seed, _ := cmd.Flags().GetInt64("seed")

			cfg, err := config.Load(configPath(root))
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("epochs") {
				cfg.Training.Epochs = epochs
			}
			if cmd.Flags().Changed("seed") {
				cfg.Training.Seed = seed
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := logging.NewLogger(cfg.Logging.Level, os.Stderr)
			epochLog := logging.NewEpochLogger(dataDir(root), cfg.Logging.Level)
			defer epochLog.Close()

			rng := rand.New(rand.NewSource(cfg.Training.Seed))

			var samples []models.TrainingSample
			if dataPath != "" {
				samples, err = dataset.Load(dataPath)
				if err != nil {
					return fmt.Errorf("load dataset: %w", err)
				}
			} else {
				samples = dataset.Generate(cfg.Training.SyntheticSamples, rng)
			}

			train, test, err := dataset.Split(samples, cfg.Training.TestFraction, rng)
			if err != nil {
				return err
			}

			net := snn.NewNetwork(cfg.Params(), rng)
			trainer := training.NewTrainer(net, cfg.TrainerConfig())
			loop := training.NewLoop(trainer, rng, logger, epochLog)

			started := time.Now()
			history, err := loop.Run(cmd.Context(), train, test, cfg.LoopConfig())
			if err != nil {
				return fmt.Errorf("training: %w", err)
			}

			st, err := store.Open(dataDir(root))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			runID, err := st.SaveRun(cmd.Context(), store.Run{
				StartedAt: started,
				Seed:      cfg.Training.Seed,
				Epochs:    cfg.Training.Epochs,
				Samples:   len(samples),
			}, history, net)
			if err != nil {
				return fmt.Errorf("save run: %w", err)
			}

			finalReward, finalAccuracy := 0.0, 0.0
			if n := len(history.Rewards); n > 0 {
				finalReward = history.Rewards[n-1]
				finalAccuracy = history.Accuracies[n-1]
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"run_id":         runID,
					"epochs":         cfg.Training.Epochs,
					"samples":        len(samples),
					"train":          len(train),
					"test":           len(test),
					"final_reward":   finalReward,
					"final_accuracy": finalAccuracy,
					"db":             st.Path(),
				})
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Run %d complete: %d epochs over %d samples (%d train / %d test)\n",
				runID, cfg.Training.Epochs, len(samples), len(train), len(test))
			fmt.Fprintf(cmd.OutOrStdout(), "Final avg reward: %.3f  accuracy: %.3f\n", finalReward, finalAccuracy)
			fmt.Fprintf(cmd.OutOrStdout(), "Saved to %s\n", st.Path())
			return nil
		},
	}

	cmd.Flags().String("data", "", "Path to a training CSV (front,left,right,back,action); synthetic data is generated when omitted")
	cmd.Flags().Int("epochs", 0, "Override the configured epoch count")
	cmd.Flags().Int64("seed", 0, "Override the configured random seed")

	return cmd
}
