package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/spikenav/spikenav/internal/store"
)

func newRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded training runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			limit, _ := cmd.Flags().GetInt("limit")

			st, err := store.Open(dataDir(root))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			runs, err := st.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				type runJSON struct {
					ID            int64   `json:"id"`
					StartedAt     string  `json:"started_at"`
					Seed          int64   `json:"seed"`
					Epochs        int     `json:"epochs"`
					Samples       int     `json:"samples"`
					FinalReward   float64 `json:"final_reward"`
					FinalAccuracy float64 `json:"final_accuracy"`
				}
				out := make([]runJSON, 0, len(runs))
				for _, r := range runs {
					out = append(out, runJSON{
						ID:            r.ID,
						StartedAt:     r.StartedAt.Format(time.RFC3339),
						Seed:          r.Seed,
						Epochs:        r.Epochs,
						Samples:       r.Samples,
						FinalReward:   r.FinalReward,
						FinalAccuracy: r.FinalAccuracy,
					})
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
			}

			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No training runs recorded.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-5s %-20s %-8s %-7s %-8s %-8s %s\n",
				"ID", "STARTED", "SEED", "EPOCHS", "SAMPLES", "REWARD", "ACCURACY")
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%-5d %-20s %-8d %-7d %-8d %-8.3f %.3f\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
					r.Seed, r.Epochs, r.Samples, r.FinalReward, r.FinalAccuracy)
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of runs to list")

	return cmd
}
