package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikenav/spikenav/internal/store"
	"github.com/spikenav/spikenav/internal/visualization"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an HTML training report",
		Long: `Render a self-contained HTML report for a training run: reward and
accuracy curves over epochs plus the run's parameters.

Defaults to the most recent run.

Example:
  spikenav report -o report.html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			runID, _ := cmd.Flags().GetInt64("run")
			output, _ := cmd.Flags().GetString("output")

			st, err := store.Open(dataDir(root))
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			var run *store.Run
			if runID > 0 {
				runs, err := st.ListRuns(cmd.Context(), 1000)
				if err != nil {
					return err
				}
				for i := range runs {
					if runs[i].ID == runID {
						run = &runs[i]
						break
					}
				}
				if run == nil {
					return fmt.Errorf("run %d not found", runID)
				}
			} else {
				run, err = st.LatestRun(cmd.Context())
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("no training runs recorded; run 'spikenav train' first")
				}
			}

			metrics, err := st.EpochMetrics(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			if output == "" {
				return visualization.WriteReport(cmd.OutOrStdout(), *run, metrics)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create report file: %w", err)
			}
			defer f.Close()
			if err := visualization.WriteReport(f, *run, metrics); err != nil {
				return fmt.Errorf("render report: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Report for run %d written to %s\n", run.ID, output)
			return nil
		},
	}

	cmd.Flags().Int64("run", 0, "Run ID to report on (defaults to the latest)")
	cmd.Flags().StringP("output", "o", "", "Output HTML path (stdout when omitted)")

	return cmd
}
