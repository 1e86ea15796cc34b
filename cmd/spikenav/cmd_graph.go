package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/spikenav/spikenav/internal/config"
	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/store"
	"github.com/spikenav/spikenav/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Visualize the network topology",
		Long: `Output the four-layer network as a Graphviz DOT digraph. Edge width
tracks connection weight, so a trained network shows which pathways the
reward signal strengthened.

Weights come from the most recent training run when one exists.

Example:
  spikenav graph | dot -Tpng -o network.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			output, _ := cmd.Flags().GetString("output")

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

			latest, err := st.LatestRun(cmd.Context())
			if err != nil {
				return err
			}
			if latest != nil {
				if err := st.LoadWeights(cmd.Context(), latest.ID, net); err != nil {
					return fmt.Errorf("load weights: %w", err)
				}
			}

			dot := visualization.RenderDOT(net)
			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), dot)
				return nil
			}
			if err := os.WriteFile(output, []byte(dot), 0644); err != nil {
				return fmt.Errorf("write DOT file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Graph written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringP("output", "o", "", "Output file path (stdout when omitted)")

	return cmd
}
