package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

// Set via -ldflags at release time.
var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "spikenav",
		Short: "Spiking neural network for obstacle avoidance",
		Long: `spikenav trains and runs a small spiking neural network that maps
ultrasonic distance readings to navigation actions.

Four sensor neurons feed an 8-neuron processing layer, a 4-neuron filter
layer, and five output units, one per action. Training is reward-modulated:
a sample's target column is strengthened when the target unit fires within
the simulation window and weakened otherwise.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for agent consumption)")
	rootCmd.PersistentFlags().String("root", ".", "Project root directory")

	rootCmd.AddCommand(
		newVersionCmd(),
		newInitCmd(),
		newTrainCmd(),
		newPredictCmd(),
		newGenerateCmd(),
		newGraphCmd(),
		newReportCmd(),
		newRunsCmd(),
		newMCPServerCmd(),
	)

	return rootCmd
}

// dataDir returns the .spikenav directory under the project root.
func dataDir(root string) string {
	return filepath.Join(root, ".spikenav")
}

// configPath returns the config file location under the project root.
func configPath(root string) string {
	return filepath.Join(dataDir(root), "config.yaml")
}
