package main

import (
	"github.com/spf13/cobra"

	"github.com/spikenav/spikenav/internal/config"
	"github.com/spikenav/spikenav/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run the MCP server over stdio",
		Long: `Start a Model Context Protocol server exposing the network to agents.

Tools:
  snn_predict  Run the network on sensor distances and return the action
  snn_train    Train on one labelled sample and return the reward
  snn_stats    List recent training runs

The server speaks MCP over stdin/stdout and blocks until the client
disconnects.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			cfg, err := config.Load(configPath(root))
			if err != nil {
				return err
			}

			server, err := mcp.NewServer(&mcp.Config{
				Name:    "spikenav",
				Version: version,
				DataDir: dataDir(root),
				Params:  cfg.Params(),
				Trainer: cfg.TrainerConfig(),
				Seed:    cfg.Training.Seed,
			})
			if err != nil {
				return err
			}

			return server.Run(cmd.Context())
		},
	}
}
