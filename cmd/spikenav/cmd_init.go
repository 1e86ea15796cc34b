package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/spikenav/spikenav/internal/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a spikenav workspace in the current directory",
		Long: `Create the .spikenav/ data directory and write a config.yaml with the
reference parameters. Existing files are left untouched.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")

			dir := dataDir(root)
			if err := os.MkdirAll(dir, 0755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}

			cfgPath := configPath(root)
			created := false
			if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
				data, err := yaml.Marshal(config.Default())
				if err != nil {
					return fmt.Errorf("encode default config: %w", err)
				}
				if err := os.WriteFile(cfgPath, data, 0644); err != nil {
					return fmt.Errorf("write %s: %w", cfgPath, err)
				}
				created = true
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"status":         "initialized",
					"path":           dir,
					"config_created": created,
				})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized .spikenav/ in %s\n", root)
				if created {
					fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", cfgPath)
				}
			}
			return nil
		},
	}
}
