/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mechbay/mechtbl/pkg/config"
)

const starterTables = `# mechtbl table definitions.
# Field order is the on-disk field order.
- file: StageList.tbl
  kind: string
- file: StageVoice.tbl
  kind: voice
# - file: MachineSpec.cdb
#   magic: "4d53544200010100"
#   fields:
#     - name: unit_id
#       type: guid
#     - name: series
#       type: series_guid
#     - name: cost
#       type: uint4
#     - name: name
#       type: len_string
`

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter configuration and table definition file",
	Long: `Write a configuration file with a generated viewer API key, and a
starter table definition file if none exists yet.

Examples:
  mechtbl init --data-dir ./data
  mechtbl init --config ./mechtbl.yaml --tables ./tables.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		tablesPath, _ := cmd.Flags().GetString("tables")
		force, _ := cmd.Flags().GetBool("force")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(configPath) && !force {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", configPath)
		}

		cfg, err := config.BootstrapConfig(configPath, dataDir)
		if err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", configPath)
		cmd.Printf("viewer API key: %s\n", cfg.APIKey)

		if _, err := os.Stat(tablesPath); os.IsNotExist(err) {
			if err := os.WriteFile(tablesPath, []byte(starterTables), 0644); err != nil {
				return fmt.Errorf("failed to write table definitions: %w", err)
			}
			cmd.Printf("wrote %s\n", tablesPath)
		}
		return nil
	},
}

func init() {
	initCmd.Flags().String("config", "", "Config path (default: platform config directory)")
	initCmd.Flags().Bool("force", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}
