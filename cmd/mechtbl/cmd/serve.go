/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mechbay/mechtbl/pkg/api"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the read-only table viewer API",
	Long: `Start the HTTP viewer. Tables listed in the definition file are
decoded on request and served as JSON; /metrics exposes Prometheus metrics.

Examples:
  mechtbl serve --api-key=mysecretkey --port=8080 --data-dir=./data`,
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetInt("port")
		bind, _ := cmd.Flags().GetString("bind")
		apiKey, _ := cmd.Flags().GetString("api-key")
		dataDir, _ := cmd.Flags().GetString("data-dir")

		if apiKey == "" {
			return fmt.Errorf("--api-key is required")
		}

		defs, err := loadDefs(cmd)
		if err != nil {
			return err
		}

		return api.StartServer(defs, api.ServerConfig{
			Bind:    bind,
			Port:    port,
			APIKey:  apiKey,
			DataDir: dataDir,
		})
	},
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key required in the X-API-Key header")
	rootCmd.AddCommand(serveCmd)
}
