package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mechbay/mechtbl/pkg/datafile"
)

// dumpCmd represents the dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <table-file>",
	Short: "Decode a binary table to JSON",
	Long: `Decode a binary table file and write its records as JSON.

The JSON file is written next to the data file with a .json extension
unless --json is given.

Example:
  mechtbl dump MachineSpec.cdb --data-dir ./data`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, format, err := resolveTable(cmd, args[0])
		if err != nil {
			return err
		}
		jsonPath, _ := cmd.Flags().GetString("json")
		if err := datafile.Dump(format, dataPath(cmd, args[0]), jsonPath); err != nil {
			return err
		}
		if jsonPath == "" {
			jsonPath = datafile.JSONName(dataPath(cmd, args[0]))
		}
		cmd.Printf("wrote %s\n", jsonPath)
		return nil
	},
}

func init() {
	dumpCmd.Flags().String("json", "", "JSON output path (default: data file with .json extension)")
	rootCmd.AddCommand(dumpCmd)
}
