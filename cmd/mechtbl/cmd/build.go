package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mechbay/mechtbl/pkg/datafile"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build <table-file>",
	Short: "Encode a JSON dump back into a binary table",
	Long: `Read a JSON dump and rebuild the binary table file from it.

The JSON file is looked up next to the data file with a .json extension
unless --json is given.

Example:
  mechtbl build MachineSpec.cdb --data-dir ./data`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, format, err := resolveTable(cmd, args[0])
		if err != nil {
			return err
		}
		jsonPath, _ := cmd.Flags().GetString("json")
		if err := datafile.Load(format, jsonPath, dataPath(cmd, args[0])); err != nil {
			return err
		}
		cmd.Printf("wrote %s\n", dataPath(cmd, args[0]))
		return nil
	},
}

func init() {
	buildCmd.Flags().String("json", "", "JSON input path (default: data file with .json extension)")
	rootCmd.AddCommand(buildCmd)
}
