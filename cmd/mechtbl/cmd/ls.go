package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/mechbay/mechtbl/pkg/datafile"
)

// lsCmd represents the ls command
var lsCmd = &cobra.Command{
	Use:   "ls [table-file]",
	Short: "List defined tables, or print one table's records",
	Long: `With no argument, list every table in the definition file. With a
table file name, decode it and print each record as one JSON line.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			defs, err := loadDefs(cmd)
			if err != nil {
				return err
			}
			for _, def := range defs {
				kind := def.Kind
				if kind == "" {
					kind = "record"
				}
				cmd.Printf("%-32s %-7s %d fields\n", def.File, kind, len(def.Fields))
			}
			return nil
		}

		_, format, err := resolveTable(cmd, args[0])
		if err != nil {
			return err
		}
		records, err := datafile.ReadFile(dataPath(cmd, args[0]), format)
		if err != nil {
			return err
		}
		for _, rec := range records {
			line, err := json.Marshal(rec)
			if err != nil {
				return err
			}
			cmd.Println(string(line))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(lsCmd)
}
