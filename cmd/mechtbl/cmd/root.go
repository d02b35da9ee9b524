/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mechbay/mechtbl/pkg/config"
	"github.com/mechbay/mechtbl/pkg/tbl"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mechtbl",
	Short: "mechtbl - typed binary game-table codec",
	Long: `mechtbl converts fixed-layout binary game-data tables to JSON and
back, bit-exactly. Table schemas (magic header, record-count width and
ordered field list) are supplied as data in a YAML definition file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("tables", "t", "./tables.yaml", "Table definition file")
	rootCmd.PersistentFlags().StringP("data-dir", "d", ".", "Directory holding the binary table files")
}

// loadDefs reads the table definitions named by the --tables flag.
func loadDefs(cmd *cobra.Command) ([]config.TableDef, error) {
	path, _ := cmd.Flags().GetString("tables")
	return config.LoadTables(path)
}

// resolveTable finds one table's definition and builds its codec.
func resolveTable(cmd *cobra.Command, file string) (config.TableDef, tbl.Format, error) {
	defs, err := loadDefs(cmd)
	if err != nil {
		return config.TableDef{}, nil, err
	}
	def, err := config.FindTable(defs, file)
	if err != nil {
		return config.TableDef{}, nil, err
	}
	format, err := def.Build()
	if err != nil {
		return config.TableDef{}, nil, err
	}
	return def, format, nil
}

// dataPath joins --data-dir with a table file name.
func dataPath(cmd *cobra.Command, file string) string {
	dir, _ := cmd.Flags().GetString("data-dir")
	return filepath.Join(dir, file)
}
