package cmd

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mechbay/mechtbl/pkg/catalog"
	"github.com/mechbay/mechtbl/pkg/codec"
	"github.com/mechbay/mechtbl/pkg/datafile"
	"github.com/mechbay/mechtbl/pkg/tbl"
)

// catalogCmd groups the catalog subcommands
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Index decoded tables for cross-file lookups",
	Long: `Maintain a local catalog of decoded records. Imported tables can be
queried by table and position, or by unit GUID across every imported table.`,
}

var catalogImportCmd = &cobra.Command{
	Use:   "import <table-file>",
	Short: "Decode a table and store its records in the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		def, format, err := resolveTable(cmd, args[0])
		if err != nil {
			return err
		}
		records, err := datafile.ReadFile(dataPath(cmd, args[0]), format)
		if err != nil {
			return err
		}

		// Only record tables carry guid fields worth a secondary index.
		var schema codec.Schema
		if t, ok := format.(*tbl.Table); ok {
			schema = t.Schema
		}

		c, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		batch, err := c.ImportTable(def.File, schema, records)
		if err != nil {
			return err
		}
		cmd.Printf("imported %d records from %s (batch %s)\n", len(records), def.File, batch)
		return nil
	},
}

var catalogGetCmd = &cobra.Command{
	Use:   "get <table-file> <order>",
	Short: "Fetch one imported record by table and position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		order, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}

		c, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		rec, err := c.Record(args[0], order)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return err
		}
		cmd.Println(string(out))
		return nil
	},
}

var catalogFindCmd = &cobra.Command{
	Use:   "find <guid>",
	Short: "Find every imported record referencing a unit GUID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		refs, err := c.LookupGUID(args[0])
		if err != nil {
			return err
		}
		if len(refs) == 0 {
			cmd.Printf("no records reference %s\n", args[0])
			return nil
		}
		for _, ref := range refs {
			cmd.Printf("%s #%d\n", ref.Table, ref.Order)
		}
		return nil
	},
}

var catalogBatchesCmd = &cobra.Command{
	Use:   "batches",
	Short: "List catalog imports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer c.Close()

		batches, err := c.Batches()
		if err != nil {
			return err
		}
		for _, b := range batches {
			cmd.Printf("%s  %-32s %6d records  %s\n",
				b.ID, b.Table, b.Records, b.ImportedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	},
}

func openCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	dir, _ := cmd.Flags().GetString("catalog-dir")
	return catalog.Open(dir)
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "./catalog", "Catalog directory")
	catalogCmd.AddCommand(catalogImportCmd)
	catalogCmd.AddCommand(catalogGetCmd)
	catalogCmd.AddCommand(catalogFindCmd)
	catalogCmd.AddCommand(catalogBatchesCmd)
	rootCmd.AddCommand(catalogCmd)
}
