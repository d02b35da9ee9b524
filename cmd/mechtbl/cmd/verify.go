package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <table-file>",
	Short: "Check that a table round-trips bit-exactly",
	Long: `Decode a binary table, re-encode the records, and compare the result
against the original bytes. A clean table prints OK; any difference is an
error, since decode-then-encode must reproduce the input exactly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, format, err := resolveTable(cmd, args[0])
		if err != nil {
			return err
		}

		path := dataPath(cmd, args[0])
		original, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		records, err := format.Decode(original)
		if err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
		rebuilt, err := format.Encode(records)
		if err != nil {
			return fmt.Errorf("encode %s: %w", path, err)
		}
		if !bytes.Equal(original, rebuilt) {
			return fmt.Errorf("%s: round trip differs (%d bytes in, %d bytes out)",
				path, len(original), len(rebuilt))
		}

		cmd.Printf("OK %s (%d records, %d bytes)\n", path, len(records), len(original))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
