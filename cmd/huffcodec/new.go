package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <sample.txt> <table.json|table.yaml>",
	Short: "Build a code table from a sample text",
	Long: "Build a Huffman code table from the symbol frequencies of a sample " +
		"text and save it. The table is named after the file it is saved to.",
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := state.ws.NewEncoder(args[0]); err != nil {
			return err
		}
		name, err := state.ws.SaveEncoder(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved code table %s with %d symbols\n", name, state.ws.Codec().Table().Len())
		return nil
	},
}
