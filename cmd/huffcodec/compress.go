package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	compressTable string
	extractTable  string
)

var compressCmd = &cobra.Command{
	Use:   "compress <input.txt> <output.bin>",
	Short: "Compress a text file",
	Long:  "Compress a text file with a saved code table.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := state.openTable(compressTable); err != nil {
			return err
		}
		if err := state.ws.Compress(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Compressed %s to %s using %s\n", args[0], args[1], state.ws.Name())
		return nil
	},
}

var extractCmd = &cobra.Command{
	Use:   "extract <input.bin> <output.txt>",
	Short: "Extract a compressed file",
	Long:  "Extract a file compressed with the same code table.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := state.openTable(extractTable); err != nil {
			return err
		}
		if err := state.ws.Extract(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Extracted %s to %s using %s\n", args[0], args[1], state.ws.Name())
		return nil
	},
}

func init() {
	compressCmd.Flags().StringVarP(&compressTable, "table", "t", "", "Saved code table (defaults to encoder.default_path)")
	extractCmd.Flags().StringVarP(&extractTable, "table", "t", "", "Saved code table (defaults to encoder.default_path)")
}
