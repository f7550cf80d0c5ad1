package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var inspectWeights bool

var inspectCmd = &cobra.Command{
	Use:   "inspect [table.json|table.yaml]",
	Short: "List the codes of a saved code table",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) != 0 {
			path = args[0]
		}
		if err := state.openTable(path); err != nil {
			return err
		}

		codec := state.ws.Codec()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %v\n", codec.Name(), codec.Decoder())
		if _, err := codec.Table().Dump(out); err != nil {
			return err
		}

		if inspectWeights {
			freq := codec.Frequencies()
			if freq == nil {
				fmt.Fprintln(out, "no weights saved")
				return nil
			}
			if _, err := freq.Dump(out); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	inspectCmd.Flags().BoolVarP(&inspectWeights, "weights", "w", false, "Also list the weight of every symbol")
}
