package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	state      *app
)

var rootCmd = &cobra.Command{
	Use:   "huffcodec",
	Short: "Huffman text compressor",
	Long: "huffcodec builds Huffman code tables from sample texts and uses them " +
		"to compress and extract text files.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := closeState(); err != nil {
			return err
		}
		var err error
		state, err = newApp(configPath)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to a config file (yaml, json or toml)")
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(compressCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	err := rootCmd.Execute()
	if cerr := closeState(); cerr != nil {
		fmt.Fprintln(os.Stderr, "Error:", cerr)
		if err == nil {
			err = cerr
		}
	}
	if err != nil {
		os.Exit(1)
	}
}

// closeState releases the state of the last command, whether or not the
// command succeeded.
func closeState() error {
	if state == nil {
		return nil
	}
	err := state.Close()
	state = nil
	return err
}
