package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyml-lang/go-nyml"
)

var convertFlags struct {
	entries bool
	output  string
}

var convertCmd = &cobra.Command{
	Use:   "convert FILE",
	Short: "Convert JSON or YAML to NYML",
	Long: `Convert a JSON or YAML document to V1 NYML.

With --entries the input must be an entries document as printed by
"nyml parse --entries", and the original key order and duplicates are
written back.

Examples:
  nyml convert settings.json
  nyml parse --entries config.nyml -o entries.json
  nyml convert --entries entries.json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVarP(&convertFlags.entries, "entries", "e", false, "input is an entries document")
	convertCmd.Flags().StringVarP(&convertFlags.output, "output", "o", "", "output file (defaults to stdout)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var out []byte
	if convertFlags.entries {
		out, err = nyml.FromEntriesJSON(data)
	} else {
		out, err = nyml.FromJSON(data)
	}
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), convertFlags.output, withNewline(out))
}
