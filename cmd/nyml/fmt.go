package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyml-lang/go-nyml"
)

var fmtFlags struct {
	v1     bool
	output string
}

var fmtCmd = &cobra.Command{
	Use:   "fmt FILE",
	Short: "Normalise a document",
	Long: `Parse a document and write it back out.

By default the document is read as V2: keys containing a colon are quoted,
nested lists are indented by two spaces and multi-line values are written as
block strings. With --v1 the document is read as V1 and rewritten with
two-space indentation, keeping duplicate keys but dropping comments.

Examples:
  nyml fmt notes.nyml
  nyml fmt --v1 config.nyml -o config.nyml`,
	Args: cobra.ExactArgs(1),
	RunE: runFmt,
}

func init() {
	rootCmd.AddCommand(fmtCmd)

	fmtCmd.Flags().BoolVar(&fmtFlags.v1, "v1", false, "format with the V1 dialect")
	fmtCmd.Flags().StringVarP(&fmtFlags.output, "output", "o", "", "output file (defaults to stdout)")
}

func runFmt(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	var out []byte
	if fmtFlags.v1 {
		if out, err = nyml.Format(data); err != nil {
			return err
		}
	} else {
		out = nyml.FormatV2(data)
	}
	logger.Debug("Document formatted", "file", args[0], "bytes", len(out))

	return writeOutput(cmd.OutOrStdout(), fmtFlags.output, out)
}
