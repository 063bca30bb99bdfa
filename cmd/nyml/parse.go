package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyml-lang/go-nyml"
)

var parseFlags struct {
	entries  bool
	strategy string
	v2       bool
	format   string
	output   string
}

var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a NYML document",
	Long: `Parse a NYML document and print the result.

By default the document is read as V1 and printed as a mapping in which the
last occurrence of a duplicated key wins.

Examples:
  # Mapping, last occurrence wins
  nyml parse config.nyml

  # Ordered entries, duplicates preserved
  nyml parse --entries config.nyml

  # Collect duplicates into lists
  nyml parse --strategy all config.nyml

  # V2 list as YAML
  nyml parse --v2 --format yaml notes.nyml`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseFlags.entries, "entries", "e", false, "print the ordered entries document (keeps duplicates)")
	parseCmd.Flags().StringVarP(&parseFlags.strategy, "strategy", "s", "last", "duplicate key strategy: last, first, all")
	parseCmd.Flags().BoolVar(&parseFlags.v2, "v2", false, "parse the V2 dialect")
	parseCmd.Flags().StringVarP(&parseFlags.format, "format", "f", formatJSON, "output format: json, yaml, dump")
	parseCmd.Flags().StringVarP(&parseFlags.output, "output", "o", "", "output file (defaults to stdout)")
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	result, err := parseDocument(data)
	if err != nil {
		return err
	}
	logger.Debug("Document parsed", "file", args[0], "bytes", len(data))

	out, err := render(result, parseFlags.format)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), parseFlags.output, out)
}

// parseDocument parses data according to parseFlags.
func parseDocument(data []byte) (any, error) {
	if parseFlags.v2 {
		return nyml.ParseV2(data), nil
	}

	strategy, err := nyml.ParseStrategy(parseFlags.strategy)
	if err != nil {
		return nil, err
	}

	if parseFlags.entries {
		return nyml.ParseEntries(data)
	}
	if strategy == nyml.StrategyLast {
		return nyml.Parse(data)
	}
	doc, err := nyml.ParseEntries(data)
	if err != nil {
		return nil, err
	}
	return nyml.ToMapping(doc, strategy), nil
}
