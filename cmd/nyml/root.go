package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nyml-lang/go-nyml"
)

// Version is the release version (set by build flags).
var Version = "0.1.0"

var (
	// Global flags
	verbose bool

	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:   "nyml",
	Short: "Parse, format and convert NYML documents",
	Long: `nyml works with NYML, an indentation-based configuration format in which
every value is a string.

Commands:
  parse    print a V1 document (or a V2 list) as JSON, YAML or a debug dump
  fmt      normalise a V2 document
  convert  turn JSON or YAML into V1 NYML
  watch    re-validate a document every time it changes`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// reportError prints err. Parse errors are printed with their code and
// line so that scripts can pick them apart.
func reportError(w io.Writer, err error) {
	var perr *nyml.ParseError
	if errors.As(err, &perr) {
		fmt.Fprintf(w, "Error: %s\n", perr.Message)
		fmt.Fprintf(w, "Code: %s\n", perr.Code)
		fmt.Fprintf(w, "Line: %d\n", perr.Line)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
