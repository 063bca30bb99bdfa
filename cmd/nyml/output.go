package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatDump = "dump"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// render encodes v in the given format.
func render(v any, format string) ([]byte, error) {
	switch format {
	case formatJSON, "":
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode JSON: %w", err)
		}
		return append(out, '\n'), nil
	case formatYAML:
		out, err := yaml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode YAML: %w", err)
		}
		return out, nil
	case formatDump:
		return []byte(dumpConfig.Sdump(v)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want json, yaml or dump)", format)
	}
}

// writeOutput writes out to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, out []byte) error {
	if path == "" {
		_, err := w.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.Debug("Output written", "path", path, "bytes", len(out))
	return nil
}

// withNewline terminates non-empty text with a newline.
func withNewline(b []byte) []byte {
	if len(b) == 0 || b[len(b)-1] == '\n' {
		return b
	}
	return append(b, '\n')
}
