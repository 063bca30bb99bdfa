// Package testutil gives tests access to the shared golden corpus.
package testutil

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// TestdataFS holds the embedded test data files.
//
//go:embed testdata
var TestdataFS embed.FS

// ReadTestData reads and returns the content of an embedded test file.
func ReadTestData(name string) ([]byte, error) {
	data, err := fs.ReadFile(TestdataFS, path.Join("testdata", name))
	if err != nil {
		return nil, fmt.Errorf("failed to read test data file '%s': %w", name, err)
	}
	return data, nil
}

// Case is a NYML input together with its expected outcome.
type Case struct {
	Name  string
	Input []byte
	// Want is the expected JSON, or nil when the input must fail.
	Want []byte
	// Code is the expected error code when Want is nil.
	Code string
}

// Cases loads every .nyml file in the embedded directory dir (v1 or v2),
// sorted by name. Each input is paired with a .json file holding the
// expected result or a .err file holding the expected error code.
func Cases(dir string) ([]Case, error) {
	entries, err := fs.ReadDir(TestdataFS, path.Join("testdata", dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list test data in '%s': %w", dir, err)
	}

	var cases []Case
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), ".nyml")
		if !ok {
			continue
		}
		c := Case{Name: name}
		if c.Input, err = ReadTestData(path.Join(dir, e.Name())); err != nil {
			return nil, err
		}
		if want, err := ReadTestData(path.Join(dir, name+".json")); err == nil {
			c.Want = want
		} else {
			code, err := ReadTestData(path.Join(dir, name+".err"))
			if err != nil {
				return nil, fmt.Errorf("no expectation for '%s/%s'", dir, e.Name())
			}
			c.Code = strings.TrimSpace(string(code))
		}
		cases = append(cases, c)
	}
	sort.Slice(cases, func(i, j int) bool { return cases[i].Name < cases[j].Name })
	return cases, nil
}
