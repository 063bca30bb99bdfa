//go:build go1.18

package nyml_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyml-lang/go-nyml"
	"github.com/nyml-lang/go-nyml/internal/testutil"
)

func FuzzParse(f *testing.F) {
	// Seed the corpus with the golden inputs.
	for _, dir := range []string{"v1", "v2"} {
		cases, err := testutil.Cases(dir)
		if err != nil {
			f.Fatalf("failed to load seed corpus: %v", err)
		}
		for _, c := range cases {
			f.Add(c.Input)
		}
	}

	f.Add([]byte(""))
	f.Add([]byte("key value"))
	f.Add([]byte(`"key: value`))
	f.Add([]byte("a: |"))
	f.Add([]byte("a:\n  b:\n    c: |\n      x\n  d: 1"))
	f.Add([]byte("\r\n\t:\"\"|"))

	f.Fuzz(func(t *testing.T, data []byte) {
		// The V2 parser accepts anything, and its serialization reads back
		// as the same list.
		nodes := nyml.ParseV2(data)
		require.NotNil(t, nodes)
		require.Equal(t, nodes, nyml.ParseV2(nyml.MarshalV2(nodes)))

		doc, err := nyml.ParseEntries(data)
		if err != nil {
			var perr *nyml.ParseError
			require.ErrorAs(t, err, &perr)
			return
		}
		// Writing the entries back keeps every value.
		again, err := nyml.ParseEntries(nyml.MarshalEntries(doc))
		require.NoError(t, err)
		require.Equal(t, nyml.ToMapping(doc, nyml.StrategyAll), nyml.ToMapping(again, nyml.StrategyAll))

		// Mapping mode agrees with entries mode whenever it succeeds.
		m, err := nyml.Parse(data)
		if err != nil {
			var perr *nyml.ParseError
			require.ErrorAs(t, err, &perr)
			require.Equal(t, nyml.CodeUnterminatedMultiline, perr.Code)
			return
		}
		require.Equal(t, nyml.ToMapping(doc, nyml.StrategyLast), m)
	})
}
