package nyml_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nyml-lang/go-nyml"
)

func TestMarshal(t *testing.T) {
	t.Run("Struct", func(t *testing.T) {
		cfg := Config{
			Name:    "demo",
			Port:    8080,
			Debug:   true,
			Ratio:   0.5,
			Retries: 3,
			DB:      Database{Host: "localhost", Port: 5432},
			Notes:   "first\nsecond\n",
			Ignored: "never written",
		}
		b, err := nyml.Marshal(cfg)
		require.NoError(t, err)

		expected := "name: demo\n" +
			"port: 8080\n" +
			"debug: true\n" +
			"ratio: 0.5\n" +
			"retries: 3\n" +
			"db:\n" +
			"  host: localhost\n" +
			"  port: 5432\n" +
			"notes: |\n" +
			"  first\n" +
			"  second\n" +
			"  \n"
		require.Equal(t, expected, string(b))

		var back Config
		require.NoError(t, nyml.Unmarshal(b, &back))
		cfg.Ignored = ""
		require.Equal(t, cfg, back)
	})

	t.Run("Pointer and nil pointer", func(t *testing.T) {
		cfg := &Config{Name: "demo", Replica: &Database{Host: "r", Port: 1}}
		b, err := nyml.Marshal(cfg)
		require.NoError(t, err)
		require.Contains(t, string(b), "replica:\n  host: r\n  port: 1")

		cfg.Replica = nil
		b, err = nyml.Marshal(cfg)
		require.NoError(t, err)
		require.NotContains(t, string(b), "replica")
	})

	t.Run("Maps are sorted", func(t *testing.T) {
		b, err := nyml.Marshal(map[string]any{
			"b":      "2",
			"a":      1,
			"a b":    true,
			"nested": map[string]string{"y": "2", "x": "1"},
		})
		require.NoError(t, err)
		require.Equal(t, "a: 1\n\"a b\": true\nb: 2\nnested:\n  x: 1\n  y: 2", string(b))
	})

	t.Run("Slices repeat the key", func(t *testing.T) {
		v := struct {
			Hosts []string   `nyml:"host"`
			Nodes []Database `nyml:"node"`
			Ports [2]int     `nyml:"port"`
		}{
			Hosts: []string{"a", "b"},
			Nodes: []Database{{Host: "n1", Port: 1}},
			Ports: [2]int{80, 443},
		}
		b, err := nyml.Marshal(v)
		require.NoError(t, err)
		require.Equal(t, "host: a\nhost: b\nnode:\n  host: n1\n  port: 1\nport: 80\nport: 443", string(b))

		var back struct {
			Hosts []string   `nyml:"host"`
			Nodes []Database `nyml:"node"`
			Ports [2]int     `nyml:"port"`
		}
		require.NoError(t, nyml.Unmarshal(b, &back, nyml.WithStrategy(nyml.StrategyAll)))
		require.Equal(t, v.Hosts, back.Hosts)
		require.Equal(t, v.Nodes, back.Nodes)
		require.Equal(t, v.Ports, back.Ports)
	})

	t.Run("Empty string", func(t *testing.T) {
		b, err := nyml.Marshal(map[string]string{"empty": "", "next": "x"})
		require.NoError(t, err)
		require.Equal(t, "empty:\nnext: x", string(b))

		var back map[string]string
		require.NoError(t, nyml.Unmarshal(b, &back))
		require.Equal(t, map[string]string{"empty": "", "next": "x"}, back)
	})

	t.Run("TextMarshaler", func(t *testing.T) {
		ip := net.ParseIP("10.0.0.1")
		b, err := nyml.Marshal(struct {
			Addr  net.IP  `nyml:"addr"`
			Proxy *net.IP `nyml:"proxy"`
		}{Addr: net.ParseIP("127.0.0.1"), Proxy: &ip})
		require.NoError(t, err)
		require.Equal(t, "addr: 127.0.0.1\nproxy: 10.0.0.1", string(b))
	})

	t.Run("Embedded struct", func(t *testing.T) {
		b, err := nyml.Marshal(struct {
			Name string `nyml:"name"`
			Address
		}{Name: "Jo", Address: Address{City: "Oslo", PostalCode: "0150"}})
		require.NoError(t, err)
		require.Equal(t, "name: Jo\nCity: Oslo\npostal_code: 0150", string(b))
	})
}

func TestMarshalOmitEmpty(t *testing.T) {
	type OmitStruct struct {
		String  string            `nyml:"string,omitempty"`
		Int     int               `nyml:"int,omitempty"`
		Bool    bool              `nyml:"bool,omitempty"`
		Slice   []string          `nyml:"slice,omitempty"`
		Map     map[string]string `nyml:"map,omitempty"`
		Pointer *int              `nyml:"pointer,omitempty"`
		Kept    bool              `nyml:"kept"`
	}

	b, err := nyml.Marshal(OmitStruct{})
	require.NoError(t, err)
	require.Equal(t, "kept: false", string(b))

	n := 0
	b, err = nyml.Marshal(OmitStruct{
		String:  "s",
		Int:     1,
		Bool:    true,
		Slice:   []string{"x"},
		Map:     map[string]string{"k": "v"},
		Pointer: &n,
	})
	require.NoError(t, err)
	require.Equal(t, "string: s\nint: 1\nbool: true\nslice: x\nmap:\n  k: v\npointer: 0\nkept: false", string(b))
}

func TestMarshalErrors(t *testing.T) {
	testCases := []struct {
		name        string
		value       any
		expectedErr string
	}{
		{name: "nil", value: nil, expectedErr: "nyml: cannot marshal nil value"},
		{name: "scalar root", value: 42, expectedErr: "nyml: cannot marshal int at document root, want struct or map"},
		{name: "non-string map key", value: map[int]string{1: "a"}, expectedErr: "nyml: map key type must be a string, got int"},
		{name: "quote in key", value: map[string]string{`a"b`: "x"}, expectedErr: `nyml: cannot represent key "a\"b"`},
		{name: "block without final newline", value: map[string]string{"k": "a\nb"}, expectedErr: `nyml: cannot represent value "a\nb" of key "k"`},
		{name: "pipe value", value: map[string]string{"k": "|"}, expectedErr: `nyml: cannot represent value "|" of key "k"`},
		{name: "quoted value", value: map[string]string{"k": `"x"`}, expectedErr: `nyml: cannot represent value "\"x\"" of key "k"`},
		{name: "bytes", value: map[string][]byte{"k": []byte("x")}, expectedErr: "nyml: cannot marshal []uint8"},
		{name: "channel", value: map[string]any{"k": make(chan int)}, expectedErr: "nyml: unsupported type for marshaling: chan int"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := nyml.Marshal(tc.value)
			require.EqualError(t, err, tc.expectedErr)
		})
	}
}

func TestMarshalReadsBack(t *testing.T) {
	type doc struct {
		Padded string            `nyml:"padded"`
		Blank  string            `nyml:"blank"`
		Notes  string            `nyml:"notes"`
		Labels map[string]string `nyml:"labels"`
	}
	in := doc{
		Padded: " x ",
		Blank:  "  ",
		Notes:  "  indented\nflush\n\nlast\n",
		Labels: map[string]string{"my key": "v", "a:b": "c"},
	}

	b, err := nyml.Marshal(in)
	require.NoError(t, err)

	var out doc
	require.NoError(t, nyml.Unmarshal(b, &out))
	require.Equal(t, in, out)
}

func TestEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := nyml.NewEncoder(&buf)
	require.NoError(t, enc.Encode(map[string]int{"a": 1}))
	require.NoError(t, enc.Encode(struct{}{}))
	require.Equal(t, "a: 1\n", buf.String())

	require.Error(t, enc.Encode(nil))
}
