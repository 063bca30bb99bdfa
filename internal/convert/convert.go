// Package convert generates V1 NYML text from JSON or YAML documents.
//
// The generator is one-directional: it picks a readable NYML spelling for
// each value and does not promise that parsing the output restores the
// input. Arrays, for instance, become block strings with one item per line.
package convert

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

const indentUnit = "  "

// FromJSON renders a JSON or YAML document as NYML. Object key order is
// preserved. Empty input renders as empty output.
func FromJSON(data []byte) (string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return "", fmt.Errorf("nyml: decoding input: %w", err)
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return "", nil
	}

	g := &generator{}
	if err := g.value(resolve(doc.Content[0]), 0); err != nil {
		return "", err
	}
	return strings.Join(g.lines, "\n"), nil
}

type generator struct {
	lines []string
}

func (g *generator) add(line string) {
	g.lines = append(g.lines, line)
}

func (g *generator) value(n *yaml.Node, depth int) error {
	ind := strings.Repeat(indentUnit, depth)
	switch n.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			if err := g.pair(n.Content[i].Value, resolve(n.Content[i+1]), depth); err != nil {
				return err
			}
		}
	case yaml.SequenceNode:
		for i, item := range n.Content {
			item = resolve(item)
			key := "item" + strconv.Itoa(i)
			if item.Kind == yaml.MappingNode || item.Kind == yaml.SequenceNode {
				g.add(ind + key + ":")
				if err := g.value(item, depth+1); err != nil {
					return err
				}
				continue
			}
			g.add(ind + key + ": " + scalarText(item))
		}
	default:
		g.add(ind + "value: " + scalarText(n))
	}
	return nil
}

func (g *generator) pair(key string, v *yaml.Node, depth int) error {
	ind := strings.Repeat(indentUnit, depth)
	if NeedsQuotingKey(key) {
		key = `"` + key + `"`
	}

	switch {
	case v.Kind == yaml.MappingNode:
		g.add(ind + key + ":")
		return g.value(v, depth+1)
	case v.Kind == yaml.SequenceNode:
		g.add(ind + key + ": |")
		for _, item := range v.Content {
			text, err := itemText(resolve(item))
			if err != nil {
				return err
			}
			g.add(ind + indentUnit + text)
		}
		if len(v.Content) > 0 {
			g.add("")
		}
	case strings.Contains(v.Value, "\n"):
		g.add(ind + key + ": |")
		pieces := strings.Split(v.Value, "\n")
		if pieces[len(pieces)-1] == "" {
			pieces = pieces[:len(pieces)-1]
		}
		for _, p := range pieces {
			g.add(ind + indentUnit + p)
		}
		g.add("")
	default:
		text := scalarText(v)
		if NeedsQuotingValue(text) {
			text = `"` + text + `"`
		}
		g.add(ind + key + ": " + text)
	}
	return nil
}

// itemText renders an array item on a single line. Nested collections are
// written as compact JSON.
func itemText(n *yaml.Node) (string, error) {
	if n.Kind != yaml.MappingNode && n.Kind != yaml.SequenceNode {
		return scalarText(n), nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return "", fmt.Errorf("nyml: decoding array item at line %d: %w", n.Line, err)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("nyml: encoding array item at line %d: %w", n.Line, err)
	}
	return string(b), nil
}

func scalarText(n *yaml.Node) string {
	if n.Tag == "!!null" {
		return "null"
	}
	return n.Value
}

func resolve(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// NeedsQuotingKey reports whether a generated key is written in quotes.
func NeedsQuotingKey(key string) bool {
	if key == "" {
		return true
	}
	if strings.ContainsAny(key, " :@") || strings.HasPrefix(key, `"`) || strings.HasPrefix(key, "#") {
		return true
	}
	if unicode.IsDigit(rune(key[0])) {
		return true
	}
	stripped := strings.NewReplacer("_", "", "-", "", ".", "").Replace(key)
	if stripped == "" {
		return true
	}
	for _, r := range stripped {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// NeedsQuotingValue reports whether a generated scalar is written in
// quotes.
func NeedsQuotingValue(v string) bool {
	if strings.ContainsAny(v, ` "'#@:$`) {
		return true
	}
	if !strings.ContainsAny(v, ".-") {
		return false
	}
	digits := strings.NewReplacer(".", "", "-", "").Replace(v)
	if digits == "" {
		return false
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
