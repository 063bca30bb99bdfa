// Package ast defines the values produced by the NYML parsers.
//
// The V1 format parses into a Document of Entry nodes, which preserves
// declaration order and duplicate keys, or into a Mapping where duplicate
// keys have been collapsed. The V2 format parses into a list of Node values.
package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Entry is one occurrence of a key in a V1 document.
//
// An entry is either a leaf holding Value or a container holding Children.
// Children is non-nil exactly when the entry is a container, even if the
// container has no members.
type Entry struct {
	Key       string
	Value     string
	Children  []*Entry
	QuotedKey bool
	Line      int    // 1-based source line
	Indent    int    // leading space count of the source line
	Raw       string // source line as written
}

// IsContainer reports whether e holds child entries rather than a value.
func (e *Entry) IsContainer() bool { return e.Children != nil }

// entryView is the wire shape of an Entry. Value and Children are pointers
// so that a leaf and an empty container stay distinguishable.
type entryView struct {
	Key       string    `json:"key" yaml:"key"`
	Value     *string   `json:"value,omitempty" yaml:"value,omitempty"`
	Children  *[]*Entry `json:"children,omitempty" yaml:"children,omitempty"`
	QuotedKey bool      `json:"quoted_key,omitempty" yaml:"quoted_key,omitempty"`
	Line      int       `json:"line" yaml:"line"`
	Indent    int       `json:"indent" yaml:"indent"`
	Raw       string    `json:"raw" yaml:"raw"`
}

func (e Entry) view() entryView {
	v := entryView{
		Key:       e.Key,
		QuotedKey: e.QuotedKey,
		Line:      e.Line,
		Indent:    e.Indent,
		Raw:       e.Raw,
	}
	if e.Children != nil {
		children := e.Children
		v.Children = &children
	} else {
		value := e.Value
		v.Value = &value
	}
	return v
}

// MarshalJSON encodes the entry as an object with key, value or children,
// quoted_key, line, indent and raw members.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.view())
}

// UnmarshalJSON decodes the object written by MarshalJSON. Missing
// position members decode as zero.
func (e *Entry) UnmarshalJSON(data []byte) error {
	var v entryView
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*e = Entry{
		Key:       v.Key,
		QuotedKey: v.QuotedKey,
		Line:      v.Line,
		Indent:    v.Indent,
		Raw:       v.Raw,
	}
	if v.Children != nil {
		e.Children = *v.Children
		if e.Children == nil {
			e.Children = []*Entry{}
		}
	} else if v.Value != nil {
		e.Value = *v.Value
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (e Entry) MarshalYAML() (interface{}, error) {
	return e.view(), nil
}

// Document is the order-preserving result of a V1 parse.
type Document struct {
	Entries []*Entry
}

type documentView struct {
	Type    string   `json:"type" yaml:"type"`
	Entries []*Entry `json:"entries" yaml:"entries"`
}

const documentType = "document"

func (d Document) view() documentView {
	entries := d.Entries
	if entries == nil {
		entries = []*Entry{}
	}
	return documentView{Type: documentType, Entries: entries}
}

// MarshalJSON encodes the document as {"type": "document", "entries": [...]}.
func (d Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.view())
}

// UnmarshalJSON accepts either the object written by MarshalJSON or a bare
// array of entries.
func (d *Document) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var entries []*Entry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return err
		}
		d.Entries = entries
		return nil
	}
	var v struct {
		Type    string   `json:"type"`
		Entries []*Entry `json:"entries"`
	}
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return err
	}
	if v.Type != documentType || v.Entries == nil {
		return fmt.Errorf("ast: invalid entries document: expected object with type=document or a list of entries")
	}
	d.Entries = v.Entries
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Document) MarshalYAML() (interface{}, error) {
	return d.view(), nil
}

// Mapping is a V1 document with duplicate keys resolved. Values are
// strings, nested Mappings, or, for the "all" strategy, []any holding
// either of those.
type Mapping map[string]any

// Kind identifies the shape of a V2 Node.
type Kind int

const (
	// TextNode is a plain string list item.
	TextNode Kind = iota
	// FieldNode is a single-key object with a string value.
	FieldNode
	// ListNode is a single-key object whose value is a nested list.
	ListNode
)

func (k Kind) String() string {
	switch k {
	case TextNode:
		return "text"
	case FieldNode:
		return "field"
	case ListNode:
		return "list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is one item of a V2 list.
//
// A TextNode carries its text in Value. A FieldNode maps Key to Value,
// which may be a multi-line block string. A ListNode maps Key to Items.
type Node struct {
	Kind  Kind
	Key   string
	Value string
	Items []Node
}

// Text returns a plain string node.
func Text(s string) Node {
	return Node{Kind: TextNode, Value: s}
}

// Field returns a {key: value} node.
func Field(key, value string) Node {
	return Node{Kind: FieldNode, Key: key, Value: value}
}

// List returns a {key: [items...]} node. The item list is never nil.
func List(key string, items ...Node) Node {
	if items == nil {
		items = []Node{}
	}
	return Node{Kind: ListNode, Key: key, Items: items}
}

// IsBlock reports whether n is a field whose value spans several lines.
func (n Node) IsBlock() bool {
	return n.Kind == FieldNode && strings.Contains(n.Value, "\n")
}

func (n Node) wire() interface{} {
	switch n.Kind {
	case TextNode:
		return n.Value
	case ListNode:
		items := n.Items
		if items == nil {
			items = []Node{}
		}
		return map[string][]Node{n.Key: items}
	default:
		return map[string]string{n.Key: n.Value}
	}
}

// MarshalJSON encodes a text node as a JSON string and any other node as a
// single-member object.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.wire())
}

// UnmarshalJSON decodes the shapes written by MarshalJSON.
func (n *Node) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*n = Text(s)
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return fmt.Errorf("ast: node must be a string or a single-key object: %w", err)
	}
	if len(obj) != 1 {
		return fmt.Errorf("ast: node object must have exactly one key, got %d", len(obj))
	}
	for key, raw := range obj {
		raw = bytes.TrimSpace(raw)
		if len(raw) > 0 && raw[0] == '[' {
			var items []Node
			if err := json.Unmarshal(raw, &items); err != nil {
				return err
			}
			*n = List(key, items...)
			return nil
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("ast: value of %q must be a string or a list: %w", key, err)
		}
		*n = Field(key, value)
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (n Node) MarshalYAML() (interface{}, error) {
	return n.wire(), nil
}
