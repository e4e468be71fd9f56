// Package compose resolves a user selection against a template section
// tree and emits the composed notebook's cell sequence.
package compose

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Reserved keys of a selection entry; every other key names a child section.
const (
	keyTitle   = "title"
	keyReplace = "replace"
	keyAll     = "all"
)

// Entry is one per-section directive: an optional heading rename, ordered
// text substitutions, the all-children switch, and nested child directives.
type Entry struct {
	Title    string
	Replace  []ReplacePair
	All      bool
	Children []ChildEntry
}

// ReplacePair is a single old->new token substitution. Pairs apply in the
// order they were authored; a later pair may match text an earlier one
// introduced.
type ReplacePair struct {
	Old string
	New string
}

// ChildEntry binds a section name (or path) to its directive, keeping the
// order the selection file listed it in.
type ChildEntry struct {
	Name  string
	Entry *Entry
}

// Selection is the ordered top-level set of section directives. Every key
// at this level is a section path; entry order is part of the contract
// because output ordering follows it.
type Selection []ChildEntry

// LoadSelection reads a selection file, choosing the codec by extension
// (.yaml/.yml for YAML, anything else JSON).
func LoadSelection(path string) (Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selection: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		sel, err := ParseSelectionYAML(data)
		if err != nil {
			return nil, fmt.Errorf("parse selection %s: %w", path, err)
		}
		return sel, nil
	default:
		sel, err := ParseSelection(data)
		if err != nil {
			return nil, fmt.Errorf("parse selection %s: %w", path, err)
		}
		return sel, nil
	}
}

// ParseSelection decodes a JSON selection. encoding/json maps do not keep
// key order, so the object is walked with a token decoder instead.
func ParseSelection(data []byte) (Selection, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	entries, err := decodeChildren(dec, false)
	if err != nil {
		return nil, err
	}
	// Reject trailing content after the top-level object.
	if dec.More() {
		return nil, fmt.Errorf("unexpected content after selection object")
	}
	return Selection(entries), nil
}

// decodeChildren consumes one JSON object. With reserved=true the keys
// title/replace/all fill Entry fields; all other keys (always, at the top
// level) decode as nested child entries.
func decodeChildren(dec *json.Decoder, reserved bool) ([]ChildEntry, error) {
	entry, err := decodeEntry(dec, reserved)
	if err != nil {
		return nil, err
	}
	return entry.Children, nil
}

func decodeEntry(dec *json.Decoder, reserved bool) (*Entry, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}
	e := &Entry{}
	for dec.More() {
		key, err := decodeKey(dec)
		if err != nil {
			return nil, err
		}
		if reserved {
			switch key {
			case keyTitle:
				if err := decodeInto(dec, &e.Title); err != nil {
					return nil, fmt.Errorf("title: %w", err)
				}
				continue
			case keyAll:
				if err := decodeInto(dec, &e.All); err != nil {
					return nil, fmt.Errorf("all: %w", err)
				}
				continue
			case keyReplace:
				pairs, err := decodeReplace(dec)
				if err != nil {
					return nil, err
				}
				e.Replace = pairs
				continue
			}
		}
		child, err := decodeEntry(dec, true)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", key, err)
		}
		e.Children = append(e.Children, ChildEntry{Name: key, Entry: child})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return e, nil
}

func decodeReplace(dec *json.Decoder) ([]ReplacePair, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return nil, fmt.Errorf("replace: %w", err)
	}
	var pairs []ReplacePair
	for dec.More() {
		key, err := decodeKey(dec)
		if err != nil {
			return nil, fmt.Errorf("replace: %w", err)
		}
		var val string
		if err := decodeInto(dec, &val); err != nil {
			return nil, fmt.Errorf("replace %q: %w", key, err)
		}
		pairs = append(pairs, ReplacePair{Old: key, New: val})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, fmt.Errorf("replace: %w", err)
	}
	return pairs, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

func decodeKey(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", err
	}
	key, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("expected object key, got %v", tok)
	}
	return key, nil
}

// decodeInto reads one JSON value into dst via the decoder, preserving the
// token stream position.
func decodeInto(dec *json.Decoder, dst any) error {
	var raw json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

// ParseSelectionYAML decodes a YAML selection through yaml.Node, which
// keeps mapping order where plain map decoding would not.
func ParseSelectionYAML(data []byte) (Selection, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	entry, err := yamlEntry(doc.Content[0], false)
	if err != nil {
		return nil, err
	}
	return Selection(entry.Children), nil
}

func yamlEntry(n *yaml.Node, reserved bool) (*Entry, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected mapping, got %s", n.Line, yamlKind(n))
	}
	e := &Entry{}
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		val := n.Content[i+1]
		if reserved {
			switch key {
			case keyTitle:
				if err := val.Decode(&e.Title); err != nil {
					return nil, fmt.Errorf("title: %w", err)
				}
				continue
			case keyAll:
				if err := val.Decode(&e.All); err != nil {
					return nil, fmt.Errorf("all: %w", err)
				}
				continue
			case keyReplace:
				if val.Kind != yaml.MappingNode {
					return nil, fmt.Errorf("line %d: replace must be a mapping", val.Line)
				}
				for j := 0; j+1 < len(val.Content); j += 2 {
					e.Replace = append(e.Replace, ReplacePair{
						Old: val.Content[j].Value,
						New: val.Content[j+1].Value,
					})
				}
				continue
			}
		}
		child, err := yamlEntry(val, true)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", key, err)
		}
		e.Children = append(e.Children, ChildEntry{Name: key, Entry: child})
	}
	return e, nil
}

func yamlKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.MappingNode:
		return "mapping"
	default:
		return "node"
	}
}
