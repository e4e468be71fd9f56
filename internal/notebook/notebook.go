// Package notebook reads and writes Jupyter notebook files (nbformat v4)
// as ordered cell sequences.
package notebook

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Cell types in the nbformat schema.
const (
	CellMarkdown = "markdown"
	CellCode     = "code"
)

// Cell is one notebook cell: a typed text payload. Cells carry no identity
// beyond their position in the sequence.
type Cell struct {
	Type   string `json:"cell_type"`
	Source string `json:"source"`
}

// UnmarshalJSON accepts source as either a single string or an array of
// line strings, both of which appear in the wild.
func (c *Cell) UnmarshalJSON(data []byte) error {
	var raw struct {
		CellType string          `json:"cell_type"`
		Source   json.RawMessage `json:"source"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.Type = raw.CellType
	if len(raw.Source) == 0 {
		c.Source = ""
		return nil
	}
	src, err := decodeSource(raw.Source)
	if err != nil {
		return err
	}
	c.Source = src
	return nil
}

func decodeSource(raw json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var lines []string
	if err := json.Unmarshal(raw, &lines); err != nil {
		return "", fmt.Errorf("cell source is neither string nor string array: %w", err)
	}
	return strings.Join(lines, ""), nil
}

// Read loads a notebook file and returns its cells in order.
func Read(path string) ([]Cell, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read notebook: %w", err)
	}
	var nb struct {
		Cells []Cell `json:"cells"`
	}
	if err := json.Unmarshal(data, &nb); err != nil {
		return nil, fmt.Errorf("parse notebook %s: %w", path, err)
	}
	return nb.Cells, nil
}

// markdownCell and codeCell fix the field order so identical cell sequences
// marshal to byte-identical files.
type markdownCell struct {
	CellType string   `json:"cell_type"`
	Metadata struct{} `json:"metadata"`
	Source   string   `json:"source"`
}

type codeCell struct {
	CellType       string   `json:"cell_type"`
	ExecutionCount *int     `json:"execution_count"`
	Metadata       struct{} `json:"metadata"`
	Outputs        []any    `json:"outputs"`
	Source         string   `json:"source"`
}

type notebookFile struct {
	Cells         []any          `json:"cells"`
	Metadata      map[string]any `json:"metadata"`
	Nbformat      int            `json:"nbformat"`
	NbformatMinor int            `json:"nbformat_minor"`
}

// Marshal renders cells as an nbformat v4 document.
func Marshal(cells []Cell) ([]byte, error) {
	nb := notebookFile{
		Cells:         make([]any, 0, len(cells)),
		Metadata:      map[string]any{},
		Nbformat:      4,
		NbformatMinor: 5,
	}
	for _, c := range cells {
		switch c.Type {
		case CellCode:
			nb.Cells = append(nb.Cells, codeCell{
				CellType: CellCode,
				Outputs:  []any{},
				Source:   c.Source,
			})
		default:
			nb.Cells = append(nb.Cells, markdownCell{
				CellType: CellMarkdown,
				Source:   c.Source,
			})
		}
	}
	data, err := json.MarshalIndent(nb, "", " ")
	if err != nil {
		return nil, fmt.Errorf("marshal notebook: %w", err)
	}
	return append(data, '\n'), nil
}

// Write persists cells as a notebook file. The document is fully built in
// memory before the file is opened, so a failure never leaves partial output.
func Write(path string, cells []Cell) error {
	data, err := Marshal(cells)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write notebook: %w", err)
	}
	return nil
}
