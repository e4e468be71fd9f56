// Package sectiontree models a document's heading-derived content tree:
// named, ordered, recursively nested sections of notebook cells.
package sectiontree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dgallion1/nbweave/internal/notebook"
)

// PathSeparator joins section names into a path addressing a nested
// section from the root, e.g. "Preamble / Imports".
const PathSeparator = " / "

// Section is a named node in the tree. Cells hold the content directly
// under the section's heading, before any child heading. Sibling names are
// unique within a parent, so lookup by name is unambiguous.
type Section struct {
	Name     string          `json:"name"`
	Cells    []notebook.Cell `json:"cells"`
	Children []*Section      `json:"children"`
}

// MarshalJSON writes empty cell and child lists as [] rather than null so
// the template shape stays stable regardless of how the tree was built.
func (s *Section) MarshalJSON() ([]byte, error) {
	type section Section // strip methods to avoid recursion
	out := section(*s)
	if out.Cells == nil {
		out.Cells = []notebook.Cell{}
	}
	if out.Children == nil {
		out.Children = []*Section{}
	}
	return json.Marshal(out)
}

// Find resolves a section path against a candidate list. Each path segment
// must match a section name exactly; any miss yields nil, never a partial
// result.
func Find(sections []*Section, path string) *Section {
	var found *Section
	candidates := sections
	for _, part := range strings.Split(path, PathSeparator) {
		found = nil
		for _, sec := range candidates {
			if sec.Name == part {
				found = sec
				break
			}
		}
		if found == nil {
			return nil
		}
		candidates = found.Children
	}
	return found
}

// LoadTemplate reads a template JSON file. Both the wrapped form
// {"sections": [...]} and a bare section array are accepted.
func LoadTemplate(path string) ([]*Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var sections []*Section
		if err := json.Unmarshal(data, &sections); err != nil {
			return nil, fmt.Errorf("parse template %s: %w", path, err)
		}
		return sections, nil
	}
	var wrapped struct {
		Sections []*Section `json:"sections"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, fmt.Errorf("parse template %s: %w", path, err)
	}
	return wrapped.Sections, nil
}

// SaveTemplate writes the wrapped {"sections": [...]} template form.
func SaveTemplate(path string, sections []*Section) error {
	if sections == nil {
		sections = []*Section{}
	}
	data, err := json.MarshalIndent(struct {
		Sections []*Section `json:"sections"`
	}{sections}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal template: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return nil
}

// SaveBare writes sections as a bare JSON array, the form the compose
// tool's extraction branch emits.
func SaveBare(path string, sections []*Section) error {
	if sections == nil {
		sections = []*Section{}
	}
	data, err := json.MarshalIndent(sections, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal sections: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write sections: %w", err)
	}
	return nil
}
