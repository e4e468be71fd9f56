package compose

import (
	"fmt"
	"strings"

	"github.com/dgallion1/nbweave/internal/notebook"
	"github.com/dgallion1/nbweave/internal/sectiontree"
)

// LookupError reports a selection path absent from the template. It is the
// only hard failure during composition.
type LookupError struct {
	Path string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("section %q not found in template", e.Path)
}

// Composer walks a selection against a template section tree and emits the
// composed cell sequence. The template is never mutated; the output is
// built append-only in one pass, so the same inputs always produce the
// same cells.
type Composer struct {
	template []*sectiontree.Section
}

func NewComposer(template []*sectiontree.Section) *Composer {
	return &Composer{template: template}
}

// Compose resolves the selection and returns the output cells. Root
// entries emit level-1 headings; nesting depth maps to heading level.
func (c *Composer) Compose(sel Selection) ([]notebook.Cell, error) {
	var out []notebook.Cell
	if err := c.add(&out, []ChildEntry(sel), c.template, 1); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Composer) add(out *[]notebook.Cell, entries []ChildEntry, candidates []*sectiontree.Section, level int) error {
	for _, ce := range entries {
		entry := ce.Entry
		if entry == nil {
			entry = &Entry{}
		}

		sec := sectiontree.Find(candidates, ce.Name)
		if sec == nil {
			return &LookupError{Path: ce.Name}
		}

		title := entry.Title
		if title == "" {
			parts := strings.Split(ce.Name, sectiontree.PathSeparator)
			title = parts[len(parts)-1]
		}
		*out = append(*out, notebook.Cell{
			Type:   notebook.CellMarkdown,
			Source: strings.Repeat("#", level) + " " + title,
		})

		for _, cell := range sec.Cells {
			*out = append(*out, notebook.Cell{
				Type:   cell.Type,
				Source: ReplaceTokens(cell.Source, entry.Replace),
			})
		}

		switch {
		case entry.All:
			// Explicit overrides come first, in selection order. An
			// override naming a child the template lacks is skipped here;
			// only explicitly selected sections outside this merge raise
			// lookup failures.
			for _, child := range entry.Children {
				if sectiontree.Find(sec.Children, child.Name) == nil {
					continue
				}
				if err := c.add(out, []ChildEntry{child}, sec.Children, level+1); err != nil {
					return err
				}
			}
			// Remaining template children follow in template order,
			// included wholesale.
			for _, child := range sec.Children {
				if hasChild(entry.Children, child.Name) {
					continue
				}
				implied := []ChildEntry{{Name: child.Name, Entry: &Entry{All: true}}}
				if err := c.add(out, implied, sec.Children, level+1); err != nil {
					return err
				}
			}
		case len(entry.Children) > 0:
			if err := c.add(out, entry.Children, sec.Children, level+1); err != nil {
				return err
			}
		}
	}
	return nil
}

func hasChild(entries []ChildEntry, name string) bool {
	for _, ce := range entries {
		if ce.Name == name {
			return true
		}
	}
	return false
}
