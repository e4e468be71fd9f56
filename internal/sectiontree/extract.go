package sectiontree

import (
	"regexp"
	"strings"

	"github.com/dgallion1/nbweave/internal/notebook"
)

// ExtractMode selects how markdown cells are scanned for headings. The two
// behaviors produce different trees for cells holding several headings, and
// callers depend on each, so they stay distinct.
type ExtractMode int

const (
	// FirstLine inspects only line 0 of each markdown cell for heading
	// syntax. A heading cell contributes no content cells.
	FirstLine ExtractMode = iota
	// EveryLine inspects every line of every markdown cell independently.
	// Runs of non-heading lines become markdown cells of the section open
	// at that point.
	EveryLine
)

// headingRe matches one or more leading '#' characters, a single space,
// and the rest of the line.
var headingRe = regexp.MustCompile(`^(#+) (.*)$`)

// HeadingLine reports the level and title of a heading line, or ok=false.
func HeadingLine(line string) (level int, title string, ok bool) {
	m := headingRe.FindStringSubmatch(line)
	if m == nil {
		return 0, "", false
	}
	return len(m[1]), m[2], true
}

// Extract builds a section tree from a flat cell sequence, inferring
// nesting from markdown heading levels. A stack of (level, section) pairs
// tracks the open ancestor chain; content with no open section is silently
// dropped.
func Extract(cells []notebook.Cell, mode ExtractMode) []*Section {
	type stackEntry struct {
		level   int
		section *Section
	}
	var roots []*Section
	var stack []stackEntry

	open := func(level int, name string) {
		sec := &Section{Name: name}
		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := stack[len(stack)-1].section
			parent.Children = append(parent.Children, sec)
		} else {
			roots = append(roots, sec)
		}
		stack = append(stack, stackEntry{level: level, section: sec})
	}
	appendCell := func(c notebook.Cell) {
		if len(stack) == 0 {
			return
		}
		top := stack[len(stack)-1].section
		top.Cells = append(top.Cells, c)
	}

	for _, cell := range cells {
		if cell.Type != notebook.CellMarkdown {
			appendCell(cell)
			continue
		}
		switch mode {
		case FirstLine:
			first, _, _ := strings.Cut(cell.Source, "\n")
			if level, title, ok := HeadingLine(first); ok {
				open(level, title)
			} else {
				appendCell(cell)
			}
		case EveryLine:
			var buf []string
			flush := func() {
				joined := strings.Join(buf, "\n")
				if strings.TrimSpace(joined) != "" {
					appendCell(notebook.Cell{Type: notebook.CellMarkdown, Source: joined})
				}
				buf = buf[:0]
			}
			for _, line := range strings.Split(cell.Source, "\n") {
				if level, title, ok := HeadingLine(line); ok {
					flush()
					open(level, title)
				} else {
					buf = append(buf, line)
				}
			}
			flush()
		}
	}
	return roots
}
