// Package toc scans a notebook's headings and maintains a generated
// table-of-contents cell.
package toc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dgallion1/nbweave/internal/notebook"
)

// Marker identifies a generated TOC cell. JupyterLab's TOC extension skips
// headings carrying this class, which keeps the TOC out of its own listing.
const Marker = `class="jp-toc-ignore"`

const titleLines = "Table of Contents <a class=\"jp-toc-ignore\"></a>\n================="

// Heading is one recorded heading in document order.
type Heading struct {
	Level int
	Text  string
}

// Scan collects every heading line from every markdown cell. Unlike the
// section extractor's first-line mode, all lines of a cell are inspected,
// and a bare "#" run counts even without a following space.
func Scan(cells []notebook.Cell) []Heading {
	var headings []Heading
	for _, cell := range cells {
		if cell.Type != notebook.CellMarkdown {
			continue
		}
		for _, line := range strings.Split(cell.Source, "\n") {
			if !strings.HasPrefix(line, "#") {
				continue
			}
			level := leadingHashes(line)
			text := strings.TrimSpace(strings.TrimLeft(line, "#"))
			headings = append(headings, Heading{Level: level, Text: text})
		}
	}
	return headings
}

func leadingHashes(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	return n
}

// Format renders the outline as the TOC cell's source: a fixed title line,
// then one bullet per heading, indented two spaces per level below the
// first, each linking to the heading's derived anchor.
//
// Numbering restarts deeper levels at 1 whenever a shallower-or-equal
// heading appears: the counters below the new heading are cleared and a
// cleared counter begins at 1 on its next use. This is a different policy
// from the heading numberer's reset-to-0, which pre-increments instead.
func Format(headings []Heading) string {
	var b strings.Builder
	b.WriteString(titleLines)
	counters := map[int]int{}
	for _, h := range headings {
		if _, seen := counters[h.Level]; seen {
			counters[h.Level]++
		} else {
			counters[h.Level] = 1
		}
		for l := range counters {
			if l > h.Level {
				delete(counters, l)
			}
		}
		parts := make([]string, h.Level)
		for l := 1; l <= h.Level; l++ {
			parts[l-1] = strconv.Itoa(counters[l])
		}
		anchor := strings.ReplaceAll(strings.ToLower(h.Text), " ", "-")
		b.WriteString("\n")
		b.WriteString(strings.Repeat("  ", h.Level-1))
		b.WriteString(fmt.Sprintf("* [%s %s](#%s)", strings.Join(parts, "."), h.Text, anchor))
	}
	return b.String()
}

// Exists reports whether the notebook already carries a generated TOC cell.
func Exists(cells []notebook.Cell) bool {
	for _, cell := range cells {
		if strings.Contains(cell.Source, Marker) {
			return true
		}
	}
	return false
}

// RemoveExisting deletes the first cell carrying the TOC marker, if any.
func RemoveExisting(cells []notebook.Cell) []notebook.Cell {
	for i, cell := range cells {
		if strings.Contains(cell.Source, Marker) {
			out := make([]notebook.Cell, 0, len(cells)-1)
			out = append(out, cells[:i]...)
			out = append(out, cells[i+1:]...)
			return out
		}
	}
	return cells
}

// Insert places the TOC cell immediately before the first markdown cell
// containing any heading line. With no heading anywhere the cells are
// returned unchanged and no TOC is inserted.
func Insert(cells []notebook.Cell, source string) []notebook.Cell {
	for i, cell := range cells {
		if cell.Type != notebook.CellMarkdown || !hasHeadingLine(cell.Source) {
			continue
		}
		out := make([]notebook.Cell, 0, len(cells)+1)
		out = append(out, cells[:i]...)
		out = append(out, notebook.Cell{Type: notebook.CellMarkdown, Source: source})
		out = append(out, cells[i:]...)
		return out
	}
	return cells
}

func hasHeadingLine(source string) bool {
	for _, line := range strings.Split(source, "\n") {
		if strings.HasPrefix(line, "#") {
			return true
		}
	}
	return false
}

// Refresh removes any existing TOC cell, rescans the headings, and inserts
// a freshly generated one.
func Refresh(cells []notebook.Cell) []notebook.Cell {
	cells = RemoveExisting(cells)
	headings := Scan(cells)
	if len(headings) == 0 {
		return cells
	}
	return Insert(cells, Format(headings))
}
