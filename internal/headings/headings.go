// Package headings numbers and de-numbers markdown headings across a
// notebook's cells.
package headings

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dgallion1/nbweave/internal/notebook"
	"github.com/dgallion1/nbweave/internal/sectiontree"
)

// numberPrefixRe matches a dotted numeric prefix like "2" or "1.3.2"
// followed by whitespace at the start of a heading's text.
var numberPrefixRe = regexp.MustCompile(`^\d+(\.\d+)*\s+`)

// Number prefixes every unnumbered heading with its hierarchical dotted
// number. Counters are local to the call: per-level, incremented before
// use, with all strictly deeper counters reset to 0 whenever a shallower
// or equal heading appears. A heading whose text already carries a numeric
// prefix is left untouched, even among unnumbered siblings, which makes
// the pass idempotent.
func Number(cells []notebook.Cell) []notebook.Cell {
	counters := map[int]int{}
	return mapHeadings(cells, func(level int, text string) string {
		if numberPrefixRe.MatchString(text) {
			return text
		}
		counters[level]++
		for l := range counters {
			if l > level {
				counters[l] = 0
			}
		}
		parts := make([]string, level)
		for l := 1; l <= level; l++ {
			parts[l-1] = strconv.Itoa(counters[l])
		}
		return strings.Join(parts, ".") + " " + text
	})
}

// Denumber strips the dotted numeric prefix from every heading that has
// one; headings without a prefix pass through unchanged.
func Denumber(cells []notebook.Cell) []notebook.Cell {
	return mapHeadings(cells, func(level int, text string) string {
		return numberPrefixRe.ReplaceAllString(text, "")
	})
}

// mapHeadings applies fn to the text of each heading line of each markdown
// cell, in document order, returning a new cell slice.
func mapHeadings(cells []notebook.Cell, fn func(level int, text string) string) []notebook.Cell {
	out := make([]notebook.Cell, len(cells))
	for i, cell := range cells {
		out[i] = cell
		if cell.Type != notebook.CellMarkdown {
			continue
		}
		lines := strings.Split(cell.Source, "\n")
		changed := false
		for j, line := range lines {
			level, text, ok := sectiontree.HeadingLine(line)
			if !ok {
				continue
			}
			if next := fn(level, text); next != text {
				lines[j] = strings.Repeat("#", level) + " " + next
				changed = true
			}
		}
		if changed {
			out[i] = notebook.Cell{Type: cell.Type, Source: strings.Join(lines, "\n")}
		}
	}
	return out
}
