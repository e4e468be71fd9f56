// Package importer builds section trees from documents that are not
// notebooks, so templates can start life as Markdown, HTML, DOCX, or PDF
// files.
package importer

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/nbweave/internal/notebook"
	"github.com/dgallion1/nbweave/internal/sectiontree"
)

// Importer converts raw document bytes into template sections.
type Importer interface {
	Parse(r io.Reader, filename string) ([]*sectiontree.Section, error)
}

// SupportedExtensions lists file extensions the import command can handle.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".pdf":      true,
}

// ForFile returns the appropriate importer for a filename.
func ForFile(filename string) (Importer, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownImporter{}, nil
	case ".html", ".htm":
		return &HTMLImporter{}, nil
	case ".docx":
		return &DOCXImporter{}, nil
	case ".pdf":
		return &PDFImporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupported checks if a file extension is supported.
func IsSupported(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// builder assembles a section tree from a stream of headings, text blocks,
// and code blocks. Text blocks accumulate and are flushed into a single
// markdown cell of the open section whenever a heading or code block
// arrives. Content before the first heading is dropped, matching the
// notebook extractor's edge case.
type builder struct {
	roots []*sectiontree.Section
	stack []builderEntry
	text  strings.Builder
}

type builderEntry struct {
	level   int
	section *sectiontree.Section
}

func (b *builder) openSection(level int, title string) {
	b.flushText()
	sec := &sectiontree.Section{Name: title}
	for len(b.stack) > 0 && b.stack[len(b.stack)-1].level >= level {
		b.stack = b.stack[:len(b.stack)-1]
	}
	if len(b.stack) > 0 {
		parent := b.stack[len(b.stack)-1].section
		parent.Children = append(parent.Children, sec)
	} else {
		b.roots = append(b.roots, sec)
	}
	b.stack = append(b.stack, builderEntry{level: level, section: sec})
}

func (b *builder) addText(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if b.text.Len() > 0 {
		b.text.WriteString("\n\n")
	}
	b.text.WriteString(t)
}

func (b *builder) addCode(src string) {
	b.flushText()
	b.appendCell(notebook.Cell{Type: notebook.CellCode, Source: src})
}

func (b *builder) flushText() {
	t := b.text.String()
	b.text.Reset()
	if t == "" {
		return
	}
	b.appendCell(notebook.Cell{Type: notebook.CellMarkdown, Source: t})
}

func (b *builder) appendCell(c notebook.Cell) {
	if len(b.stack) == 0 {
		return
	}
	top := b.stack[len(b.stack)-1].section
	top.Cells = append(top.Cells, c)
}

func (b *builder) finish() []*sectiontree.Section {
	b.flushText()
	return b.roots
}
