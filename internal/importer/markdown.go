package importer

import (
	"bytes"
	"io"
	"strings"

	"github.com/dgallion1/nbweave/internal/sectiontree"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownImporter handles Markdown files using goldmark. Headings open
// sections; fenced and indented code blocks become code cells; everything
// else accumulates into markdown cells.
type MarkdownImporter struct{}

func (p *MarkdownImporter) Parse(r io.Reader, filename string) ([]*sectiontree.Section, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	var b builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			b.openSection(node.Level, string(node.Text(src)))
		case *ast.FencedCodeBlock:
			b.addCode(blockText(node, src))
		case *ast.CodeBlock:
			b.addCode(blockText(node, src))
		default:
			if t := extractText(n, src); t != "" {
				b.addText(t)
			}
		}
	}
	return b.finish(), nil
}

// blockText concatenates a block node's raw source lines, without the
// trailing newline so cell sources match hand-written notebooks.
func blockText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return strings.TrimRight(buf.String(), "\n")
}

// extractText gets the text content of a goldmark AST node. Nodes with
// children yield their inline text; childless blocks fall back to their
// raw source lines. Collecting both would duplicate paragraph text.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.FirstChild() == nil {
		if n.Type() == ast.TypeBlock {
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(src))
			}
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			// Recurse for nested inlines and list items.
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
