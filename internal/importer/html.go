package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/nbweave/internal/sectiontree"
	"golang.org/x/net/html"
)

// HTMLImporter handles HTML files. h1-h6 open sections, pre blocks become
// code cells, and paragraph-level text accumulates into markdown cells.
type HTMLImporter struct{}

func (p *HTMLImporter) Parse(r io.Reader, filename string) ([]*sectiontree.Section, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var b builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if level := headingLevel(n.Data); level > 0 {
				b.openSection(level, textContent(n))
				return // Don't recurse into heading children (already extracted text).
			}

			switch n.Data {
			// Skip non-content elements.
			case "script", "style", "nav", "footer", "header":
				return
			case "pre":
				b.addCode(strings.Trim(rawTextContent(n), "\n"))
				return
			case "p", "li", "td", "blockquote":
				b.addText(textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}
	return b.finish(), nil
}

func headingLevel(tag string) int {
	switch tag {
	case "h1":
		return 1
	case "h2":
		return 2
	case "h3":
		return 3
	case "h4":
		return 4
	case "h5":
		return 5
	case "h6":
		return 6
	}
	return 0
}

func textContent(n *html.Node) string {
	return strings.TrimSpace(rawTextContent(n))
}

func rawTextContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return buf.String()
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
