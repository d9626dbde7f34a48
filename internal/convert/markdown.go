package convert

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownConverter normalizes existing markdown through the goldmark AST:
// setext headings become '#'-run headings and block text is re-emitted as
// plain paragraphs, so every corpus file shares one heading syntax.
type MarkdownConverter struct{}

func (c *MarkdownConverter) Convert(r io.Reader, filename string) (string, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	parsed := goldmark.New().Parser().Parse(text.NewReader(src))

	var out emitter
	for n := parsed.FirstChild(); n != nil; n = n.NextSibling() {
		if heading, ok := n.(*ast.Heading); ok {
			out.heading(heading.Level, string(heading.Text(src)))
			continue
		}
		out.paragraph(extractText(n, src))
	}
	return out.String(), nil
}

// Heading is one entry of a corpus outline.
type Heading struct {
	Level int
	Title string
}

// Outline reports the heading structure of a markdown document, in order.
func Outline(src []byte) []Heading {
	parsed := goldmark.New().Parser().Parse(text.NewReader(src))

	var headings []Heading
	ast.Walk(parsed, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if heading, ok := n.(*ast.Heading); ok {
			headings = append(headings, Heading{Level: heading.Level, Title: string(heading.Text(src))})
		}
		return ast.WalkContinue, nil
	})
	return headings
}

// extractText gets the plain text content of a goldmark AST node, including
// the raw lines of block nodes such as code fences.
func extractText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		} else {
			buf.WriteString(extractText(c, src))
		}
	}
	return strings.TrimSpace(buf.String())
}
