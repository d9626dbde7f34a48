package convert

import (
	"bufio"
	"io"
	"strings"
)

// TextConverter passes plain text through as headingless corpus markdown,
// collapsing blank-line runs between paragraphs.
type TextConverter struct{}

func (c *TextConverter) Convert(r io.Reader, filename string) (string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var out emitter
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			out.paragraph(current.String())
			current.Reset()
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	flush()
	return out.String(), nil
}
