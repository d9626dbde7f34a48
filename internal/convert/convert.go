// Package convert turns mixed-format source documents into the
// marker-heading markdown files the segmenter consumes. Each converter emits
// normalized markdown: '#'-run headings whose depth mirrors the source
// structure, with plain text blocks between them.
package convert

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Converter renders one source format as corpus markdown.
type Converter interface {
	Convert(r io.Reader, filename string) (string, error)
}

// SupportedExtensions lists source formats the prep step accepts.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".csv":      true,
	".html":     true,
	".htm":      true,
	".pdf":      true,
	".docx":     true,
}

// ForFile returns the converter for a filename.
func ForFile(filename string) (Converter, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".md", ".markdown":
		return &MarkdownConverter{}, nil
	case ".txt":
		return &TextConverter{}, nil
	case ".csv":
		return &CSVConverter{}, nil
	case ".html", ".htm":
		return &HTMLConverter{}, nil
	case ".pdf":
		return &PDFConverter{}, nil
	case ".docx":
		return &DOCXConverter{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", filepath.Ext(filename))
	}
}

// IsSupportedExtension checks whether a filename can be converted.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ConvertDir converts every supported file under srcDir into a .md file with
// the same stem under dstDir, creating dstDir as needed. It returns the
// number of files written.
func ConvertDir(srcDir, dstDir string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, fmt.Errorf("read source dir: %w", err)
	}
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return 0, fmt.Errorf("create corpus dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsSupportedExtension(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	written := 0
	for _, name := range names {
		conv, err := ForFile(name)
		if err != nil {
			continue
		}
		f, err := os.Open(filepath.Join(srcDir, name))
		if err != nil {
			return written, fmt.Errorf("open %s: %w", name, err)
		}
		markdown, err := conv.Convert(f, name)
		f.Close()
		if err != nil {
			return written, fmt.Errorf("convert %s: %w", name, err)
		}
		if strings.TrimSpace(markdown) == "" {
			continue
		}

		stem := strings.TrimSuffix(name, filepath.Ext(name))
		target := filepath.Join(dstDir, stem+".md")
		if err := os.WriteFile(target, []byte(markdown), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written++
	}
	return written, nil
}

// emitter accumulates normalized corpus markdown.
type emitter struct {
	sb strings.Builder
}

func (e *emitter) heading(level int, title string) {
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	if e.sb.Len() > 0 {
		e.sb.WriteString("\n")
	}
	e.sb.WriteString(strings.Repeat("#", level))
	e.sb.WriteString(" ")
	e.sb.WriteString(title)
	e.sb.WriteString("\n\n")
}

func (e *emitter) paragraph(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	e.sb.WriteString(text)
	e.sb.WriteString("\n\n")
}

func (e *emitter) String() string {
	return e.sb.String()
}
