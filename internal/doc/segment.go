package doc

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// ErrFolderNotFound is returned when the corpus directory does not exist.
var ErrFolderNotFound = errors.New("document folder not found")

// NormalizeDocumentID derives a document id from a corpus filename:
// the file stem, lowercased, with spaces replaced by underscores.
func NormalizeDocumentID(filename string) string {
	stem := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return strings.ToLower(strings.ReplaceAll(stem, " ", "_"))
}

// LoadDocuments parses every .md file under dir, in lexicographic order,
// and returns the extracted sections in document order.
func LoadDocuments(dir string) ([]Section, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrFolderNotFound, dir)
		}
		return nil, fmt.Errorf("read document folder: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.ToLower(filepath.Ext(e.Name())) != ".md" {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	var sections []Section
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read document %s: %w", name, err)
		}
		sections = append(sections, ParseSections(string(data), NormalizeDocumentID(name))...)
	}
	return sections, nil
}

type pathEntry struct {
	level int
	title string
}

// ParseSections walks text line by line and cuts it into sections at heading
// boundaries. A heading is a line starting with a run of '#'; the run length
// is the heading depth. A section is emitted when a heading closes the body
// accumulated under a non-empty heading path and the trimmed body is non-empty.
func ParseSections(text, documentID string) []Section {
	lines := splitLines(text)

	var (
		sections     []Section
		bodyLines    []string
		path         []pathEntry
		currentLevel int
		startLine    int
	)

	flush := func(endIndex int) {
		if len(path) == 0 || len(bodyLines) == 0 {
			bodyLines = nil
			return
		}
		content := strings.TrimSpace(strings.Join(bodyLines, "\n"))
		bodyLines = nil
		if content == "" {
			return
		}
		titles := make([]string, len(path))
		for i, p := range path {
			titles[i] = p.title
		}
		sections = append(sections, Section{
			DocumentID: documentID,
			Title:      path[len(path)-1].title,
			Level:      currentLevel,
			Path:       titles,
			Content:    content,
			StartLine:  startLine,
			EndLine:    endIndex,
		})
	}

	for idx, raw := range lines {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)

		if strings.HasPrefix(line, "#") {
			level := len(line) - len(strings.TrimLeft(line, "#"))
			title := strings.TrimSpace(line[level:])
			if level < 1 {
				// Marker line without a computable depth: dropped entirely,
				// neither a boundary nor body text. Documented quirk.
				continue
			}

			flush(idx)

			for len(path) > 0 && path[len(path)-1].level >= level {
				path = path[:len(path)-1]
			}
			path = append(path, pathEntry{level: level, title: title})
			currentLevel = level
			startLine = idx + 1
			continue
		}

		bodyLines = append(bodyLines, line)
	}

	flush(len(lines))
	return sections
}

// splitLines splits on newlines without producing a trailing empty line for
// newline-terminated files. Carriage returns are stripped by the caller's
// right-trim.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
