package doc

import "strings"

// Section is a heading-delimited span of text extracted from a corpus document.
type Section struct {
	DocumentID string
	Title      string
	Level      int
	Path       []string // Heading hierarchy, outermost first, including this title.
	Content    string
	StartLine  int // 0-based line offset into the source file.
	EndLine    int
}

// FullTitle renders the heading path as a single breadcrumb string.
func (s Section) FullTitle() string {
	return strings.Join(s.Path, " / ")
}

// Metadata carries the structural context a chunk keeps from its section.
type Metadata struct {
	Heading string   `json:"heading"`
	Path    []string `json:"path"`
}

// Chunk is a retrieval unit cut from one Section.
type Chunk struct {
	ChunkID     string   `json:"chunk_id"`
	DocumentID  string   `json:"document_id"`
	SectionPath []string `json:"section_path"`
	Text        string   `json:"text"`
	WordCount   int      `json:"word_count"`
	StartLine   int      `json:"start_line"`
	EndLine     int      `json:"end_line"`
	Metadata    Metadata `json:"metadata"`
}
