package doc

import (
	"fmt"
	"strings"
)

// ChunkConfig controls word-window chunking.
type ChunkConfig struct {
	MaxWords int // Window size in words.
	Overlap  int // Words shared between consecutive windows.
}

// DefaultChunkConfig returns the chunking defaults used across the pipeline.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		MaxWords: 200,
		Overlap:  40,
	}
}

// NormalizeTitle lowercases a section title and replaces spaces with
// underscores, for use inside chunk ids.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.ReplaceAll(title, " ", "_"))
}

// MakeChunks slides a word window over each section's content and emits one
// chunk per window. Windows advance by MaxWords-Overlap (minimum 1); the last
// window of a section may be shorter. Sections with empty content are skipped.
func MakeChunks(sections []Section, cfg ChunkConfig) []Chunk {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = 200
	}
	if cfg.Overlap < 0 {
		cfg.Overlap = 0
	}

	var chunks []Chunk
	for _, section := range sections {
		if section.Content == "" {
			continue
		}
		for index, text := range windowText(section.Content, cfg.MaxWords, cfg.Overlap) {
			chunks = append(chunks, Chunk{
				ChunkID:     fmt.Sprintf("%s#%s#%d", section.DocumentID, NormalizeTitle(section.Title), index),
				DocumentID:  section.DocumentID,
				SectionPath: section.Path,
				Text:        text,
				WordCount:   len(strings.Fields(text)),
				// Line span stays section-scoped for every window; downstream
				// consumers key on the section span, not per-window bounds.
				StartLine: section.StartLine,
				EndLine:   section.EndLine,
				Metadata: Metadata{
					Heading: section.Title,
					Path:    section.Path,
				},
			})
		}
	}
	return chunks
}

// windowText splits text into whitespace-delimited words and joins them back
// into overlapping windows of at most maxWords words each.
func windowText(text string, maxWords, overlap int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := maxWords - overlap
	if step < 1 {
		step = 1
	}

	var out []string
	for start := 0; start < len(words); start += step {
		end := start + maxWords
		if end > len(words) {
			end = len(words)
		}
		out = append(out, strings.Join(words[start:end], " "))
		if end >= len(words) {
			break
		}
	}
	return out
}
