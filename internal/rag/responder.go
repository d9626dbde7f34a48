package rag

import (
	"fmt"
	"strings"
)

const (
	// DefaultTopK is the number of candidates fetched per question.
	DefaultTopK = 3
	// DefaultMinScore is the confidence gate below which no answer is given.
	DefaultMinScore = 0.1
	// snippetRunes caps the template answer's context snippet.
	snippetRunes = 400
)

// GenerateFunc is an externally supplied generation capability. It receives
// the question, the retrieved context texts and one citation label per
// context, and returns the final answer text.
type GenerateFunc func(question string, contexts, citations []string) string

// Reply is a confident answer from the responder. A nil *Reply means the
// question could not be answered from the corpus; that is distinct from an
// empty answer string.
type Reply struct {
	Text      string
	Citations []string
	Score     float64
}

// Responder gates retrieval-augmented answers behind a confidence threshold.
// When a generation function is present it produces the answer; otherwise a
// deterministic template built from the top chunks is used.
type Responder struct {
	index    *Index
	minScore float64
	generate GenerateFunc
}

// NewResponder wires a responder to an index. minScore <= 0 selects the
// default gate; generate may be nil to always use the template fallback.
func NewResponder(index *Index, minScore float64, generate GenerateFunc) *Responder {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Responder{index: index, minScore: minScore, generate: generate}
}

// Answer retrieves topK candidates for the question and answers from them.
// It returns (nil, nil) when retrieval comes back empty or the best score is
// below the confidence gate.
func (r *Responder) Answer(question string, topK int) (*Reply, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	results, err := r.index.Retrieve(question, topK)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 || results[0].Score < r.minScore {
		return nil, nil
	}

	contexts := make([]string, len(results))
	citations := make([]string, len(results))
	for i, res := range results {
		contexts[i] = res.Chunk.Text
		citations[i] = citationLabel(res.Chunk.SectionPath)
	}

	if r.generate != nil {
		return &Reply{
			Text:      r.generate(question, contexts, citations),
			Citations: citations,
			Score:     results[0].Score,
		}, nil
	}
	return &Reply{
		Text:      templateAnswer(question, contexts, citations),
		Citations: citations,
		Score:     results[0].Score,
	}, nil
}

// citationLabel joins the last two components of a section path.
func citationLabel(path []string) string {
	if len(path) > 2 {
		path = path[len(path)-2:]
	}
	return strings.Join(path, " → ")
}

// templateAnswer composes the deterministic fallback: the question, the first
// snippetRunes characters of the joined contexts, and a citation list.
func templateAnswer(question string, contexts, citations []string) string {
	snippet := []rune(strings.Join(contexts, " "))
	if len(snippet) > snippetRunes {
		snippet = snippet[:snippetRunes]
	}
	return fmt.Sprintf(
		"Soru: %s\nYanıt (RAG): %s\nKaynak: %s",
		question,
		strings.TrimSpace(string(snippet)),
		strings.Join(citations, "; "),
	)
}
