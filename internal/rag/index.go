package rag

import (
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cargohub/cargokb/internal/doc"
)

// ArtifactName is the filename of the serialized index inside its directory.
const ArtifactName = "tfidf_index.gob"

// ErrNoChunks is returned when an index build receives no chunks.
var ErrNoChunks = errors.New("chunk list is empty")

// Result pairs a retrieved chunk with its cosine similarity to the query.
type Result struct {
	Chunk doc.Chunk
	Score float64
}

// Index holds a fitted vectorizer and the indexed chunks with one vector per
// chunk, aligned by position. Build and Load replace all three fields as a
// unit; a failed build leaves previous state untouched.
type Index struct {
	vectorizer *Vectorizer
	chunks     []doc.Chunk
	vectors    [][]float64
}

// NewIndex creates an empty index. maxFeatures <= 0 selects the default
// vocabulary bound.
func NewIndex(maxFeatures int) *Index {
	return &Index{vectorizer: NewVectorizer(maxFeatures)}
}

// Chunks returns the indexed chunks in index order.
func (ix *Index) Chunks() []doc.Chunk { return ix.chunks }

// Build fits the vector space over the chunk texts and stores per-chunk
// vectors aligned to chunk order.
func (ix *Index) Build(chunks []doc.Chunk) error {
	if len(chunks) == 0 {
		return ErrNoChunks
	}

	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}

	vectorizer := NewVectorizer(ix.vectorizer.MaxFeatures)
	if err := vectorizer.Fit(texts); err != nil {
		return fmt.Errorf("fit vectorizer: %w", err)
	}
	vectors := make([][]float64, len(chunks))
	for i, text := range texts {
		vec, err := vectorizer.Transform(text)
		if err != nil {
			return fmt.Errorf("encode chunk %s: %w", chunks[i].ChunkID, err)
		}
		vectors[i] = vec
	}

	ix.vectorizer = vectorizer
	ix.chunks = append([]doc.Chunk(nil), chunks...)
	ix.vectors = vectors
	return nil
}

type artifact struct {
	Chunks     []doc.Chunk
	Vectorizer *Vectorizer
	Vectors    [][]float64
}

// Save serializes the chunks, fitted vectorizer and vector matrix into a
// single artifact under dir, creating the directory if needed. The format is
// opaque and only guaranteed to round-trip through Load.
func (ix *Index) Save(dir string) error {
	if !ix.vectorizer.Fitted() {
		return ErrNotFitted
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, ArtifactName))
	if err != nil {
		return fmt.Errorf("create index artifact: %w", err)
	}
	defer f.Close()

	payload := artifact{
		Chunks:     ix.chunks,
		Vectorizer: ix.vectorizer,
		Vectors:    ix.vectors,
	}
	if err := gob.NewEncoder(f).Encode(payload); err != nil {
		return fmt.Errorf("encode index artifact: %w", err)
	}
	return f.Close()
}

// Load reads an artifact written by Save and replaces the index state.
// Chunks, vectorizer and vectors are swapped in together, never partially.
func (ix *Index) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open index artifact: %w", err)
	}
	defer f.Close()

	var payload artifact
	if err := gob.NewDecoder(f).Decode(&payload); err != nil {
		return fmt.Errorf("decode index artifact: %w", err)
	}
	if payload.Vectorizer == nil || len(payload.Chunks) != len(payload.Vectors) {
		return fmt.Errorf("index artifact %s is inconsistent", path)
	}

	ix.vectorizer = payload.Vectorizer
	ix.chunks = payload.Chunks
	ix.vectors = payload.Vectors
	return nil
}

// Retrieve projects the query into the fitted space and returns the topK most
// similar chunks by cosine similarity, best first. Ties keep original chunk
// order so results are deterministic. An empty query yields no results and
// no error.
func (ix *Index) Retrieve(query string, topK int) ([]Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if ix.vectors == nil {
		return nil, ErrNotFitted
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	queryVec, err := ix.vectorizer.Transform(query)
	if err != nil {
		return nil, err
	}

	scores := make([]Result, len(ix.chunks))
	for i, vec := range ix.vectors {
		scores[i] = Result{Chunk: ix.chunks[i], Score: dot(queryVec, vec)}
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Score > scores[j].Score })

	if topK > len(scores) {
		topK = len(scores)
	}
	return scores[:topK], nil
}

// dot is the cosine similarity for L2-normalized vectors.
func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
