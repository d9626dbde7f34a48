package rag

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cargohub/cargokb/internal/doc"
)

func testChunk(id, heading, text string) doc.Chunk {
	path := []string{"Kargo Politikaları", heading}
	return doc.Chunk{
		ChunkID:     id,
		DocumentID:  "doc",
		SectionPath: path,
		Text:        text,
		WordCount:   len(strings.Fields(text)),
		StartLine:   1,
		EndLine:     5,
		Metadata:    doc.Metadata{Heading: heading, Path: path},
	}
}

func testChunks() []doc.Chunk {
	return []doc.Chunk{
		testChunk("doc#teslimat#0", "Standart Teslimat Süresi",
			"Standart teslimat süresi 2-4 iş günüdür. Gönderiler kurye ile adrese teslim edilir."),
		testChunk("doc#iade#0", "Normal İade Koşulları",
			"Teslimattan sonra 14 gün içinde iade talebi oluşturabilirsiniz."),
		testChunk("doc#garanti#0", "Elektronik Ürün Garantisi",
			"Elektronik ürünlerde garanti süresi iki yıldır."),
	}
}

func TestIndex_BuildEmpty(t *testing.T) {
	ix := NewIndex(0)
	if err := ix.Build(nil); !errors.Is(err, ErrNoChunks) {
		t.Fatalf("expected ErrNoChunks, got %v", err)
	}
}

func TestIndex_RetrieveBeforeBuild(t *testing.T) {
	ix := NewIndex(0)
	if _, err := ix.Retrieve("teslimat süresi", 3); !errors.Is(err, ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
}

func TestIndex_RetrieveEmptyQuery(t *testing.T) {
	ix := NewIndex(0)
	if err := ix.Build(testChunks()); err != nil {
		t.Fatalf("build: %v", err)
	}
	results, err := ix.Retrieve("   ", 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if results != nil {
		t.Errorf("expected no results for blank query, got %d", len(results))
	}
}

func TestIndex_SelfMatchRanksFirst(t *testing.T) {
	chunks := testChunks()
	ix := NewIndex(0)
	if err := ix.Build(chunks); err != nil {
		t.Fatalf("build: %v", err)
	}

	for _, chunk := range chunks {
		results, err := ix.Retrieve(chunk.Text, 3)
		if err != nil {
			t.Fatalf("retrieve: %v", err)
		}
		if len(results) == 0 {
			t.Fatalf("no results for %s", chunk.ChunkID)
		}
		if results[0].Chunk.ChunkID != chunk.ChunkID {
			t.Errorf("query %s: expected self match first, got %s (%.3f)",
				chunk.ChunkID, results[0].Chunk.ChunkID, results[0].Score)
		}
	}
}

func TestIndex_RetrieveTopKBounds(t *testing.T) {
	ix := NewIndex(0)
	if err := ix.Build(testChunks()); err != nil {
		t.Fatalf("build: %v", err)
	}

	results, err := ix.Retrieve("teslimat", 10)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("topK above corpus size: expected 3 results, got %d", len(results))
	}

	results, err = ix.Retrieve("teslimat", 1)
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("results not sorted: %f before %f", results[i-1].Score, results[i].Score)
		}
	}
}

func TestIndex_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	ix := NewIndex(0)
	if err := ix.Build(testChunks()); err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := ix.Save(dir); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := NewIndex(0)
	if err := loaded.Load(filepath.Join(dir, ArtifactName)); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Chunks()) != 3 {
		t.Fatalf("expected 3 chunks after load, got %d", len(loaded.Chunks()))
	}

	want, err := ix.Retrieve("iade talebi", 1)
	if err != nil {
		t.Fatalf("retrieve original: %v", err)
	}
	got, err := loaded.Retrieve("iade talebi", 1)
	if err != nil {
		t.Fatalf("retrieve loaded: %v", err)
	}
	if got[0].Chunk.ChunkID != want[0].Chunk.ChunkID || got[0].Score != want[0].Score {
		t.Errorf("loaded index diverges: %s %.6f vs %s %.6f",
			got[0].Chunk.ChunkID, got[0].Score, want[0].Chunk.ChunkID, want[0].Score)
	}
}

func TestIndex_SaveBeforeBuild(t *testing.T) {
	ix := NewIndex(0)
	if err := ix.Save(t.TempDir()); !errors.Is(err, ErrNotFitted) {
		t.Fatalf("expected ErrNotFitted, got %v", err)
	}
}

func TestIndex_FailedBuildKeepsState(t *testing.T) {
	ix := NewIndex(0)
	if err := ix.Build(testChunks()); err != nil {
		t.Fatalf("build: %v", err)
	}

	// Digits only, so the vectorizer has nothing to fit.
	bad := []doc.Chunk{testChunk("doc#bad#0", "Sayılar", "123 456 789")}
	if err := ix.Build(bad); err == nil {
		t.Fatal("expected build to fail on tokenless corpus")
	}

	results, err := ix.Retrieve("teslimat süresi", 1)
	if err != nil {
		t.Fatalf("retrieve after failed build: %v", err)
	}
	if len(results) == 0 || results[0].Chunk.ChunkID != "doc#teslimat#0" {
		t.Errorf("previous index state was lost: %+v", results)
	}
}
