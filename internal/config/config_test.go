package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "CARGOKB_API_KEY", "CARGO_DB_PATH", "CORPUS_DIR", "INDEX_DIR",
		"CHUNK_MAX_WORDS", "CHUNK_OVERLAP", "TFIDF_MAX_FEATURES",
		"RETRIEVAL_TOP_K", "RETRIEVAL_MIN_SCORE",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8085" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.CorpusDir != "docs/source_corpus" || cfg.IndexDir != "data/index" {
		t.Errorf("paths: got %q, %q", cfg.CorpusDir, cfg.IndexDir)
	}
	if cfg.ChunkMaxWords != 200 || cfg.ChunkOverlap != 40 {
		t.Errorf("chunking: got %d, %d", cfg.ChunkMaxWords, cfg.ChunkOverlap)
	}
	if cfg.TopK != 3 || cfg.MinScore != 0.1 || cfg.MaxFeatures != 4096 {
		t.Errorf("retrieval: got %d, %f, %d", cfg.TopK, cfg.MinScore, cfg.MaxFeatures)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHUNK_MAX_WORDS", "150")
	t.Setenv("RETRIEVAL_MIN_SCORE", "0.25")
	t.Setenv("RETRIEVAL_TOP_K", "not-a-number")

	cfg := Load()
	if cfg.Port != "9090" {
		t.Errorf("port: got %q", cfg.Port)
	}
	if cfg.ChunkMaxWords != 150 {
		t.Errorf("chunk max words: got %d", cfg.ChunkMaxWords)
	}
	if cfg.MinScore != 0.25 {
		t.Errorf("min score: got %f", cfg.MinScore)
	}
	// Unparseable values fall back to the default.
	if cfg.TopK != 3 {
		t.Errorf("top k: got %d", cfg.TopK)
	}
}

func TestLoadRejectsNonsenseValues(t *testing.T) {
	t.Setenv("CHUNK_MAX_WORDS", "-5")
	t.Setenv("CHUNK_OVERLAP", "-1")
	t.Setenv("RETRIEVAL_MIN_SCORE", "-0.5")

	cfg := Load()
	if cfg.ChunkMaxWords != 200 || cfg.ChunkOverlap != 40 || cfg.MinScore != 0.1 {
		t.Errorf("negative values not clamped: %d, %d, %f",
			cfg.ChunkMaxWords, cfg.ChunkOverlap, cfg.MinScore)
	}
}

func TestValidate(t *testing.T) {
	if err := (Config{}).Validate(); err == nil {
		t.Error("expected error without api key")
	}
	if err := (Config{APIKey: "secret"}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
