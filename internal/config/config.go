package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all runtime settings, loaded from environment variables.
type Config struct {
	Port string

	// Auth
	APIKey string

	// Cargo record store
	DBPath string

	// Knowledge base
	CorpusDir string
	IndexDir  string

	// Chunking defaults
	ChunkMaxWords int
	ChunkOverlap  int

	// Retrieval
	MaxFeatures int
	TopK        int
	MinScore    float64
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8085"),

		APIKey: os.Getenv("CARGOKB_API_KEY"),

		DBPath: envOr("CARGO_DB_PATH", "cargo_database.db"),

		CorpusDir: envOr("CORPUS_DIR", "docs/source_corpus"),
		IndexDir:  envOr("INDEX_DIR", "data/index"),

		ChunkMaxWords: envInt("CHUNK_MAX_WORDS", 200),
		ChunkOverlap:  envInt("CHUNK_OVERLAP", 40),

		MaxFeatures: envInt("TFIDF_MAX_FEATURES", 4096),
		TopK:        envInt("RETRIEVAL_TOP_K", 3),
		MinScore:    envFloat("RETRIEVAL_MIN_SCORE", 0.1),
	}

	if cfg.ChunkMaxWords <= 0 {
		cfg.ChunkMaxWords = 200
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = 40
	}
	if cfg.MaxFeatures <= 0 {
		cfg.MaxFeatures = 4096
	}
	if cfg.TopK <= 0 {
		cfg.TopK = 3
	}
	if cfg.MinScore <= 0 {
		cfg.MinScore = 0.1
	}

	return cfg
}

// Validate checks settings the server cannot run without.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("CARGOKB_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
