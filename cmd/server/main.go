package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cargohub/cargokb/internal/api"
	"github.com/cargohub/cargokb/internal/chat"
	"github.com/cargohub/cargokb/internal/config"
	"github.com/cargohub/cargokb/internal/doc"
	"github.com/cargohub/cargokb/internal/rag"
	"github.com/cargohub/cargokb/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Error("open cargo store", "error", err)
		os.Exit(1)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := st.EnsureSchema(ctx); err != nil {
		log.Error("ensure schema", "error", err)
		os.Exit(1)
	}

	index, err := openIndex(cfg, log)
	if err != nil {
		log.Error("open index", "error", err)
		os.Exit(1)
	}

	responder := rag.NewResponder(index, cfg.MinScore, nil)
	chatSvc := chat.NewService(st, responder, log)
	srv := api.NewServer(chatSvc, responder, st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		st.Close()
	}()

	log.Info("starting cargokb", "port", cfg.Port, "chunks", len(index.Chunks()))
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

// openIndex loads the saved index artifact, falling back to building (and
// saving) a fresh one from the corpus directory.
func openIndex(cfg config.Config, log *slog.Logger) (*rag.Index, error) {
	index := rag.NewIndex(cfg.MaxFeatures)
	artifactPath := filepath.Join(cfg.IndexDir, rag.ArtifactName)

	if err := index.Load(artifactPath); err == nil {
		log.Info("index loaded", "path", artifactPath, "chunks", len(index.Chunks()))
		return index, nil
	}

	log.Info("index artifact missing, building from corpus", "corpus", cfg.CorpusDir)
	sections, err := doc.LoadDocuments(cfg.CorpusDir)
	if err != nil {
		return nil, err
	}
	chunks := doc.MakeChunks(sections, doc.ChunkConfig{
		MaxWords: cfg.ChunkMaxWords,
		Overlap:  cfg.ChunkOverlap,
	})
	if err := index.Build(chunks); err != nil {
		return nil, err
	}
	if err := index.Save(cfg.IndexDir); err != nil {
		log.Warn("save index artifact", "error", err)
	}
	return index, nil
}
