// kbctl is the offline toolbox for the cargo knowledge base: corpus
// conversion, chunk preparation, QA dataset generation, index building and
// ad-hoc queries.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/cargohub/cargokb/internal/convert"
	"github.com/cargohub/cargokb/internal/doc"
	"github.com/cargohub/cargokb/internal/qa"
	"github.com/cargohub/cargokb/internal/rag"
	"github.com/cargohub/cargokb/internal/store"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "convert":
		err = runConvert(os.Args[2:])
	case "prepare":
		err = runPrepare(os.Args[2:])
	case "qa":
		err = runQA(os.Args[2:])
	case "index":
		err = runIndex(os.Args[2:])
	case "query":
		err = runQuery(os.Args[2:])
	case "seed":
		err = runSeed(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: kbctl <command> [flags]

commands:
  convert   convert mixed-format source documents into the markdown corpus
  prepare   segment and chunk the corpus into a chunk cache
  qa        generate QA datasets (and the chunk cache) from the corpus
  index     build the TF-IDF index from a chunk cache
  query     answer a question against a saved index
  seed      create and seed the cargo database`)
}

func runConvert(args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	source := fs.String("source", "docs/raw", "directory of source documents")
	dest := fs.String("dest", "docs/source_corpus", "corpus output directory")
	fs.Parse(args)

	n, err := convert.ConvertDir(*source, *dest)
	if err != nil {
		return err
	}
	fmt.Printf("converted %d documents into %s\n", n, *dest)
	return nil
}

func runPrepare(args []string) error {
	fs := flag.NewFlagSet("prepare", flag.ExitOnError)
	source := fs.String("source", "docs/source_corpus", "corpus directory")
	output := fs.String("output", "data/index/chunks.jsonl", "chunk cache path")
	maxWords := fs.Int("max-words", 200, "chunk window size in words")
	overlap := fs.Int("overlap", 40, "chunk window overlap in words")
	fs.Parse(args)

	sections, err := doc.LoadDocuments(*source)
	if err != nil {
		return err
	}
	chunks := doc.MakeChunks(sections, doc.ChunkConfig{MaxWords: *maxWords, Overlap: *overlap})
	if err := doc.WriteChunkCache(chunks, *output); err != nil {
		return err
	}
	fmt.Printf("wrote %d chunks from %d sections to %s\n", len(chunks), len(sections), *output)
	return nil
}

func runQA(args []string) error {
	fs := flag.NewFlagSet("qa", flag.ExitOnError)
	docs := fs.String("docs", "docs/source_corpus", "corpus directory")
	output := fs.String("output", "data/qa", "dataset output directory")
	chunkCache := fs.String("chunk-file", "data/index/chunks.jsonl", "chunk cache path")
	fs.Parse(args)

	items, chunks, err := qa.GenerateQuestions(*docs)
	if err != nil {
		return err
	}
	if err := qa.WriteDatasets(items, *output); err != nil {
		return err
	}

	if _, err := os.Stat(*chunkCache); os.IsNotExist(err) {
		if err := doc.WriteChunkCache(chunks, *chunkCache); err != nil {
			return err
		}
	}

	fmt.Printf("generated %d qa items and %d chunks under %s\n", len(items), len(chunks), *output)
	return nil
}

func runIndex(args []string) error {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	chunkFile := fs.String("chunk-file", "data/index/chunks.jsonl", "chunk cache path")
	outputDir := fs.String("output-dir", "data/index", "index artifact directory")
	maxFeatures := fs.Int("max-features", rag.DefaultMaxFeatures, "vocabulary bound")
	fs.Parse(args)

	chunks, err := doc.ReadChunkCache(*chunkFile)
	if err != nil {
		return err
	}
	index := rag.NewIndex(*maxFeatures)
	if err := index.Build(chunks); err != nil {
		return err
	}
	if err := index.Save(*outputDir); err != nil {
		return err
	}
	fmt.Printf("index saved: %s\n", filepath.Join(*outputDir, rag.ArtifactName))
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	indexPath := fs.String("index", filepath.Join("data/index", rag.ArtifactName), "index artifact path")
	topK := fs.Int("top-k", rag.DefaultTopK, "candidates to retrieve")
	minScore := fs.Float64("min-score", rag.DefaultMinScore, "confidence gate")
	fs.Parse(args)

	if fs.NArg() == 0 {
		return fmt.Errorf("query requires a question argument")
	}
	question := fs.Arg(0)

	index := rag.NewIndex(0)
	if err := index.Load(*indexPath); err != nil {
		return err
	}
	responder := rag.NewResponder(index, *minScore, nil)
	reply, err := responder.Answer(question, *topK)
	if err != nil {
		return err
	}
	if reply == nil {
		fmt.Println("no confident answer")
		return nil
	}
	fmt.Println(reply.Text)
	return nil
}

func runSeed(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	dbPath := fs.String("db", "cargo_database.db", "sqlite database path")
	fs.Parse(args)

	st, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Seed(context.Background()); err != nil {
		return err
	}
	fmt.Printf("seeded demo data into %s\n", *dbPath)
	return nil
}
