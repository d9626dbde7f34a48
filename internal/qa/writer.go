package qa

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Splits lists the dataset partitions in output order.
var Splits = []string{"train", "dev", "test"}

type record struct {
	ID             string   `json:"id"`
	Question       string   `json:"question"`
	Answer         string   `json:"answer"`
	Type           string   `json:"type"`
	SourceSections []string `json:"source_sections"`
	SourceChunks   []string `json:"source_chunks"`
}

// WriteDatasets groups items by split and writes each non-empty group as a
// newline-delimited JSON file at {outDir}/{split}/{split}.jsonl. Items with
// no split fall into train. Splits with zero records produce no file.
func WriteDatasets(items []Item, outDir string) error {
	groups := make(map[string][]record, len(Splits))
	for _, item := range items {
		split := item.Split
		if split == "" {
			split = "train"
		}
		groups[split] = append(groups[split], record{
			ID:             item.ID,
			Question:       item.Question,
			Answer:         item.Answer,
			Type:           item.Type,
			SourceSections: item.SourceSections,
			SourceChunks:   item.SourceChunks,
		})
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}

	for _, split := range Splits {
		records := groups[split]
		if len(records) == 0 {
			continue
		}
		splitDir := filepath.Join(outDir, split)
		if err := os.MkdirAll(splitDir, 0o755); err != nil {
			return fmt.Errorf("create split dir %s: %w", split, err)
		}
		if err := writeJSONL(filepath.Join(splitDir, split+".jsonl"), records); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONL(path string, records []record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create dataset file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range records {
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode qa record %s: %w", rec.ID, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write dataset file: %w", err)
	}
	return f.Close()
}
