package doc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteChunkCache writes chunks to path as newline-delimited JSON, one object
// per chunk, creating parent directories as needed.
func WriteChunkCache(chunks []Chunk, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chunk cache dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chunk cache: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, chunk := range chunks {
		data, err := json.Marshal(chunk)
		if err != nil {
			return fmt.Errorf("encode chunk %s: %w", chunk.ChunkID, err)
		}
		w.Write(data)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write chunk cache: %w", err)
	}
	return f.Close()
}

// ReadChunkCache reads a newline-delimited JSON chunk cache written by
// WriteChunkCache. Blank lines are ignored.
func ReadChunkCache(path string) ([]Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chunk cache: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var chunks []Chunk
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var chunk Chunk
		if err := json.Unmarshal([]byte(line), &chunk); err != nil {
			return nil, fmt.Errorf("decode chunk cache line %d: %w", len(chunks)+1, err)
		}
		chunks = append(chunks, chunk)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read chunk cache: %w", err)
	}
	return chunks, nil
}
