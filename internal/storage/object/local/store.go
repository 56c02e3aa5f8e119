package local

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store implements object.Store on the local filesystem for dev runs.
// Metadata lands in a sidecar JSON file next to the document.
type Store struct {
	baseDir string
}

// New creates a new local document store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes the document and a <name>.meta.json sidecar.
func (s *Store) Put(ctx context.Context, fileName, contentType string, metadata map[string]string, r io.Reader) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	clean := filepath.Clean(fileName)
	if strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return 0, fmt.Errorf("invalid file name")
	}

	fullPath := filepath.Join(s.baseDir, clean)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return 0, fmt.Errorf("mkdir: %w", err)
	}

	f, err := os.OpenFile(fullPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	written, err := io.Copy(f, r)
	if err != nil {
		return 0, fmt.Errorf("write body: %w", err)
	}

	sidecar := struct {
		ContentType string            `json:"contentType"`
		Metadata    map[string]string `json:"metadata"`
	}{ContentType: contentType, Metadata: metadata}

	sidecarData, err := json.MarshalIndent(sidecar, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("marshal metadata: %w", err)
	}
	if err := os.WriteFile(fullPath+".meta.json", sidecarData, 0o644); err != nil {
		return 0, fmt.Errorf("write metadata: %w", err)
	}

	return written, nil
}
