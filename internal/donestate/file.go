package donestate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const doneFilename = "done_files.json"

// FileBackend keeps the list as a JSON array in <dir>/done_files.json. The
// directory is created on the first write.
type FileBackend struct {
	dir string
}

func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

func (b *FileBackend) Path() string {
	return filepath.Join(b.dir, doneFilename)
}

func (b *FileBackend) Read(_ context.Context) ([]string, error) {
	content, err := os.ReadFile(b.Path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read done state: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(content, &ids); err != nil {
		return nil, fmt.Errorf("parse done state: %w", err)
	}
	return ids, nil
}

func (b *FileBackend) Write(_ context.Context, ids []string) error {
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	content, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("encode done state: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, doneFilename+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write done state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close done state: %w", err)
	}
	if err := os.Rename(tmpName, b.Path()); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace done state: %w", err)
	}
	return nil
}
