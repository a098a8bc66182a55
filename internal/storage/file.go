package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSlot stores the slot payload in <dir>/<name>.json.
// Writes go to a temporary file that is renamed over the slot.
type FileSlot struct {
	dir  string
	name string
}

var _ Slot = (*FileSlot)(nil)

func NewFileSlot(dir, name string) (*FileSlot, error) {
	if err := ValidateSlotName(name); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileSlot{dir: dir, name: name}, nil
}

func (s *FileSlot) Name() string {
	return s.name
}

// Path returns the file backing the slot.
func (s *FileSlot) Path() string {
	return filepath.Join(s.dir, s.name+".json")
}

func (s *FileSlot) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %s: %w", s.name, err)
	}
	return data, nil
}

func (s *FileSlot) Write(ctx context.Context, payload []byte) error {
	tmp, err := os.CreateTemp(s.dir, s.name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.Path()); err != nil {
		return fmt.Errorf("replace slot %s: %w", s.name, err)
	}

	slog.DebugContext(ctx, "Slot written to file", "slot", s.name, "path", s.Path(), "bytes", len(payload))
	return nil
}

func (s *FileSlot) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("stat data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %s is not a directory", s.dir)
	}
	return nil
}

func (s *FileSlot) Close() error {
	return nil
}
