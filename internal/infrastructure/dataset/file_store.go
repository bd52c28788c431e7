package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/riskibarqy/roster-wayback/internal/domain/roster"
)

// FileStore keeps the dataset as a JSON-lines file next to a small version
// file holding the rosters updated date as YYYY-MM-DD.
type FileStore struct {
	Path        string
	VersionPath string
}

func NewFileStore(path, versionPath string) *FileStore {
	return &FileStore{Path: path, VersionPath: versionPath}
}

// Load reads the dataset. A missing dataset file yields an empty dataset; a
// missing version file yields a dataset without a version.
func (s *FileStore) Load() (roster.Dataset, error) {
	records, err := s.readRecords()
	if err != nil {
		return roster.Dataset{}, err
	}

	updatedAt, err := s.readVersion()
	if err != nil {
		return roster.Dataset{}, err
	}

	return roster.DatasetFromRecords(records, updatedAt), nil
}

// WriteRecords replaces both files. Each file is written to a temporary
// sibling first and renamed into place.
func (s *FileStore) WriteRecords(ctx context.Context, records []roster.Record, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("dataset path is required")
	}

	if err := writeFileAtomic(s.Path, func(f *os.File) error {
		return WriteRecords(f, records)
	}); err != nil {
		return fmt.Errorf("write dataset %s: %w", s.Path, err)
	}

	if strings.TrimSpace(s.VersionPath) == "" {
		return nil
	}
	if err := writeFileAtomic(s.VersionPath, func(f *os.File) error {
		_, err := f.WriteString(updatedAt.UTC().Format(time.DateOnly) + "\n")
		return err
	}); err != nil {
		return fmt.Errorf("write dataset version %s: %w", s.VersionPath, err)
	}

	return nil
}

func (s *FileStore) readRecords() ([]roster.Record, error) {
	if strings.TrimSpace(s.Path) == "" {
		return nil, nil
	}

	f, err := os.Open(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset %s: %w", s.Path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("read dataset %s: %w", s.Path, err)
	}
	return records, nil
}

func (s *FileStore) readVersion() (*time.Time, error) {
	if strings.TrimSpace(s.VersionPath) == "" {
		return nil, nil
	}

	raw, err := os.ReadFile(s.VersionPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset version %s: %w", s.VersionPath, err)
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return nil, nil
	}
	v, err := time.Parse(time.DateOnly, text)
	if err != nil {
		return nil, fmt.Errorf("parse dataset version %q: %w", text, err)
	}
	return &v, nil
}

func writeFileAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
