package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// Repository defines persistence operations for run reports.
type Repository interface {
	Load(ctx context.Context) (*Report, error)
	Save(ctx context.Context, report *Report) error
}

// FileRepository keeps the latest report in a YAML file.
type FileRepository struct {
	// path is the report location on disk.
	path string
	// mu serializes access to the file.
	mu sync.Mutex
}

// ErrNotFound is returned when no report has been written yet.
var ErrNotFound = errors.New("report not found")

// NewFileRepository creates a repository for the report at path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{
		path: filepath.Clean(path),
	}
}

// Load reads the report from disk.
func (r *FileRepository) Load(_ context.Context) (*Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read report file: %w", err)
	}

	var report Report
	if err = yaml.Unmarshal(contents, &report); err != nil {
		return nil, fmt.Errorf("decode report file: %w", err)
	}

	return &report, nil
}

// Save atomically replaces the report on disk.
func (r *FileRepository) Save(_ context.Context, report *Report) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	return writeAtomically(r.path, data)
}
