package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
)

// FileRepository keeps runs in memory and rewrites a JSON file after every save
type FileRepository struct {
	mu   sync.Mutex
	path string
	mem  *MemoryRepository
}

// NewFileRepository opens path, loading any runs already stored there
func NewFileRepository(path string) (*FileRepository, error) {
	r := &FileRepository{
		path: path,
		mem:  NewMemoryRepository(),
	}

	if err := r.load(); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to load runs from %s", path), err)
	}

	return r, nil
}

// SaveRun stores the run and persists the file. The run is forgotten again if
// the file cannot be written.
func (r *FileRepository) SaveRun(ctx context.Context, run *entities.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.mem.SaveRun(ctx, run); err != nil {
		return err
	}

	if err := r.save(); err != nil {
		r.mem.remove(run.ID)
		return types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to persist run %s", run.ID), err)
	}

	return nil
}

// GetRun retrieves a copy of one run
func (r *FileRepository) GetRun(ctx context.Context, id string) (*entities.RunRecord, error) {
	return r.mem.GetRun(ctx, id)
}

// ListRuns retrieves recent runs, optionally filtered by strategy
func (r *FileRepository) ListRuns(ctx context.Context, strategy string, limit int) ([]*entities.RunRecord, error) {
	return r.mem.ListRuns(ctx, strategy, limit)
}

// Close is a no-op, every save is already on disk
func (r *FileRepository) Close() error {
	return nil
}

func (r *FileRepository) load() error {
	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var runs []*entities.RunRecord
	if err := json.Unmarshal(data, &runs); err != nil {
		return err
	}

	for _, run := range runs {
		if err := r.mem.SaveRun(context.Background(), run); err != nil {
			return err
		}
	}
	return nil
}

func (r *FileRepository) save() error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(r.mem.snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal runs: %w", err)
	}

	// Write then rename so a crash never leaves a truncated file
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return os.Rename(tmp, r.path)
}
