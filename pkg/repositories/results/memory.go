package results

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
)

// MemoryRepository implements Repository interface with in-memory storage
type MemoryRepository struct {
	mu sync.RWMutex
	// Map of run ID to run record
	runs map[string]*entities.RunRecord
	// Run IDs in the order they were saved
	order []string
}

// NewMemoryRepository creates a new in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		runs: make(map[string]*entities.RunRecord),
	}
}

// SaveRun stores a copy of the run
func (r *MemoryRepository) SaveRun(ctx context.Context, run *entities.RunRecord) error {
	if run == nil || run.ID == "" {
		return types.NewGameError(types.ErrInvalidArgument, "run record needs an ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.runs[run.ID]; exists {
		return types.NewGameError(types.ErrDatabaseError, fmt.Sprintf("run %s already stored", run.ID))
	}

	r.runs[run.ID] = copyRun(run)
	r.order = append(r.order, run.ID)
	return nil
}

// GetRun retrieves a copy of one run
func (r *MemoryRepository) GetRun(ctx context.Context, id string) (*entities.RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	run, exists := r.runs[id]
	if !exists {
		return nil, types.NewGameError(types.ErrNotFound, fmt.Sprintf("run %s not found", id))
	}
	return copyRun(run), nil
}

// ListRuns retrieves recent runs, optionally filtered by strategy
func (r *MemoryRepository) ListRuns(ctx context.Context, strategy string, limit int) ([]*entities.RunRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := []*entities.RunRecord{}
	for _, id := range slices.Backward(r.order) {
		if run := r.runs[id]; seatsStrategy(run, strategy) {
			runs = append(runs, copyRun(run))
		}
	}

	newestFirst(runs)
	return applyLimit(runs, limit), nil
}

// snapshot returns the stored runs in the order they were saved
func (r *MemoryRepository) snapshot() []*entities.RunRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	runs := make([]*entities.RunRecord, 0, len(r.order))
	for _, id := range r.order {
		runs = append(runs, r.runs[id])
	}
	return runs
}

func (r *MemoryRepository) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.runs, id)
	r.order = slices.DeleteFunc(r.order, func(saved string) bool { return saved == id })
}

// Close is a no-op for memory repository since there are no resources to close
func (r *MemoryRepository) Close() error {
	return nil
}
