package results

import (
	"context"

	"github.com/fadedpez/shoesim/pkg/entities"
)

//go:generate mockgen -source=$GOFILE -destination=mock/mock.go -package=mock_results

// Repository stores the records of finished simulation runs
type Repository interface {
	// SaveRun stores a finished run. Saving the same run ID twice is an error.
	SaveRun(ctx context.Context, run *entities.RunRecord) error
	GetRun(ctx context.Context, id string) (*entities.RunRecord, error)

	// ListRuns returns the most recently completed runs first. An empty strategy
	// matches every run; otherwise only runs seating that strategy are returned.
	// A limit of zero or less returns everything.
	ListRuns(ctx context.Context, strategy string, limit int) ([]*entities.RunRecord, error)

	// Close closes any resources used by the repository
	Close() error
}
