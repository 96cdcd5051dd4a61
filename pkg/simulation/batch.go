package simulation

import (
	"context"
	"fmt"

	"github.com/fadedpez/shoesim/internal/randutil"
	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/repositories/results"
	"golang.org/x/sync/errgroup"
)

// RunBatch plays runs independent simulations, at most workers at a time. Run i
// uses seed base+i where base is the configured seed (or a time-based one). Each
// record is saved to repo when repo is not nil. Records come back in run order.
func RunBatch(ctx context.Context, config Config, runs, workers int, repo results.Repository) ([]*entities.RunRecord, error) {
	if runs < 1 {
		return nil, types.NewGameError(types.ErrInvalidConfig, "runs must be at least 1")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	base := randutil.Seed(config.Seed)
	records := make([]*entities.RunRecord, runs)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := 0; i < runs; i++ {
		runConfig := config
		runConfig.Seed = base + int64(i)

		g.Go(func() error {
			record, err := New(runConfig).Run(ctx)
			if err != nil {
				return err
			}
			if repo != nil {
				if err := repo.SaveRun(ctx, record); err != nil {
					return fmt.Errorf("saving run %s: %w", record.ID, err)
				}
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}
