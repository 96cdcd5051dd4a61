package main

import (
	"context"
	"io"
	"testing"

	"github.com/fadedpez/shoesim/internal/config"
	"github.com/fadedpez/shoesim/internal/logging"
	"github.com/fadedpez/shoesim/pkg/repositories/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRepositoryPicksBackend(t *testing.T) {
	testCases := []struct {
		storage string
		want    interface{}
	}{
		{config.StorageMemory, &results.MemoryRepository{}},
		{config.StorageSQLite, &results.SQLiteRepository{}},
		{config.StorageFile, &results.FileRepository{}},
	}

	for _, tc := range testCases {
		t.Run(tc.storage, func(t *testing.T) {
			cfg := &config.Config{StorageType: tc.storage, DataDir: t.TempDir()}

			repo, err := openRepository(context.Background(), cfg, logging.NewWithWriter(io.Discard, logging.ERROR))

			require.NoError(t, err)
			defer repo.Close()
			assert.IsType(t, tc.want, repo)
		})
	}
}
