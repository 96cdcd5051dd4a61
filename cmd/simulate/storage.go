package main

import (
	"context"

	"github.com/fadedpez/shoesim/internal/config"
	"github.com/fadedpez/shoesim/internal/logging"
	"github.com/fadedpez/shoesim/pkg/repositories/results"
)

// openRepository picks the configured backend and wraps it with Elasticsearch
// indexing when ES_URL is set
func openRepository(ctx context.Context, cfg *config.Config, logger *logging.Logger) (results.Repository, error) {
	var repo results.Repository
	switch cfg.StorageType {
	case config.StorageSQLite:
		sqliteRepo, err := results.NewSQLiteRepository(cfg.DatabasePath(), logger)
		if err != nil {
			return nil, err
		}
		logger.Debug("Storing runs in %s", cfg.DatabasePath())
		repo = sqliteRepo
	case config.StorageFile:
		fileRepo, err := results.NewFileRepository(cfg.RunsFilePath())
		if err != nil {
			return nil, err
		}
		logger.Debug("Storing runs in %s", cfg.RunsFilePath())
		repo = fileRepo
	default:
		repo = results.NewMemoryRepository()
	}

	if cfg.ESURL == "" {
		return repo, nil
	}

	esRepo, err := results.NewElasticsearchRepository(ctx, repo, &results.ElasticsearchConfig{
		URL:         cfg.ESURL,
		Username:    cfg.ESUsername,
		Password:    cfg.ESPassword,
		IndexPrefix: cfg.ESIndexPrefix,
	})
	if err != nil {
		repo.Close()
		return nil, err
	}
	logger.Debug("Indexing runs into %s", cfg.ESURL)
	return esRepo, nil
}
