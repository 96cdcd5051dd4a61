package results

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
)

const runMapping = `{
	"mappings": {
		"properties": {
			"run_id": { "type": "keyword" },
			"seed": { "type": "long" },
			"num_decks": { "type": "integer" },
			"rounds_planned": { "type": "integer" },
			"rounds_played": { "type": "integer" },
			"started_at": { "type": "date" },
			"completed_at": { "type": "date" },
			"strategies": { "type": "keyword" },
			"agents": {
				"type": "nested",
				"properties": {
					"agent_id": { "type": "keyword" },
					"strategy": { "type": "keyword" },
					"starting_bankroll": { "type": "long" },
					"final_bankroll": { "type": "long" },
					"profit": { "type": "long" },
					"profit_per_round": { "type": "double" },
					"rounds_played": { "type": "integer" },
					"hands_played": { "type": "integer" },
					"wins": { "type": "integer" },
					"losses": { "type": "integer" },
					"pushes": { "type": "integer" },
					"blackjacks": { "type": "integer" },
					"busts": { "type": "integer" },
					"splits": { "type": "integer" },
					"doubles": { "type": "integer" },
					"total_wagered": { "type": "long" },
					"broke": { "type": "boolean" },
					"broke_round": { "type": "integer" }
				}
			}
		}
	}
}`

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL         string
	Username    string
	Password    string
	IndexPrefix string
	Transport   http.RoundTripper // Optional; the client's default transport when nil
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:         "http://localhost:9200",
		IndexPrefix: "shoesim",
	}
}

// ElasticsearchRepository keeps runs in a base repository and also indexes them
// into Elasticsearch for dashboards and ad-hoc queries
type ElasticsearchRepository struct {
	baseRepo  Repository
	client    *elasticsearch.Client
	config    *ElasticsearchConfig
	runsIndex string
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
		Transport: config.Transport,
	}

	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	if config.IndexPrefix == "" {
		config.IndexPrefix = "shoesim"
	}

	repo := &ElasticsearchRepository{
		baseRepo:  baseRepo,
		client:    client,
		config:    config,
		runsIndex: config.IndexPrefix + "_runs",
	}

	if err := repo.initIndices(ctx); err != nil {
		return nil, fmt.Errorf("error initializing indices: %w", err)
	}

	return repo, nil
}

// initIndices creates the runs index if it doesn't exist
func (r *ElasticsearchRepository) initIndices(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.runsIndex}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if runs index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: r.runsIndex,
		Body:  bytes.NewReader([]byte(runMapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating runs index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating runs index: %s", res.String())
	}
	return nil
}

// SaveRun saves to the base repository first, then indexes the run
func (r *ElasticsearchRepository) SaveRun(ctx context.Context, run *entities.RunRecord) error {
	if err := r.baseRepo.SaveRun(ctx, run); err != nil {
		return err
	}
	return r.IndexRun(ctx, run)
}

// IndexRun writes the run document into Elasticsearch
func (r *ElasticsearchRepository) IndexRun(ctx context.Context, run *entities.RunRecord) error {
	body, err := json.Marshal(NewESRunDocument(run))
	if err != nil {
		return types.WrapError(types.ErrInternalError, "failed to encode run document", err)
	}

	res, err := r.client.Index(
		r.runsIndex,
		bytes.NewReader(body),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(run.ID),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to index run %s", run.ID), err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return types.NewGameError(types.ErrDatabaseError, fmt.Sprintf("failed to index run %s: %s", run.ID, res.String()))
	}
	return nil
}

// Reindex copies every run held by the base repository into the index and
// returns how many were written. Documents are keyed by run ID, so reindexing is
// idempotent.
func (r *ElasticsearchRepository) Reindex(ctx context.Context) (int, error) {
	runs, err := r.baseRepo.ListRuns(ctx, "", 0)
	if err != nil {
		return 0, err
	}

	for i, run := range runs {
		if err := r.IndexRun(ctx, run); err != nil {
			return i, err
		}
	}
	return len(runs), nil
}

// SearchRuns queries the index directly, most recently completed first
func (r *ElasticsearchRepository) SearchRuns(ctx context.Context, strategy string, limit int) ([]*ESRunDocument, error) {
	if limit <= 0 {
		limit = 10
	}

	query := map[string]interface{}{
		"sort": []map[string]interface{}{
			{"completed_at": map[string]interface{}{"order": "desc"}},
		},
	}
	if strategy != "" {
		query["query"] = map[string]interface{}{
			"term": map[string]interface{}{"strategies": strategy},
		}
	} else {
		query["query"] = map[string]interface{}{"match_all": map[string]interface{}{}}
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(query); err != nil {
		return nil, types.WrapError(types.ErrInternalError, "failed to encode search query", err)
	}

	res, err := r.client.Search(
		r.client.Search.WithContext(ctx),
		r.client.Search.WithIndex(r.runsIndex),
		r.client.Search.WithBody(&buf),
		r.client.Search.WithSize(limit),
	)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to search runs", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, types.NewGameError(types.ErrDatabaseError, fmt.Sprintf("failed to search runs: %s", res.String()))
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source ESRunDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to decode search response", err)
	}

	docs := make([]*ESRunDocument, 0, len(parsed.Hits.Hits))
	for i := range parsed.Hits.Hits {
		docs = append(docs, &parsed.Hits.Hits[i].Source)
	}
	return docs, nil
}

// GetRun reads from the base repository
func (r *ElasticsearchRepository) GetRun(ctx context.Context, id string) (*entities.RunRecord, error) {
	return r.baseRepo.GetRun(ctx, id)
}

// ListRuns reads from the base repository
func (r *ElasticsearchRepository) ListRuns(ctx context.Context, strategy string, limit int) ([]*entities.RunRecord, error) {
	return r.baseRepo.ListRuns(ctx, strategy, limit)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
