package results

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fadedpez/shoesim/internal/logging"
	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/db/migrations"
	"github.com/fadedpez/shoesim/pkg/entities"
	_ "github.com/mattn/go-sqlite3"
)

const (
	insertRunSQL = `
		INSERT INTO runs (
			id, seed, num_decks, rounds_planned, rounds_played, started_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`

	insertAgentResultSQL = `
		INSERT INTO agent_results (
			run_id, position, agent_id, strategy, starting_bankroll, final_bankroll,
			rounds_played, hands_played, wins, losses, pushes, blackjacks, busts,
			splits, doubles, total_wagered, broke_round
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectRunColumns = `id, seed, num_decks, rounds_planned, rounds_played, started_at, completed_at`

	selectAgentResultsSQL = `
		SELECT agent_id, strategy, starting_bankroll, final_bankroll, rounds_played,
			hands_played, wins, losses, pushes, blackjacks, busts, splits, doubles,
			total_wagered, broke_round
		FROM agent_results
		WHERE run_id = ?
		ORDER BY position`
)

// SQLiteRepository implements the Repository interface using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database at dbPath and applies pending migrations.
// ":memory:" gives a private in-memory database.
func NewSQLiteRepository(dbPath string, logger *logging.Logger) (*SQLiteRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("error creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	// One connection: sqlite serializes writers and each :memory: connection is its own database
	db.SetMaxOpenConns(1)

	if _, err := migrations.NewMigrator(db, nil, logger).MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// SaveRun stores the run and its agent summaries in one transaction
func (r *SQLiteRepository) SaveRun(ctx context.Context, run *entities.RunRecord) error {
	if run == nil || run.ID == "" {
		return types.NewGameError(types.ErrInvalidArgument, "run record needs an ID")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to begin transaction", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, insertRunSQL,
		run.ID, run.Seed, run.NumDecks, run.RoundsPlanned, run.RoundsPlayed,
		run.StartedAt.UTC(), run.CompletedAt.UTC())
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to insert run %s", run.ID), err)
	}

	for position, a := range run.Agents {
		_, err = tx.ExecContext(ctx, insertAgentResultSQL,
			run.ID, position, a.AgentID, a.Strategy, a.StartingBankroll, a.FinalBankroll,
			a.RoundsPlayed, a.HandsPlayed, a.Wins, a.Losses, a.Pushes, a.Blackjacks, a.Busts,
			a.Splits, a.Doubles, a.TotalWagered, a.BrokeRound)
		if err != nil {
			return types.WrapError(types.ErrDatabaseError, fmt.Sprintf("failed to insert agent %s", a.AgentID), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to commit run", err)
	}
	return nil
}

// GetRun retrieves one run with its agents
func (r *SQLiteRepository) GetRun(ctx context.Context, id string) (*entities.RunRecord, error) {
	query := `SELECT ` + selectRunColumns + ` FROM runs WHERE id = ?`

	run, err := scanRun(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, types.NewGameError(types.ErrNotFound, fmt.Sprintf("run %s not found", id))
	}
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to load run", err)
	}

	if err := r.loadAgents(ctx, run); err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns retrieves recent runs, optionally filtered by strategy
func (r *SQLiteRepository) ListRuns(ctx context.Context, strategy string, limit int) ([]*entities.RunRecord, error) {
	var query strings.Builder
	query.WriteString(`SELECT ` + selectRunColumns + ` FROM runs`)
	args := []interface{}{}
	if strategy != "" {
		query.WriteString(` WHERE id IN (SELECT run_id FROM agent_results WHERE strategy = ?)`)
		args = append(args, strategy)
	}
	query.WriteString(` ORDER BY completed_at DESC, rowid DESC`)
	if limit > 0 {
		query.WriteString(` LIMIT ?`)
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, types.WrapError(types.ErrDatabaseError, "failed to list runs", err)
	}

	runs := []*entities.RunRecord{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, types.WrapError(types.ErrDatabaseError, "failed to scan run", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, types.WrapError(types.ErrDatabaseError, "failed to list runs", err)
	}
	// Release the only connection before the per-run agent queries
	rows.Close()

	for _, run := range runs {
		if err := r.loadAgents(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*entities.RunRecord, error) {
	run := &entities.RunRecord{}
	err := row.Scan(&run.ID, &run.Seed, &run.NumDecks, &run.RoundsPlanned, &run.RoundsPlayed,
		&run.StartedAt, &run.CompletedAt)
	if err != nil {
		return nil, err
	}
	return run, nil
}

func (r *SQLiteRepository) loadAgents(ctx context.Context, run *entities.RunRecord) error {
	rows, err := r.db.QueryContext(ctx, selectAgentResultsSQL, run.ID)
	if err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load agents", err)
	}
	defer rows.Close()

	run.Agents = []*entities.AgentSummary{}
	for rows.Next() {
		a := &entities.AgentSummary{}
		err := rows.Scan(&a.AgentID, &a.Strategy, &a.StartingBankroll, &a.FinalBankroll,
			&a.RoundsPlayed, &a.HandsPlayed, &a.Wins, &a.Losses, &a.Pushes, &a.Blackjacks,
			&a.Busts, &a.Splits, &a.Doubles, &a.TotalWagered, &a.BrokeRound)
		if err != nil {
			return types.WrapError(types.ErrDatabaseError, "failed to scan agent", err)
		}
		run.Agents = append(run.Agents, a)
	}
	if err := rows.Err(); err != nil {
		return types.WrapError(types.ErrDatabaseError, "failed to load agents", err)
	}
	return nil
}
