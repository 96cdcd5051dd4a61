package main

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fadedpez/shoesim/internal/config"
	"github.com/fadedpez/shoesim/internal/logging"
	"github.com/fadedpez/shoesim/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

type CLI struct {
	Create  CreateCmd  `cmd:"" help:"Create a new numbered migration file"`
	Migrate MigrateCmd `cmd:"" help:"Apply pending migrations"`
}

type CreateCmd struct {
	Description string `arg:"" help:"What the migration does, e.g. \"add run tags\""`
	Dir         string `help:"Directory to store migrations" default:"pkg/db/migrations/sql" type:"path"`
}

func (c *CreateCmd) Run(logger *logging.Logger) error {
	filePath, err := migrations.CreateMigration(c.Dir, c.Description, time.Now())
	if err != nil {
		return fmt.Errorf("creating migration: %w", err)
	}

	if err := appendSQLiteExamples(filePath); err != nil {
		return err
	}

	logger.Info("Created migration file %s", filePath)
	return nil
}

type MigrateCmd struct {
	DB  string `help:"Path to the SQLite database (defaults to DATA_DIR/shoesim.db)" type:"path"`
	Dir string `help:"Read migrations from this directory instead of the built-in set" type:"existingdir"`
}

func (c *MigrateCmd) Run(logger *logging.Logger) error {
	dbPath := c.DB
	if dbPath == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		dbPath = cfg.DatabasePath()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	var source fs.FS
	if c.Dir != "" {
		source = os.DirFS(c.Dir)
	}

	count, err := migrations.NewMigrator(db, source, logger).MigrateUp()
	if err != nil {
		return fmt.Errorf("applying migrations: %w", err)
	}

	logger.Info("Applied %d migrations to %s", count, dbPath)
	return nil
}

const sqliteExamples = `
-- SQLite Examples:

-- Create a new table
-- CREATE TABLE IF NOT EXISTS table_name (
--   id INTEGER PRIMARY KEY AUTOINCREMENT,
--   name TEXT NOT NULL,
--   created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
-- );

-- Add a column to existing table
-- ALTER TABLE table_name ADD COLUMN new_column TEXT;

-- Create an index
-- CREATE INDEX IF NOT EXISTS idx_table_column ON table_name(column_name);

-- Your migration SQL goes below this line:

`

func appendSQLiteExamples(filePath string) error {
	f, err := os.OpenFile(filePath, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening migration file: %w", err)
	}
	defer f.Close()

	_, err = f.WriteString(sqliteExamples)
	return err
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("migration"),
		kong.Description("Manage the simulator's SQLite schema"),
		kong.UsageOnError(),
	)

	logger := logging.NewLogger(logging.INFO)
	if err := kctx.Run(logger); err != nil {
		logger.LogError(err)
		os.Exit(1)
	}
}
