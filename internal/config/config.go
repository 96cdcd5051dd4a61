package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/joho/godotenv"
)

// Storage backends understood by Load
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
	StorageFile   = "file"
)

// Config holds all configuration for the simulator
type Config struct {
	// Table
	NumDecks         int
	Rounds           int
	StartingBankroll int64
	BaseBet          int64
	Seed             int64

	// Strategy data
	StrategyFile string // Optional HCL override of the built-in tables

	// Storage
	StorageType   string // "memory", "sqlite" or "file"
	DataDir       string
	ESURL         string // Elasticsearch is enabled when set
	ESUsername    string
	ESPassword    string
	ESIndexPrefix string

	LogLevel string
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Only return error if file exists but couldn't be loaded
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg := &Config{
		StrategyFile:  os.Getenv("STRATEGY_FILE"),
		StorageType:   getEnvWithDefault("STORAGE_TYPE", StorageMemory),
		DataDir:       getEnvWithDefault("DATA_DIR", filepath.Join(wd, "data")),
		ESURL:         os.Getenv("ES_URL"),
		ESUsername:    os.Getenv("ES_USERNAME"),
		ESPassword:    os.Getenv("ES_PASSWORD"),
		ESIndexPrefix: getEnvWithDefault("ES_INDEX_PREFIX", "shoesim"),
		LogLevel:      getEnvWithDefault("LOG_LEVEL", "info"),
	}

	if cfg.NumDecks, err = getIntWithDefault("NUM_DECKS", 4); err != nil {
		return nil, err
	}
	if cfg.Rounds, err = getIntWithDefault("ROUNDS", 40); err != nil {
		return nil, err
	}
	bankroll, err := getIntWithDefault("STARTING_BANKROLL", 2000)
	if err != nil {
		return nil, err
	}
	cfg.StartingBankroll = int64(bankroll)
	baseBet, err := getIntWithDefault("BASE_BET", 20)
	if err != nil {
		return nil, err
	}
	cfg.BaseBet = int64(baseBet)
	seed, err := getIntWithDefault("SEED", 0)
	if err != nil {
		return nil, err
	}
	cfg.Seed = int64(seed)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for values the simulator cannot run with
func (c *Config) Validate() error {
	if c.NumDecks < 1 {
		return types.NewGameError(types.ErrInvalidConfig, "NUM_DECKS must be at least 1")
	}
	if c.Rounds < 1 {
		return types.NewGameError(types.ErrInvalidConfig, "ROUNDS must be at least 1")
	}
	if c.StartingBankroll <= 0 {
		return types.NewGameError(types.ErrInvalidConfig, "STARTING_BANKROLL must be positive")
	}
	if c.BaseBet <= 0 {
		return types.NewGameError(types.ErrInvalidConfig, "BASE_BET must be positive")
	}
	switch c.StorageType {
	case StorageMemory, StorageSQLite, StorageFile:
	default:
		return types.NewGameError(types.ErrInvalidConfig, fmt.Sprintf("unknown STORAGE_TYPE %q", c.StorageType))
	}
	return nil
}

// DatabasePath returns the SQLite file used when StorageType is sqlite
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "shoesim.db")
}

// RunsFilePath returns the JSON file used when StorageType is file
func (c *Config) RunsFilePath() string {
	return filepath.Join(c.DataDir, "runs.json")
}

// getEnvWithDefault returns environment variable value or default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntWithDefault(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, types.WrapError(types.ErrInvalidConfig, fmt.Sprintf("%s must be an integer", key), err)
	}
	return n, nil
}
