package simulation

import (
	"context"
	"fmt"

	"github.com/coder/quartz"
	"github.com/fadedpez/shoesim/internal/logging"
	"github.com/fadedpez/shoesim/internal/randutil"
	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/services/blackjack"
	"github.com/fadedpez/shoesim/pkg/services/strategy"
	"github.com/google/uuid"
)

// AgentSpec seats Count agents playing one strategy
type AgentSpec struct {
	Strategy string
	Count    int
}

// Config holds configuration for running simulations
type Config struct {
	Rounds           int
	NumDecks         int
	StartingBankroll int64
	BaseBet          int64
	Agents           []AgentSpec
	Seed             int64 // Zero picks a time-based seed, recorded on the run

	Table    *strategy.Table    // Defaults to strategy.DefaultTable()
	Registry *strategy.Registry // Defaults to strategy.DefaultRegistry()
	Logger   *logging.Logger
	Clock    quartz.Clock

	// OnRound observes each finished round. Batches call it from several goroutines.
	OnRound func(run string, record *entities.RoundRecord)
}

// Validate checks the configuration for values a run cannot start with
func (c *Config) Validate() error {
	if c.Rounds < 1 {
		return types.NewGameError(types.ErrInvalidConfig, "rounds must be at least 1")
	}
	if c.NumDecks < 1 {
		return types.NewGameError(types.ErrInvalidConfig, "decks must be at least 1")
	}
	if c.StartingBankroll <= 0 || c.BaseBet <= 0 {
		return types.NewGameError(types.ErrInvalidConfig, "bankroll and base bet must be positive")
	}
	if len(c.Agents) == 0 {
		return types.NewGameError(types.ErrInvalidConfig, "at least one agent is required")
	}
	for _, spec := range c.Agents {
		if spec.Count < 1 {
			return types.NewGameError(types.ErrInvalidConfig, fmt.Sprintf("agent count for %s must be at least 1", spec.Strategy))
		}
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Table == nil {
		c.Table = strategy.DefaultTable()
	}
	if c.Registry == nil {
		c.Registry = strategy.DefaultRegistry()
	}
	if c.Logger == nil {
		c.Logger = logging.Default
	}
	if c.Clock == nil {
		c.Clock = quartz.NewReal()
	}
	return c
}

// Simulator plays one seeded run of a single table
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config.withDefaults()}
}

// Run plays the configured rounds and returns the run record. Every random
// decision comes from the run's seed, so the same seed replays the same run.
func (s *Simulator) Run(ctx context.Context) (*entities.RunRecord, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	seed := randutil.Seed(s.config.Seed)
	run := &entities.RunRecord{
		ID:            uuid.NewString(),
		Seed:          seed,
		NumDecks:      s.config.NumDecks,
		RoundsPlanned: s.config.Rounds,
		StartedAt:     s.config.Clock.Now(),
	}
	logger := s.config.Logger.With("run", run.ID[:8])

	agents, err := s.seatAgents()
	if err != nil {
		return nil, err
	}

	shoe := entities.NewShoe(s.config.NumDecks, randutil.New(seed))
	game := blackjack.NewGame(shoe, agents, logger)

	logger.Debug("Starting %d rounds with %d agents, seed %d", s.config.Rounds, len(agents), seed)
	records, err := game.Run(ctx, s.config.Rounds)
	if s.config.OnRound != nil {
		for _, record := range records {
			s.config.OnRound(run.ID, record)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("run %s: %w", run.ID, err)
	}

	run.RoundsPlayed = game.Round()
	run.CompletedAt = s.config.Clock.Now()
	run.Agents = game.Summaries()

	logger.Info("Finished %d of %d rounds", run.RoundsPlayed, run.RoundsPlanned)
	return run, nil
}

// seatAgents builds agents in spec order, numbering seats from 1
func (s *Simulator) seatAgents() ([]blackjack.Agent, error) {
	var agents []blackjack.Agent
	for _, spec := range s.config.Agents {
		for i := 0; i < spec.Count; i++ {
			id := fmt.Sprintf("%s-%d", spec.Strategy, len(agents)+1)
			agent, err := s.config.Registry.NewAgent(id, spec.Strategy, s.config.Table,
				s.config.StartingBankroll, s.config.BaseBet)
			if err != nil {
				return nil, err
			}
			agents = append(agents, agent)
		}
	}
	return agents, nil
}
