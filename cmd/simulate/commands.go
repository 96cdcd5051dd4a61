package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/repositories/results"
	"github.com/fadedpez/shoesim/pkg/scheduler"
	"github.com/fadedpez/shoesim/pkg/services/statistics"
	"github.com/fadedpez/shoesim/pkg/services/strategy"
	"github.com/fadedpez/shoesim/pkg/simulation"
)

type RunCmd struct {
	Rounds       int      `help:"Rounds per run (0 uses ROUNDS)"`
	Decks        int      `help:"Decks in the shoe (0 uses NUM_DECKS)"`
	Bankroll     int64    `help:"Starting bankroll per agent (0 uses STARTING_BANKROLL)"`
	BaseBet      int64    `help:"Base bet (0 uses BASE_BET)"`
	Seed         int64    `help:"RNG seed; 0 uses SEED, then a time seed"`
	Agents       []string `help:"Seats as strategy[=count]" default:"unskilled,basic,counting"`
	Runs         int      `help:"Independent runs to simulate" default:"1"`
	Workers      int      `help:"Runs played concurrently" default:"4"`
	StrategyFile string   `help:"HCL strategy overrides (empty uses STRATEGY_FILE)" type:"path"`
	CSV          string   `help:"Write one row per agent per run to this file" type:"path"`
}

func (c *RunCmd) Run(g *Globals) error {
	cfg := g.Config
	if c.Rounds > 0 {
		cfg.Rounds = c.Rounds
	}
	if c.Decks > 0 {
		cfg.NumDecks = c.Decks
	}
	if c.Bankroll > 0 {
		cfg.StartingBankroll = c.Bankroll
	}
	if c.BaseBet > 0 {
		cfg.BaseBet = c.BaseBet
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if c.StrategyFile != "" {
		cfg.StrategyFile = c.StrategyFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	registry := strategy.DefaultRegistry()
	specs, err := parseAgents(c.Agents, registry)
	if err != nil {
		return err
	}

	table, err := strategy.LoadTableHCL(cfg.StrategyFile)
	if err != nil {
		return err
	}

	repo, err := openRepository(g.Ctx, cfg, g.Logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	simConfig := simulation.Config{
		Rounds:           cfg.Rounds,
		NumDecks:         cfg.NumDecks,
		StartingBankroll: cfg.StartingBankroll,
		BaseBet:          cfg.BaseBet,
		Agents:           specs,
		Seed:             cfg.Seed,
		Table:            table,
		Registry:         registry,
		Logger:           g.Logger,
		OnRound: func(run string, record *entities.RoundRecord) {
			g.Logger.Debug("%s %s", run[:8], describeRound(record))
		},
	}

	runs, err := simulation.RunBatch(g.Ctx, simConfig, c.Runs, c.Workers, repo)
	if err != nil {
		return err
	}

	for _, run := range runs {
		printRun(os.Stdout, run)
	}

	if c.CSV != "" {
		if err := writeCSV(c.CSV, runs); err != nil {
			return err
		}
		g.Logger.Info("Wrote %d runs to %s", len(runs), c.CSV)
	}

	comparison, err := statistics.NewService(repo, nil).CompareStrategies(g.Ctx, len(runs))
	if err != nil {
		return err
	}
	printComparison(os.Stdout, comparison)
	return nil
}

type CompareCmd struct {
	Limit int    `help:"Most recent runs to include (0 for all)" default:"0"`
	CSV   string `help:"Also export the runs as CSV to this file" type:"path"`
}

func (c *CompareCmd) Run(g *Globals) error {
	repo, err := openRepository(g.Ctx, g.Config, g.Logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	comparison, err := statistics.NewService(repo, nil).CompareStrategies(g.Ctx, c.Limit)
	if err != nil {
		return err
	}
	if comparison.RunsAnalyzed == 0 {
		g.Logger.Warn("No stored runs found; memory storage keeps nothing between invocations")
	}

	if c.CSV != "" {
		runs, err := repo.ListRuns(g.Ctx, "", c.Limit)
		if err != nil {
			return err
		}
		if err := writeCSV(c.CSV, runs); err != nil {
			return err
		}
	}

	printComparison(os.Stdout, comparison)
	return nil
}

type ReindexCmd struct {
	Every time.Duration `help:"Keep running and reindex on this interval (0 reindexes once)"`
}

func (c *ReindexCmd) Run(g *Globals) error {
	if g.Config.ESURL == "" {
		return types.NewGameError(types.ErrInvalidConfig, "reindex needs ES_URL")
	}

	repo, err := openRepository(g.Ctx, g.Config, g.Logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	esRepo, ok := repo.(*results.ElasticsearchRepository)
	if !ok {
		return types.NewGameError(types.ErrInternalError, "storage is not indexed")
	}

	reindex := func(ctx context.Context) error {
		count, err := esRepo.Reindex(ctx)
		if err != nil {
			return err
		}
		g.Logger.Info("Reindexed %d runs", count)
		return nil
	}

	if c.Every <= 0 {
		return reindex(g.Ctx)
	}

	s := scheduler.NewScheduler(nil, g.Logger)
	s.AddTask("reindex", c.Every, reindex)
	s.Start(g.Ctx)
	<-g.Ctx.Done()
	s.Stop()
	return nil
}

type StrategiesCmd struct{}

func (c *StrategiesCmd) Run(g *Globals) error {
	for _, name := range strategy.DefaultRegistry().List() {
		fmt.Println(name)
	}
	return nil
}

// parseAgents turns "basic=2" style seat specs into agent specs, checking each
// strategy against the registry
func parseAgents(values []string, registry *strategy.Registry) ([]simulation.AgentSpec, error) {
	specs := make([]simulation.AgentSpec, 0, len(values))
	for _, value := range values {
		name, countText, hasCount := strings.Cut(strings.TrimSpace(value), "=")
		count := 1
		if hasCount {
			n, err := strconv.Atoi(countText)
			if err != nil || n < 1 {
				return nil, types.NewGameError(types.ErrInvalidConfig, fmt.Sprintf("bad agent count in %q", value))
			}
			count = n
		}
		if _, err := registry.Get(name); err != nil {
			return nil, err
		}
		specs = append(specs, simulation.AgentSpec{Strategy: name, Count: count})
	}
	if len(specs) == 0 {
		return nil, types.NewGameError(types.ErrInvalidConfig, "at least one agent is required")
	}
	return specs, nil
}

func describeRound(record *entities.RoundRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "round %d tc %.2f dealer %v (%d)", record.Number, record.TrueCount, record.DealerCards, record.DealerScore)
	if record.Reshuffled {
		b.WriteString(" [reshuffled]")
	}
	for _, agent := range record.Agents {
		fmt.Fprintf(&b, " | %s bet %d", agent.AgentID, agent.Bet)
		for _, hand := range agent.Hands {
			fmt.Fprintf(&b, " %v %v %s", hand.Cards, hand.Actions, hand.Outcome)
		}
		fmt.Fprintf(&b, " => %+d (%d)", agent.Delta, agent.BankrollAfter)
	}
	if len(record.Dropped) > 0 {
		fmt.Fprintf(&b, " | broke: %s", strings.Join(record.Dropped, ", "))
	}
	return b.String()
}

func printRun(w io.Writer, run *entities.RunRecord) {
	fmt.Fprintf(w, "Run %s (seed %d): %d of %d rounds\n", run.ID, run.Seed, run.RoundsPlayed, run.RoundsPlanned)
	for _, a := range run.Agents {
		if a.WentBroke() {
			fmt.Fprintf(w, "  %s went broke in round %d\n", a.AgentID, a.BrokeRound)
			continue
		}
		fmt.Fprintf(w, "  %s finished with bankroll %d (%+d)\n", a.AgentID, a.FinalBankroll, a.TotalProfit())
	}
}

func printComparison(w io.Writer, comparison *statistics.Comparison) {
	fmt.Fprintf(w, "\nStrategy comparison over %d runs\n", comparison.RunsAnalyzed)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tAGENTS\tMEAN PROFIT\tMEAN BANKROLL\tPROFIT/ROUND\tWIN%\tLOSS%\tPUSH%\tBROKE\tRUINED\tNET")
	for _, s := range comparison.Strategies {
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%.2f\t%.3f\t%.1f\t%.1f\t%.1f\t%d\t%.3f\t%d\n",
			s.Strategy, s.Agents, s.MeanProfit, s.MeanFinalBankroll, s.MeanProfitPerRound,
			s.WinRate*100, s.LossRate*100, s.PushRate*100, s.BrokeCount, s.RuinProportion, s.NetProfit)
	}
	tw.Flush()
}

func writeCSV(path string, runs []*entities.RunRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()
	return statistics.WriteAgentCSV(f, runs)
}
