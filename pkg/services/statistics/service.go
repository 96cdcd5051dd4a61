package statistics

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/coder/quartz"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/repositories/results"
)

// RuinFraction marks an agent as ruined when it ends below this share of its
// starting bankroll, whether or not it was dropped for going broke
const RuinFraction = 0.5

// Service compares strategies across stored simulation runs
type Service struct {
	repository results.Repository
	clock      quartz.Clock
}

// NewService creates a new statistics service. A nil clock uses the real clock.
func NewService(repository results.Repository, clock quartz.Clock) *Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Service{
		repository: repository,
		clock:      clock,
	}
}

// StrategyStats aggregates every agent that played one strategy
type StrategyStats struct {
	Strategy           string  `json:"strategy"`
	Agents             int     `json:"agents"`
	MeanProfit         float64 `json:"mean_profit"`
	MeanFinalBankroll  float64 `json:"mean_final_bankroll"`
	MeanProfitPerRound float64 `json:"mean_profit_per_round"`
	WinRate            float64 `json:"win_rate"`
	LossRate           float64 `json:"loss_rate"`
	PushRate           float64 `json:"push_rate"`
	BrokeCount         int     `json:"broke_count"`
	RuinedCount        int     `json:"ruined_count"`
	RuinProportion     float64 `json:"ruin_proportion"`
	NetProfit          int64   `json:"net_profit"`
	TotalWagered       int64   `json:"total_wagered"`
}

// Comparison is the per-strategy report over a set of runs
type Comparison struct {
	Strategies   []*StrategyStats `json:"strategies"`
	RunsAnalyzed int              `json:"runs_analyzed"`
	GeneratedAt  time.Time        `json:"generated_at"`
}

// CompareStrategies aggregates the most recent runs, limit <= 0 meaning all of them
func (s *Service) CompareStrategies(ctx context.Context, limit int) (*Comparison, error) {
	runs, err := s.repository.ListRuns(ctx, "", limit)
	if err != nil {
		return nil, err
	}

	return &Comparison{
		Strategies:   Aggregate(runs),
		RunsAnalyzed: len(runs),
		GeneratedAt:  s.clock.Now(),
	}, nil
}

// Aggregate groups agent summaries by strategy, best mean profit first
func Aggregate(runs []*entities.RunRecord) []*StrategyStats {
	type totals struct {
		agents                int
		profit, finalBankroll int64
		profitPerRound        float64
		wins, losses, pushes  int
		broke, ruined         int
		wagered               int64
	}

	byStrategy := make(map[string]*totals)
	for _, run := range runs {
		for _, agent := range run.Agents {
			t, ok := byStrategy[agent.Strategy]
			if !ok {
				t = &totals{}
				byStrategy[agent.Strategy] = t
			}
			t.agents++
			t.profit += agent.TotalProfit()
			t.finalBankroll += agent.FinalBankroll
			t.profitPerRound += agent.ProfitPerRound()
			t.wins += agent.Wins
			t.losses += agent.Losses
			t.pushes += agent.Pushes
			t.wagered += agent.TotalWagered
			if agent.WentBroke() {
				t.broke++
			}
			if float64(agent.FinalBankroll) < float64(agent.StartingBankroll)*RuinFraction {
				t.ruined++
			}
		}
	}

	stats := make([]*StrategyStats, 0, len(byStrategy))
	for strategy, t := range byStrategy {
		n := float64(t.agents)
		s := &StrategyStats{
			Strategy:           strategy,
			Agents:             t.agents,
			MeanProfit:         float64(t.profit) / n,
			MeanFinalBankroll:  float64(t.finalBankroll) / n,
			MeanProfitPerRound: t.profitPerRound / n,
			BrokeCount:         t.broke,
			RuinedCount:        t.ruined,
			RuinProportion:     float64(t.ruined) / n,
			NetProfit:          t.profit,
			TotalWagered:       t.wagered,
		}
		if hands := t.wins + t.losses + t.pushes; hands > 0 {
			s.WinRate = float64(t.wins) / float64(hands)
			s.LossRate = float64(t.losses) / float64(hands)
			s.PushRate = float64(t.pushes) / float64(hands)
		}
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].MeanProfit != stats[j].MeanProfit {
			return stats[i].MeanProfit > stats[j].MeanProfit
		}
		return stats[i].Strategy < stats[j].Strategy
	})
	return stats
}

var csvHeader = []string{
	"Run", "Agent", "Strategy", "Starting Bankroll", "Final Bankroll", "Total Profit",
	"Avg Profit/Round", "Rounds", "Wins", "Losses", "Pushes", "Blackjacks", "Busts",
	"Splits", "Doubles", "Total Wagered", "Broke Round",
}

// WriteAgentCSV writes one row per agent per run
func WriteAgentCSV(w io.Writer, runs []*entities.RunRecord) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, run := range runs {
		for _, a := range run.Agents {
			row := []string{
				run.ID,
				a.AgentID,
				a.Strategy,
				strconv.FormatInt(a.StartingBankroll, 10),
				strconv.FormatInt(a.FinalBankroll, 10),
				strconv.FormatInt(a.TotalProfit(), 10),
				strconv.FormatFloat(a.ProfitPerRound(), 'f', 2, 64),
				strconv.Itoa(a.RoundsPlayed),
				strconv.Itoa(a.Wins),
				strconv.Itoa(a.Losses),
				strconv.Itoa(a.Pushes),
				strconv.Itoa(a.Blackjacks),
				strconv.Itoa(a.Busts),
				strconv.Itoa(a.Splits),
				strconv.Itoa(a.Doubles),
				strconv.FormatInt(a.TotalWagered, 10),
				strconv.Itoa(a.BrokeRound),
			}
			if err := writer.Write(row); err != nil {
				return err
			}
		}
	}

	writer.Flush()
	return writer.Error()
}
