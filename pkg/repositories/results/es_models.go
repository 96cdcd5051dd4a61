package results

import (
	"time"

	"github.com/fadedpez/shoesim/pkg/entities"
)

// ESRunDocument represents a run document in Elasticsearch
type ESRunDocument struct {
	RunID         string          `json:"run_id"`
	Seed          int64           `json:"seed"`
	NumDecks      int             `json:"num_decks"`
	RoundsPlanned int             `json:"rounds_planned"`
	RoundsPlayed  int             `json:"rounds_played"`
	StartedAt     time.Time       `json:"started_at"`
	CompletedAt   time.Time       `json:"completed_at"`
	Strategies    []string        `json:"strategies"`
	Agents        []ESAgentResult `json:"agents"`
}

// ESAgentResult represents one agent's summary in Elasticsearch
type ESAgentResult struct {
	AgentID          string  `json:"agent_id"`
	Strategy         string  `json:"strategy"`
	StartingBankroll int64   `json:"starting_bankroll"`
	FinalBankroll    int64   `json:"final_bankroll"`
	Profit           int64   `json:"profit"`
	ProfitPerRound   float64 `json:"profit_per_round"`
	RoundsPlayed     int     `json:"rounds_played"`
	HandsPlayed      int     `json:"hands_played"`
	Wins             int     `json:"wins"`
	Losses           int     `json:"losses"`
	Pushes           int     `json:"pushes"`
	Blackjacks       int     `json:"blackjacks"`
	Busts            int     `json:"busts"`
	Splits           int     `json:"splits"`
	Doubles          int     `json:"doubles"`
	TotalWagered     int64   `json:"total_wagered"`
	Broke            bool    `json:"broke"`
	BrokeRound       int     `json:"broke_round,omitempty"`
}

// NewESRunDocument flattens a run record for indexing
func NewESRunDocument(run *entities.RunRecord) *ESRunDocument {
	doc := &ESRunDocument{
		RunID:         run.ID,
		Seed:          run.Seed,
		NumDecks:      run.NumDecks,
		RoundsPlanned: run.RoundsPlanned,
		RoundsPlayed:  run.RoundsPlayed,
		StartedAt:     run.StartedAt,
		CompletedAt:   run.CompletedAt,
		Strategies:    []string{},
		Agents:        make([]ESAgentResult, 0, len(run.Agents)),
	}

	seen := make(map[string]bool)
	for _, a := range run.Agents {
		if !seen[a.Strategy] {
			seen[a.Strategy] = true
			doc.Strategies = append(doc.Strategies, a.Strategy)
		}
		doc.Agents = append(doc.Agents, ESAgentResult{
			AgentID:          a.AgentID,
			Strategy:         a.Strategy,
			StartingBankroll: a.StartingBankroll,
			FinalBankroll:    a.FinalBankroll,
			Profit:           a.TotalProfit(),
			ProfitPerRound:   a.ProfitPerRound(),
			RoundsPlayed:     a.RoundsPlayed,
			HandsPlayed:      a.HandsPlayed,
			Wins:             a.Wins,
			Losses:           a.Losses,
			Pushes:           a.Pushes,
			Blackjacks:       a.Blackjacks,
			Busts:            a.Busts,
			Splits:           a.Splits,
			Doubles:          a.Doubles,
			TotalWagered:     a.TotalWagered,
			Broke:            a.WentBroke(),
			BrokeRound:       a.BrokeRound,
		})
	}
	return doc
}
