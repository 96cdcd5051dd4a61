package entities

import "time"

// Outcome classifies a settled hand
type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLose      Outcome = "LOSE"
	OutcomePush      Outcome = "PUSH"
	OutcomeBlackjack Outcome = "BLACKJACK"
)

// String returns the string representation of the outcome
func (o Outcome) String() string {
	return string(o)
}

// IsWin returns true if this outcome represents a win
func (o Outcome) IsWin() bool {
	return o == OutcomeWin || o == OutcomeBlackjack
}

// OutcomeForMultiplier maps a settlement multiplier onto an Outcome
func OutcomeForMultiplier(multiplier float64) Outcome {
	switch {
	case multiplier == 1.5:
		return OutcomeBlackjack
	case multiplier > 0:
		return OutcomeWin
	case multiplier < 0:
		return OutcomeLose
	default:
		return OutcomePush
	}
}

// HandOutcome records how one finished hand was played and settled
type HandOutcome struct {
	Cards      []Card
	Score      int
	Bet        int64
	Multiplier float64
	Payout     int64
	Outcome    Outcome
	Doubled    bool
	FromSplit  bool
	Actions    []Action
}

// AgentRound is one agent's part of a round
type AgentRound struct {
	AgentID       string
	Strategy      string
	Bet           int64
	Hands         []HandOutcome
	Delta         int64
	BankrollAfter int64
}

// RoundRecord is the observable output of one round
type RoundRecord struct {
	Number      int
	TrueCount   float64 // True count at bet time
	Reshuffled  bool
	DealerCards []Card
	DealerScore int
	Agents      []AgentRound
	Dropped     []string // Agents removed for going broke this round
}

// AgentSummary aggregates one agent's results across a run
type AgentSummary struct {
	AgentID          string
	Strategy         string
	StartingBankroll int64
	FinalBankroll    int64
	RoundsPlayed     int
	HandsPlayed      int
	Wins             int
	Losses           int
	Pushes           int
	Blackjacks       int
	Busts            int
	Splits           int
	Doubles          int
	TotalWagered     int64
	BrokeRound       int // Zero when the agent never went broke
}

// TotalProfit is the net bankroll change over the run
func (s *AgentSummary) TotalProfit() int64 {
	return s.FinalBankroll - s.StartingBankroll
}

// ProfitPerRound averages the profit over the rounds the agent played
func (s *AgentSummary) ProfitPerRound() float64 {
	if s.RoundsPlayed == 0 {
		return 0.0
	}
	return float64(s.TotalProfit()) / float64(s.RoundsPlayed)
}

// WentBroke reports whether the agent was removed for lack of funds
func (s *AgentSummary) WentBroke() bool {
	return s.BrokeRound > 0
}

// RunRecord is the persisted result of one simulation run
type RunRecord struct {
	ID            string
	Seed          int64
	NumDecks      int
	RoundsPlanned int
	RoundsPlayed  int
	StartedAt     time.Time
	CompletedAt   time.Time
	Agents        []*AgentSummary
}
