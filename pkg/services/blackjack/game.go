package blackjack

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadedpez/shoesim/internal/logging"
	"github.com/fadedpez/shoesim/pkg/entities"
)

var (
	ErrNoAgents     = errors.New("no agents left at the table")
	ErrInvalidRound = errors.New("round count must be positive")
)

// Game drives rounds for a fixed table of agents sharing one shoe. Phases run in
// order: bets, deal, agent turns, dealer, settlement, broke removal.
type Game struct {
	shoe    *entities.Shoe
	seated  []Agent // Every agent in seat order, including dropped ones
	agents  []Agent // Agents still playing
	dropped []Agent
	round   int
	logger  *logging.Logger
}

// NewGame creates a game. A nil logger uses logging.Default.
func NewGame(shoe *entities.Shoe, agents []Agent, logger *logging.Logger) *Game {
	if logger == nil {
		logger = logging.Default
	}
	return &Game{
		shoe:   shoe,
		seated: agents,
		agents: append([]Agent(nil), agents...),
		logger: logger,
	}
}

// Run plays up to rounds rounds, stopping early when every agent is broke
func (g *Game) Run(ctx context.Context, rounds int) ([]*entities.RoundRecord, error) {
	if rounds <= 0 {
		return nil, ErrInvalidRound
	}

	records := make([]*entities.RoundRecord, 0, rounds)
	for g.round < rounds && len(g.agents) > 0 {
		record, err := g.PlayRound(ctx)
		if err != nil {
			return records, err
		}
		records = append(records, record)
	}

	if len(g.agents) == 0 {
		g.logger.Info("All agents went broke after %d rounds", g.round)
	}
	return records, nil
}

// PlayRound plays one complete round
func (g *Game) PlayRound(ctx context.Context) (*entities.RoundRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(g.agents) == 0 {
		return nil, ErrNoAgents
	}

	g.round++
	record := &entities.RoundRecord{Number: g.round}

	if g.shoe.NeedsReset() {
		g.logger.Debug("Round %d: reshuffling shoe with %d cards left", g.round, g.shoe.Remaining())
		g.shoe.Reset()
		record.Reshuffled = true
	}

	trueCount := g.shoe.TrueCount()
	record.TrueCount = trueCount

	bets := make([]int64, len(g.agents))
	for i, agent := range g.agents {
		bets[i] = agent.PlaceBet(trueCount)
		g.logger.Debug("Round %d: %s bets %d at true count %.2f", g.round, agent.Seat().ID, bets[i], trueCount)
	}

	dealer, upcard, err := g.deal(bets)
	if err != nil {
		return nil, err
	}

	logs := make([][][]entities.Action, len(g.agents))
	for i, agent := range g.agents {
		logs[i], err = agent.PlayTurn(upcard, g.shoe)
		if err != nil {
			return nil, fmt.Errorf("round %d turn for %s: %w", g.round, agent.Seat().ID, err)
		}
	}

	if err := PlayDealer(dealer, g.shoe); err != nil {
		return nil, fmt.Errorf("round %d dealer turn: %w", g.round, err)
	}
	record.DealerCards = dealer.Cards
	record.DealerScore = HandValue(dealer.Cards)

	for i, agent := range g.agents {
		record.Agents = append(record.Agents, g.settle(agent, dealer, bets[i], logs[i]))
	}

	record.Dropped = g.removeBroke()
	return record, nil
}

// deal gives the dealer an unrevealed hole card and an upcard, then two cards to
// each agent in seat order.
func (g *Game) deal(bets []int64) (*entities.Hand, entities.Card, error) {
	hole, err := deal(g.shoe, false)
	if err != nil {
		return nil, entities.Card{}, err
	}
	upcard, err := deal(g.shoe, true)
	if err != nil {
		return nil, entities.Card{}, err
	}
	dealer := entities.NewHand(0, hole, upcard)

	for i, agent := range g.agents {
		first, err := deal(g.shoe, true)
		if err != nil {
			return nil, entities.Card{}, err
		}
		second, err := deal(g.shoe, true)
		if err != nil {
			return nil, entities.Card{}, err
		}
		if err := agent.Seat().Open(bets[i], first, second); err != nil {
			return nil, entities.Card{}, err
		}
	}

	return dealer, upcard, nil
}

func (g *Game) settle(agent Agent, dealer *entities.Hand, bet int64, actions [][]entities.Action) entities.AgentRound {
	seat := agent.Seat()
	multipliers := Settle(dealer.Cards, seat.Hands)
	outcomes, delta := seat.ApplySettlement(multipliers)
	for j := range outcomes {
		if j < len(actions) {
			outcomes[j].Actions = actions[j]
		}
	}

	g.logger.Debug("Round %d: %s settles %d over %d hands, bankroll %d",
		g.round, seat.ID, delta, len(outcomes), seat.Bankroll)

	return entities.AgentRound{
		AgentID:       seat.ID,
		Strategy:      agent.Strategy(),
		Bet:           bet,
		Hands:         outcomes,
		Delta:         delta,
		BankrollAfter: seat.Bankroll,
	}
}

func (g *Game) removeBroke() []string {
	var dropped []string
	remaining := g.agents[:0]

	for _, agent := range g.agents {
		seat := agent.Seat()
		if seat.IsBroke() {
			seat.BrokeRound = g.round
			seat.Stats.BrokeRound = g.round
			g.dropped = append(g.dropped, agent)
			dropped = append(dropped, seat.ID)
			g.logger.Info("%s went broke in round %d", seat.ID, g.round)
			continue
		}
		remaining = append(remaining, agent)
	}

	g.agents = remaining
	return dropped
}

// Round returns the number of rounds played so far
func (g *Game) Round() int {
	return g.round
}

// Agents returns the agents still at the table
func (g *Game) Agents() []Agent {
	return g.agents
}

// Dropped returns the agents removed for going broke, in removal order
func (g *Game) Dropped() []Agent {
	return g.dropped
}

// Summaries returns every agent's running summary in seat order
func (g *Game) Summaries() []*entities.AgentSummary {
	summaries := make([]*entities.AgentSummary, 0, len(g.seated))
	for _, agent := range g.seated {
		summaries = append(summaries, agent.Seat().Stats)
	}
	return summaries
}
