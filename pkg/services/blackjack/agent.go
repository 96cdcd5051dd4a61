package blackjack

import (
	"math"

	"github.com/fadedpez/shoesim/pkg/entities"
)

// Agent is anything that can sit at the table: size a bet from the true count and
// play a turn against the dealer's upcard.
type Agent interface {
	Seat() *Seat
	Strategy() string
	PlaceBet(trueCount float64) int64
	PlayTurn(upcard entities.Card, shoe *entities.Shoe) ([][]entities.Action, error)
}

// BetPolicy sizes a wager before clamping
type BetPolicy func(baseBet int64, trueCount float64) int64

// FlatBet always wagers the base bet
func FlatBet(baseBet int64, _ float64) int64 {
	return baseBet
}

// CountSpread raises the wager by the rounded true count, never below the base bet
func CountSpread(baseBet int64, trueCount float64) int64 {
	units := max(int64(1), int64(math.Round(trueCount)))
	return baseBet * units
}

// StrategyAgent plays automatically from an ActionSource
type StrategyAgent struct {
	seat     *Seat
	strategy string
	source   ActionSource
	bets     BetPolicy
}

// NewStrategyAgent creates an automatic agent. A nil policy bets flat.
func NewStrategyAgent(seat *Seat, strategy string, source ActionSource, bets BetPolicy) *StrategyAgent {
	if bets == nil {
		bets = FlatBet
	}
	return &StrategyAgent{
		seat:     seat,
		strategy: strategy,
		source:   source,
		bets:     bets,
	}
}

func (a *StrategyAgent) Seat() *Seat {
	return a.seat
}

func (a *StrategyAgent) Strategy() string {
	return a.strategy
}

// PlaceBet sizes the wager from the policy and clamps it to the bankroll
func (a *StrategyAgent) PlaceBet(trueCount float64) int64 {
	return a.seat.ClampBet(a.bets(a.seat.BaseBet, trueCount))
}

// PlayTurn resolves every hand in the seat's arena
func (a *StrategyAgent) PlayTurn(upcard entities.Card, shoe *entities.Shoe) ([][]entities.Action, error) {
	return NewTurnResolver(a.seat, a.source).Play(upcard, shoe)
}

// Decision describes one choice put to a Decider
type Decision struct {
	Hand      *entities.Hand
	Upcard    entities.Card
	TrueCount float64
	Bankroll  int64
	Valid     []entities.Action
}

// Decider supplies a person's choices. Prompting and rendering live behind it.
type Decider interface {
	Bet(bankroll int64, trueCount float64) int64
	Choose(d Decision) entities.Action
}

// HumanAgent plays choices from a Decider, offering only the actions the seat can
// currently fund.
type HumanAgent struct {
	seat    *Seat
	decider Decider
}

// NewHumanAgent creates an agent driven by a Decider
func NewHumanAgent(seat *Seat, decider Decider) *HumanAgent {
	return &HumanAgent{
		seat:    seat,
		decider: decider,
	}
}

func (a *HumanAgent) Seat() *Seat {
	return a.seat
}

func (a *HumanAgent) Strategy() string {
	return "human"
}

// PlaceBet asks the Decider and clamps the answer to the bankroll
func (a *HumanAgent) PlaceBet(trueCount float64) int64 {
	bet := a.decider.Bet(a.seat.Bankroll, trueCount)
	if bet <= 0 {
		bet = a.seat.BaseBet
	}
	return a.seat.ClampBet(bet)
}

// PlayTurn resolves the arena with the Decider's choices
func (a *HumanAgent) PlayTurn(upcard entities.Card, shoe *entities.Shoe) ([][]entities.Action, error) {
	return NewTurnResolver(a.seat, ActionSourceFunc(a.next)).Play(upcard, shoe)
}

func (a *HumanAgent) next(hand *entities.Hand, upcard entities.Card, trueCount float64, allowSplit bool) entities.Action {
	valid := a.ValidActions(hand, allowSplit)
	choice := a.decider.Choose(Decision{
		Hand:      hand,
		Upcard:    upcard,
		TrueCount: trueCount,
		Bankroll:  a.seat.Bankroll,
		Valid:     valid,
	})

	for _, action := range valid {
		if action == choice {
			return choice
		}
	}
	return entities.Stand
}

// ValidActions lists what the seat can afford for the hand
func (a *HumanAgent) ValidActions(hand *entities.Hand, allowSplit bool) []entities.Action {
	valid := []entities.Action{entities.Hit, entities.Stand}
	affordable := a.seat.Bankroll >= hand.Bet

	if len(hand.Cards) == 2 && affordable {
		valid = append(valid, entities.DoubleOrHit, entities.DoubleOrStand)
	}
	if allowSplit && hand.IsPair() && affordable {
		valid = append(valid, entities.Split)
	}
	return valid
}
