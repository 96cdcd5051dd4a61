package blackjack

import (
	"fmt"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
)

// Seat is the bankroll and hand bookkeeping shared by every agent variant.
// Stakes are taken from the bankroll as soon as they are committed and returned
// together with the winnings at settlement.
type Seat struct {
	ID         string
	Bankroll   int64
	BaseBet    int64
	Hands      []*entities.Hand // Arena for the current round, in creation order
	BrokeRound int

	Stats *entities.AgentSummary
}

// NewSeat creates a seat with an empty arena
func NewSeat(id, strategy string, bankroll, baseBet int64) *Seat {
	return &Seat{
		ID:       id,
		Bankroll: bankroll,
		BaseBet:  baseBet,
		Stats: &entities.AgentSummary{
			AgentID:          id,
			Strategy:         strategy,
			StartingBankroll: bankroll,
			FinalBankroll:    bankroll,
		},
	}
}

// ClampBet limits a wager so that bet sizing alone can never drive the bankroll
// below zero. A bet that would leave nothing behind becomes the whole bankroll.
func (s *Seat) ClampBet(bet int64) int64 {
	if s.Bankroll-bet <= 0 {
		return max(s.Bankroll, 0)
	}
	return bet
}

// Open starts the round's arena with a single hand holding the stake
func (s *Seat) Open(bet int64, cards ...entities.Card) error {
	if bet < 0 || bet > s.Bankroll {
		return types.NewGameError(types.ErrInsufficientFunds,
			fmt.Sprintf("seat %s cannot stake %d with bankroll %d", s.ID, bet, s.Bankroll))
	}

	s.Bankroll -= bet
	s.Hands = []*entities.Hand{entities.NewHand(bet, cards...)}
	return nil
}

// CanSplit checks that hand i is a two-card pair and the extra stake is covered
func (s *Seat) CanSplit(i int) bool {
	hand := s.Hands[i]
	return hand.IsPair() && s.Bankroll >= hand.Bet
}

// CanDouble checks that hand i has two cards and the extra stake is covered
func (s *Seat) CanDouble(i int) bool {
	hand := s.Hands[i]
	return len(hand.Cards) == 2 && s.Bankroll >= hand.Bet
}

// Hit deals one revealed card to hand i
func (s *Seat) Hit(i int, shoe *entities.Shoe) error {
	card, err := deal(shoe, true)
	if err != nil {
		return err
	}
	s.Hands[i].AddCard(card)
	return nil
}

// Split moves the second card of hand i into a new hand appended to the arena.
// The new hand is dealt its second card first, then the original hand.
func (s *Seat) Split(i int, shoe *entities.Shoe) error {
	if !s.CanSplit(i) {
		return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("hand %d cannot be split", i))
	}

	original := s.Hands[i]
	moved := original.Cards[1]
	original.Cards = original.Cards[:1]

	card, err := deal(shoe, true)
	if err != nil {
		return err
	}
	split := entities.NewHand(original.Bet, moved, card)
	split.FromSplit = true

	card, err = deal(shoe, true)
	if err != nil {
		return err
	}
	original.AddCard(card)
	original.FromSplit = true

	s.Bankroll -= original.Bet
	s.Hands = append(s.Hands, split)
	s.Stats.Splits++
	return nil
}

// Double doubles the stake on hand i and deals exactly one more card
func (s *Seat) Double(i int, shoe *entities.Shoe) error {
	if !s.CanDouble(i) {
		return types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("hand %d cannot be doubled", i))
	}

	hand := s.Hands[i]
	card, err := deal(shoe, true)
	if err != nil {
		return err
	}

	s.Bankroll -= hand.Bet
	hand.Bet *= 2
	hand.Doubled = true
	hand.AddCard(card)
	s.Stats.Doubles++
	return nil
}

// CommittedBet is the total stake riding on the arena
func (s *Seat) CommittedBet() int64 {
	var total int64
	for _, hand := range s.Hands {
		total += hand.Bet
	}
	return total
}

// ApplySettlement credits each hand's stake plus its payout and returns the
// outcomes together with the net change for the round. The arena is cleared.
func (s *Seat) ApplySettlement(multipliers []float64) ([]entities.HandOutcome, int64) {
	outcomes := make([]entities.HandOutcome, 0, len(s.Hands))
	var delta int64

	for i, hand := range s.Hands {
		payout := Payout(hand.Bet, multipliers[i])
		delta += payout
		s.Bankroll += hand.Bet + payout

		outcome := entities.HandOutcome{
			Cards:      hand.Cards,
			Score:      HandValue(hand.Cards),
			Bet:        hand.Bet,
			Multiplier: multipliers[i],
			Payout:     payout,
			Outcome:    entities.OutcomeForMultiplier(multipliers[i]),
			Doubled:    hand.Doubled,
			FromSplit:  hand.FromSplit,
		}
		outcomes = append(outcomes, outcome)
		s.record(outcome)
	}

	s.Stats.RoundsPlayed++
	s.Stats.FinalBankroll = s.Bankroll
	s.Hands = nil
	return outcomes, delta
}

func (s *Seat) record(outcome entities.HandOutcome) {
	s.Stats.HandsPlayed++
	s.Stats.TotalWagered += outcome.Bet
	if outcome.Score > Blackjack {
		s.Stats.Busts++
	}

	switch outcome.Outcome {
	case entities.OutcomeBlackjack:
		s.Stats.Blackjacks++
		s.Stats.Wins++
	case entities.OutcomeWin:
		s.Stats.Wins++
	case entities.OutcomeLose:
		s.Stats.Losses++
	case entities.OutcomePush:
		s.Stats.Pushes++
	}
}

// IsBroke reports whether the seat has nothing left to stake
func (s *Seat) IsBroke() bool {
	return s.Bankroll <= 0
}

func deal(shoe *entities.Shoe, reveal bool) (entities.Card, error) {
	card, err := shoe.Deal(reveal)
	if err != nil {
		return entities.Card{}, types.WrapError(types.ErrShoeExhausted, "cannot deal from an empty shoe", err)
	}
	return card, nil
}
