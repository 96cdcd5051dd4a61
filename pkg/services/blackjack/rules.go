package blackjack

import (
	"math"

	"github.com/fadedpez/shoesim/pkg/entities"
)

const (
	Blackjack      = 21 // Best possible total
	DealerStandsOn = 17 // Dealer stands on any 17, soft or hard

	NaturalMultiplier = 1.5 // Payout ratio for a two-card 21
)

// HandValue returns the best total for the cards. Aces start at 11 and are softened
// to 1 one at a time while the total is over 21.
func HandValue(cards []entities.Card) int {
	total, _ := valueWithSoftAces(cards)
	return total
}

func valueWithSoftAces(cards []entities.Card) (int, int) {
	total := 0
	aces := 0

	for _, card := range cards {
		total += card.Value()
		if card.IsAce() {
			aces++
		}
	}

	for total > Blackjack && aces > 0 {
		total -= 10
		aces--
	}

	return total, aces
}

// IsNatural checks for a two-card 21
func IsNatural(cards []entities.Card) bool {
	return len(cards) == 2 && HandValue(cards) == Blackjack
}

// IsBust checks if a hand exceeds 21
func IsBust(cards []entities.Card) bool {
	return HandValue(cards) > Blackjack
}

// IsSoft reports whether an Ace is still being counted as 11
func IsSoft(cards []entities.Card) bool {
	_, aces := valueWithSoftAces(cards)
	return aces > 0
}

// Multiplier settles one finished player hand against the finished dealer hand.
// Checks are ordered: player bust, dealer natural, player natural, then totals.
func Multiplier(player, dealer []entities.Card) float64 {
	playerScore := HandValue(player)
	dealerScore := HandValue(dealer)

	switch {
	case playerScore > Blackjack:
		return -1
	case IsNatural(dealer):
		if IsNatural(player) {
			return 0
		}
		return -1
	case IsNatural(player):
		return NaturalMultiplier
	case dealerScore > Blackjack || playerScore > dealerScore:
		return 1
	case playerScore < dealerScore:
		return -1
	default:
		return 0
	}
}

// Payout converts a stake and multiplier into the amount won or lost, rounded half
// away from zero to whole currency units.
func Payout(bet int64, multiplier float64) int64 {
	return int64(math.Round(float64(bet) * multiplier))
}

// Settle returns one multiplier per hand, in hand order
func Settle(dealer []entities.Card, hands []*entities.Hand) []float64 {
	multipliers := make([]float64, len(hands))
	for i, hand := range hands {
		multipliers[i] = Multiplier(hand.Cards, dealer)
	}
	return multipliers
}
