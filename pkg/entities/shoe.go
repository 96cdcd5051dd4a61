package entities

import (
	"errors"
	"math"
	rand "math/rand/v2"
)

const (
	CardsPerDeck = 52

	// ReshuffleThreshold is the remaining-card count below which a shoe must be
	// reset before the next round is dealt.
	ReshuffleThreshold = 52

	// minDecksRemaining floors the true-count divisor near the end of the shoe.
	minDecksRemaining = 0.5
)

var ErrShoeExhausted = errors.New("shoe exhausted")

// Shoe is a shuffled multi-deck sequence of cards with a running Hi-Lo count
type Shoe struct {
	cards        []Card
	numDecks     int
	runningCount int
	cardsSeen    int
	rng          *rand.Rand
}

// NewShoe creates a freshly shuffled shoe of numDecks standard decks
func NewShoe(numDecks int, rng *rand.Rand) *Shoe {
	s := &Shoe{
		cards:    make([]Card, 0, numDecks*CardsPerDeck),
		numDecks: numDecks,
		rng:      rng,
	}
	s.Reset()
	return s
}

// NewStackedShoe creates a shoe whose cards are dealt in exactly the given order,
// first card first. It is used to replay known sequences.
func NewStackedShoe(numDecks int, order []Card) *Shoe {
	s := &Shoe{numDecks: numDecks}
	s.cards = make([]Card, len(order))
	for i, card := range order {
		s.cards[len(order)-1-i] = card
	}
	return s
}

// Reset rebuilds all decks, reshuffles and zeroes the counts
func (s *Shoe) Reset() {
	s.cards = s.cards[:0]
	for d := 0; d < s.numDecks; d++ {
		for suit := Spades; suit <= Clubs; suit++ {
			for face := Ace; face <= King; face++ {
				s.cards = append(s.cards, NewCard(suit, face))
			}
		}
	}

	if s.rng != nil {
		s.rng.Shuffle(len(s.cards), func(i, j int) {
			s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
		})
	}

	s.runningCount = 0
	s.cardsSeen = 0
}

// Deal removes and returns the next card. A hidden card (reveal false) is counted
// as seen but only enters the running count once passed to Reveal.
func (s *Shoe) Deal(reveal bool) (Card, error) {
	if len(s.cards) == 0 {
		return Card{}, ErrShoeExhausted
	}
	last := len(s.cards) - 1
	card := s.cards[last]
	s.cards = s.cards[:last]

	s.cardsSeen++
	if reveal {
		s.Reveal(card)
	}
	return card, nil
}

// Reveal feeds a previously hidden card into the running count
func (s *Shoe) Reveal(card Card) {
	s.runningCount += card.HiLo()
}

// TrueCount is the running count divided by the estimated decks remaining
func (s *Shoe) TrueCount() float64 {
	decksRemaining := math.Max(float64(len(s.cards))/CardsPerDeck, minDecksRemaining)
	return float64(s.runningCount) / decksRemaining
}

// NeedsReset reports whether the shoe is too short to start another round
func (s *Shoe) NeedsReset() bool {
	return len(s.cards) < ReshuffleThreshold
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}

func (s *Shoe) RunningCount() int {
	return s.runningCount
}

func (s *Shoe) CardsSeen() int {
	return s.cardsSeen
}

func (s *Shoe) NumDecks() int {
	return s.numDecks
}
