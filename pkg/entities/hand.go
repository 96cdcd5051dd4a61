package entities

// Hand is an ordered, growable set of cards together with the stake riding on it.
// Keeping the bet on the hand keeps hand i and bet i aligned through splits.
type Hand struct {
	Cards     []Card
	Bet       int64
	Doubled   bool
	FromSplit bool
}

// NewHand creates a hand holding the given stake and cards
func NewHand(bet int64, cards ...Card) *Hand {
	h := &Hand{
		Cards: make([]Card, 0, 4),
		Bet:   bet,
	}
	h.Cards = append(h.Cards, cards...)
	return h
}

// AddCard appends a card to the hand
func (h *Hand) AddCard(card Card) {
	h.Cards = append(h.Cards, card)
}

// IsPair reports whether the hand is exactly two cards of the same face
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].SameFace(h.Cards[1])
}
