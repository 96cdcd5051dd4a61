package blackjack

import "github.com/fadedpez/shoesim/pkg/entities"

// PlayDealer finishes the dealer's hand. The hole card is the first card and enters
// the running count only now. A natural stands immediately; otherwise the dealer
// draws while the total is below 17, standing on soft 17.
func PlayDealer(hand *entities.Hand, shoe *entities.Shoe) error {
	if len(hand.Cards) > 0 {
		shoe.Reveal(hand.Cards[0])
	}

	if IsNatural(hand.Cards) {
		return nil
	}

	for HandValue(hand.Cards) < DealerStandsOn {
		card, err := deal(shoe, true)
		if err != nil {
			return err
		}
		hand.AddCard(card)
	}

	return nil
}
