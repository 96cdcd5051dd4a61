package blackjack

import (
	"github.com/fadedpez/shoesim/pkg/entities"
)

func c(face entities.Face) entities.Card {
	return entities.NewCard(entities.Spades, face)
}

func cards(faces ...entities.Face) []entities.Card {
	out := make([]entities.Card, 0, len(faces))
	for _, face := range faces {
		out = append(out, c(face))
	}
	return out
}

// stackedShoe deals faces in order and pads the shoe with low cards so it does not
// need a reset before the next round.
func stackedShoe(faces ...entities.Face) *entities.Shoe {
	order := cards(faces...)
	for len(order) < 60 {
		order = append(order, entities.NewCard(entities.Hearts, entities.Two))
	}
	return entities.NewStackedShoe(2, order)
}

// scripted answers by a fixed rule and records every question asked
type scripted struct {
	rule  func(hand *entities.Hand, allowSplit bool) entities.Action
	calls []bool // allowSplit per call
}

func (s *scripted) Next(hand *entities.Hand, _ entities.Card, _ float64, allowSplit bool) entities.Action {
	s.calls = append(s.calls, allowSplit)
	return s.rule(hand, allowSplit)
}

func always(action entities.Action) *scripted {
	return &scripted{rule: func(*entities.Hand, bool) entities.Action { return action }}
}

// splitPairsElseStand splits any pair it is allowed to and stands otherwise
func splitPairsElseStand() *scripted {
	return &scripted{rule: func(hand *entities.Hand, allowSplit bool) entities.Action {
		if allowSplit && hand.IsPair() {
			return entities.Split
		}
		return entities.Stand
	}}
}
