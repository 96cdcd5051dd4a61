package strategy

import (
	"testing"

	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/stretchr/testify/assert"
)

func hand(faces ...entities.Face) []entities.Card {
	cards := make([]entities.Card, 0, len(faces))
	for i, face := range faces {
		// vary suits so pairs never rely on suit equality
		cards = append(cards, entities.NewCard(entities.Suit(i%4+1), face))
	}
	return cards
}

func up(face entities.Face) entities.Card {
	return entities.NewCard(entities.Diamonds, face)
}

func TestClassify(t *testing.T) {
	testCases := []struct {
		name       string
		cards      []entities.Card
		upcard     entities.Card
		allowSplit bool
		expected   Key
	}{
		{"pair of eights", hand(entities.Eight, entities.Eight), up(entities.Six), true, Key{Pair, 8, entities.Six}},
		{"pair of aces", hand(entities.Ace, entities.Ace), up(entities.Ace), true, Key{Pair, 1, entities.Ace}},
		{"mixed ten-valued pair", hand(entities.King, entities.Jack), up(entities.Queen), true, Key{Pair, 10, entities.Ten}},
		{"split disabled gives hard", hand(entities.Eight, entities.Eight), up(entities.Six), false, Key{Hard, 16, entities.Six}},
		{"aces without split are hard 12", hand(entities.Ace, entities.Ace), up(entities.Two), false, Key{Hard, 12, entities.Two}},
		{"soft hand", hand(entities.Ace, entities.Six), up(entities.Three), true, Key{Soft, 6, entities.Three}},
		{"soft order does not matter", hand(entities.Four, entities.Ace), up(entities.Five), true, Key{Soft, 4, entities.Five}},
		{"soft value capped at eight", hand(entities.Ace, entities.Nine), up(entities.Seven), true, Key{Soft, 8, entities.Seven}},
		{"hard total clamped low", hand(entities.Two, entities.Three), up(entities.Nine), true, Key{Hard, 8, entities.Nine}},
		{"hard total clamped high", hand(entities.Ten, entities.Nine), up(entities.King), true, Key{Hard, 17, entities.Ten}},
		{"three cards with ace are hard", hand(entities.Ace, entities.Two, entities.Three), up(entities.Four), true, Key{Hard, 16, entities.Four}},
		{"three card pair is hard", hand(entities.Four, entities.Four, entities.Two), up(entities.Ten), true, Key{Hard, 10, entities.Ten}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Classify(tc.cards, tc.upcard, tc.allowSplit))
		})
	}
}

func TestNormalizeFace(t *testing.T) {
	for _, face := range []entities.Face{entities.Ten, entities.Jack, entities.Queen, entities.King} {
		assert.Equal(t, entities.Ten, NormalizeFace(face))
	}
	assert.Equal(t, entities.Ace, NormalizeFace(entities.Ace))
	assert.Equal(t, entities.Nine, NormalizeFace(entities.Nine))
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("soft")
	assert.NoError(t, err)
	assert.Equal(t, Soft, kind)

	_, err = ParseKind("squishy")
	assert.Error(t, err)
}
