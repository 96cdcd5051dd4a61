package strategy

import (
	"fmt"

	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/services/blackjack"
)

// Kind is the hand category a strategy key belongs to
type Kind int

const (
	Hard Kind = iota
	Soft
	Pair
)

const (
	minHardKey = 8
	maxHardKey = 17
	maxSoftKey = 8
)

var kindNames = map[Kind]string{
	Hard: "hard",
	Soft: "soft",
	Pair: "pair",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps hard, soft or pair onto a Kind
func ParseKind(name string) (Kind, error) {
	for kind, kindName := range kindNames {
		if kindName == name {
			return kind, nil
		}
	}
	return Hard, fmt.Errorf("unknown hand kind %q", name)
}

// Key identifies one cell of a strategy chart.
// Value is the paired face for Pair (Ace is 1), the non-ace card for Soft and the
// hand total for Hard.
type Key struct {
	Kind   Kind
	Value  int
	Dealer entities.Face
}

func (k Key) String() string {
	return fmt.Sprintf("%s %d vs %s", k.Kind, k.Value, k.Dealer)
}

// NormalizeFace folds 10, J, Q and K onto Ten
func NormalizeFace(face entities.Face) entities.Face {
	if face >= entities.Ten {
		return entities.Ten
	}
	return face
}

// Classify builds the chart key for a hand. Pairs are only considered when
// allowSplit is set; then two-card soft hands; everything else is a hard total.
func Classify(cards []entities.Card, upcard entities.Card, allowSplit bool) Key {
	dealer := NormalizeFace(upcard.Face)

	if len(cards) == 2 {
		first, second := cards[0], cards[1]

		if allowSplit && first.SameFace(second) {
			return Key{Kind: Pair, Value: int(NormalizeFace(first.Face)), Dealer: dealer}
		}

		if first.IsAce() != second.IsAce() {
			other := first
			if other.IsAce() {
				other = second
			}
			return Key{Kind: Soft, Value: min(int(NormalizeFace(other.Face)), maxSoftKey), Dealer: dealer}
		}
	}

	total := min(max(blackjack.HandValue(cards), minHardKey), maxHardKey)
	return Key{Kind: Hard, Value: total, Dealer: dealer}
}
