package strategy

import (
	"fmt"
	"strings"

	"github.com/fadedpez/shoesim/pkg/entities"
)

// Chart columns, left to right
var dealerColumns = []entities.Face{
	entities.Two, entities.Three, entities.Four, entities.Five, entities.Six,
	entities.Seven, entities.Eight, entities.Nine, entities.Ten, entities.Ace,
}

// Multi-deck, dealer stands on soft 17, double after split allowed.
// H hit, S stand, D double else hit, Ds double else stand, P split.
var hardChart = map[int]string{
	8:  "H  H  H  H  H  H  H  H  H  H",
	9:  "H  D  D  D  D  H  H  H  H  H",
	10: "D  D  D  D  D  D  D  D  H  H",
	11: "D  D  D  D  D  D  D  D  D  H",
	12: "H  H  S  S  S  H  H  H  H  H",
	13: "S  S  S  S  S  H  H  H  H  H",
	14: "S  S  S  S  S  H  H  H  H  H",
	15: "S  S  S  S  S  H  H  H  H  H",
	16: "S  S  S  S  S  H  H  H  S  H",
	17: "S  S  S  S  S  S  S  S  S  S",
}

// Keyed by the card next to the ace
var softChart = map[int]string{
	2: "H  H  H  D  D  H  H  H  H  H",
	3: "H  H  H  D  D  H  H  H  H  H",
	4: "H  H  D  D  D  H  H  H  H  H",
	5: "H  H  D  D  D  H  H  H  H  H",
	6: "H  D  D  D  D  H  H  H  H  H",
	7: "S  Ds Ds Ds Ds S  S  H  H  H",
	8: "S  S  S  S  S  S  S  S  S  S",
}

// Keyed by the paired face, aces as 1
var pairChart = map[int]string{
	1:  "P  P  P  P  P  P  P  P  P  P",
	2:  "P  P  P  P  P  P  H  H  H  H",
	3:  "P  P  P  P  P  P  H  H  H  H",
	4:  "H  H  H  P  P  H  H  H  H  H",
	5:  "D  D  D  D  D  D  D  D  H  H",
	6:  "P  P  P  P  P  H  H  H  H  H",
	7:  "P  P  P  P  P  P  H  H  H  H",
	8:  "P  P  P  P  P  P  P  P  P  P",
	9:  "P  P  P  P  P  S  P  P  S  S",
	10: "S  S  S  S  S  S  S  S  S  S",
}

func hard(total int, dealer entities.Face) Key {
	return Key{Kind: Hard, Value: total, Dealer: dealer}
}

func pair(face int, dealer entities.Face) Key {
	return Key{Kind: Pair, Value: face, Dealer: dealer}
}

// Count deviations from the base chart, Illustrious 18 style
var defaultDeviations = map[Key]Deviation{
	hard(16, entities.Ten):   Below(0, entities.Hit),
	hard(15, entities.Ten):   AtLeast(4, entities.Stand),
	hard(10, entities.Ten):   AtLeast(4, entities.DoubleOrHit),
	hard(12, entities.Three): AtLeast(2, entities.Stand),
	hard(12, entities.Two):   AtLeast(3, entities.Stand),
	hard(11, entities.Ace):   AtLeast(1, entities.DoubleOrHit),
	hard(9, entities.Two):    AtLeast(1, entities.DoubleOrHit),
	hard(10, entities.Ace):   AtLeast(4, entities.DoubleOrHit),
	hard(9, entities.Seven):  AtLeast(3, entities.DoubleOrHit),
	hard(16, entities.Nine):  AtLeast(5, entities.Stand),
	hard(13, entities.Two):   Below(-1, entities.Hit),
	hard(12, entities.Four):  Below(0, entities.Hit),
	hard(12, entities.Five):  Below(-2, entities.Hit),
	hard(12, entities.Six):   Below(-1, entities.Hit),
	hard(13, entities.Three): Below(-2, entities.Hit),
	pair(10, entities.Five):  AtLeast(5, entities.Split),
	pair(10, entities.Six):   AtLeast(4, entities.Split),
}

// DefaultTable returns a fresh copy of the built-in chart and deviations
func DefaultTable() *Table {
	base := make(map[Key]entities.Action)
	for _, chart := range []struct {
		kind Kind
		rows map[int]string
	}{
		{Hard, hardChart},
		{Soft, softChart},
		{Pair, pairChart},
	} {
		for value, row := range chart.rows {
			mustAddRow(base, chart.kind, value, row)
		}
	}

	deviations := make(map[Key]Deviation, len(defaultDeviations))
	for key, deviation := range defaultDeviations {
		deviations[key] = deviation
	}

	return NewTable(base, deviations)
}

func mustAddRow(base map[Key]entities.Action, kind Kind, value int, row string) {
	cells := strings.Fields(row)
	if len(cells) != len(dealerColumns) {
		panic(fmt.Sprintf("strategy chart %s %d has %d columns", kind, value, len(cells)))
	}

	for i, cell := range cells {
		action, err := entities.ParseAction(cell)
		if err != nil {
			panic(fmt.Sprintf("strategy chart %s %d: %v", kind, value, err))
		}
		base[Key{Kind: kind, Value: value, Dealer: dealerColumns[i]}] = action
	}
}
