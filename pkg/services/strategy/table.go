package strategy

import (
	"fmt"
	"maps"
	"strings"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/services/blackjack"
)

// Mode selects how recommendations are made
type Mode int

const (
	Unskilled Mode = iota
	Basic
	Counting
)

var modeNames = map[Mode]string{
	Unskilled: "unskilled",
	Basic:     "basic",
	Counting:  "counting",
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode resolves a mode name. Unknown names are a configuration error.
func ParseMode(name string) (Mode, error) {
	for mode, modeName := range modeNames {
		if strings.EqualFold(name, modeName) {
			return mode, nil
		}
	}
	return Basic, types.NewGameError(types.ErrInvalidConfig, fmt.Sprintf("unknown strategy mode %q", name))
}

// Table is an immutable strategy chart plus its count deviations
type Table struct {
	Base       map[Key]entities.Action
	Deviations map[Key]Deviation
}

// NewTable creates a table from the given maps
func NewTable(base map[Key]entities.Action, deviations map[Key]Deviation) *Table {
	if base == nil {
		base = make(map[Key]entities.Action)
	}
	if deviations == nil {
		deviations = make(map[Key]Deviation)
	}
	return &Table{
		Base:       base,
		Deviations: deviations,
	}
}

// Clone returns a table that can be modified without touching t
func (t *Table) Clone() *Table {
	return NewTable(maps.Clone(t.Base), maps.Clone(t.Deviations))
}

// Recommend returns the action for a hand against the dealer's upcard
func (t *Table) Recommend(cards []entities.Card, upcard entities.Card, trueCount float64, mode Mode, allowSplit bool) entities.Action {
	switch mode {
	case Unskilled:
		return unskilled(cards, allowSplit)

	case Counting:
		key := Classify(cards, upcard, allowSplit)
		if deviation, ok := t.Deviations[key]; ok && deviation.Matches(trueCount) {
			return deviation.Action
		}
		return t.Lookup(key)

	default:
		return t.Lookup(Classify(cards, upcard, allowSplit))
	}
}

// Lookup returns the chart action for key. A missing entry stands.
func (t *Table) Lookup(key Key) entities.Action {
	if action, ok := t.Base[key]; ok {
		return action
	}
	return entities.Stand
}

// unskilled splits eights and aces and otherwise hits anything under 17
func unskilled(cards []entities.Card, allowSplit bool) entities.Action {
	if allowSplit && len(cards) == 2 && cards[0].SameFace(cards[1]) {
		if face := cards[0].Face; face == entities.Eight || face == entities.Ace {
			return entities.Split
		}
	}
	if blackjack.HandValue(cards) < blackjack.DealerStandsOn {
		return entities.Hit
	}
	return entities.Stand
}

// Advisor binds a table and mode so agents can ask for actions
type Advisor struct {
	table *Table
	mode  Mode
}

// NewAdvisor creates an Advisor
func NewAdvisor(table *Table, mode Mode) *Advisor {
	return &Advisor{
		table: table,
		mode:  mode,
	}
}

// Next implements blackjack.ActionSource
func (a *Advisor) Next(hand *entities.Hand, upcard entities.Card, trueCount float64, allowSplit bool) entities.Action {
	return a.table.Recommend(hand.Cards, upcard, trueCount, a.mode, allowSplit)
}

func (a *Advisor) Mode() Mode {
	return a.mode
}
