package strategy

import (
	"fmt"

	"github.com/fadedpez/shoesim/pkg/entities"
)

// Deviation replaces the chart action when the true count falls inside its band.
//
// A band with only a lower bound of exactly 0 means any strictly positive count,
// and a band with only an upper bound of exactly 0 means any strictly negative
// count. Any other lower bound is inclusive and any other upper bound exclusive.
// A deviation with no bounds always applies.
type Deviation struct {
	Lower  *float64
	Upper  *float64
	Action entities.Action
}

// AtLeast applies action when the true count is at least lower
func AtLeast(lower float64, action entities.Action) Deviation {
	return Deviation{Lower: &lower, Action: action}
}

// Below applies action when the true count is under upper
func Below(upper float64, action entities.Action) Deviation {
	return Deviation{Upper: &upper, Action: action}
}

// Between applies action for lower <= count < upper
func Between(lower, upper float64, action entities.Action) Deviation {
	return Deviation{Lower: &lower, Upper: &upper, Action: action}
}

// Matches reports whether the true count is inside the band
func (d Deviation) Matches(trueCount float64) bool {
	switch {
	case d.Lower != nil && d.Upper == nil && *d.Lower == 0:
		return trueCount > 0
	case d.Upper != nil && d.Lower == nil && *d.Upper == 0:
		return trueCount < 0
	}

	if d.Lower != nil && trueCount < *d.Lower {
		return false
	}
	if d.Upper != nil && trueCount >= *d.Upper {
		return false
	}
	return true
}

func (d Deviation) String() string {
	lower, upper := "-inf", "+inf"
	if d.Lower != nil {
		lower = fmt.Sprintf("%g", *d.Lower)
	}
	if d.Upper != nil {
		upper = fmt.Sprintf("%g", *d.Upper)
	}
	return fmt.Sprintf("%s when %s <= tc < %s", d.Action, lower, upper)
}
