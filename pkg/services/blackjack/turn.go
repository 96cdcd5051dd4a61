package blackjack

import (
	"fmt"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
)

// ActionSource recommends the next action for a hand. allowSplit is false when the
// source is asked again after a split could not be funded.
type ActionSource interface {
	Next(hand *entities.Hand, upcard entities.Card, trueCount float64, allowSplit bool) entities.Action
}

// ActionSourceFunc adapts a function to the ActionSource interface
type ActionSourceFunc func(hand *entities.Hand, upcard entities.Card, trueCount float64, allowSplit bool) entities.Action

// Next calls f
func (f ActionSourceFunc) Next(hand *entities.Hand, upcard entities.Card, trueCount float64, allowSplit bool) entities.Action {
	return f(hand, upcard, trueCount, allowSplit)
}

// TurnResolver plays every hand in a seat's arena. Hands created by a split are
// appended to the arena and picked up by the same cursor.
type TurnResolver struct {
	seat   *Seat
	source ActionSource
}

// NewTurnResolver creates a resolver for one seat
func NewTurnResolver(seat *Seat, source ActionSource) *TurnResolver {
	return &TurnResolver{
		seat:   seat,
		source: source,
	}
}

// Play resolves the whole turn and returns the actions actually taken, one log per
// hand in arena order.
func (r *TurnResolver) Play(upcard entities.Card, shoe *entities.Shoe) ([][]entities.Action, error) {
	logs := make([][]entities.Action, 0, len(r.seat.Hands))

	for i := 0; i < len(r.seat.Hands); i++ {
		actions, err := r.playHand(i, upcard, shoe)
		logs = append(logs, actions)
		if err != nil {
			return logs, err
		}
	}

	return logs, nil
}

func (r *TurnResolver) playHand(i int, upcard entities.Card, shoe *entities.Shoe) ([]entities.Action, error) {
	hand := r.seat.Hands[i]
	actions := make([]entities.Action, 0, 2)

	if IsNatural(hand.Cards) {
		return append(actions, entities.Stand), nil
	}

	for HandValue(hand.Cards) < Blackjack {
		recommended := r.source.Next(hand, upcard, shoe.TrueCount(), true)
		taken, done, err := r.apply(i, recommended, upcard, shoe, true)
		actions = append(actions, taken)
		if err != nil {
			return actions, err
		}
		if done {
			break
		}
	}

	return actions, nil
}

// apply executes one recommendation against hand i and returns the action that was
// actually taken and whether the hand is finished.
func (r *TurnResolver) apply(i int, action entities.Action, upcard entities.Card, shoe *entities.Shoe, allowSplit bool) (entities.Action, bool, error) {
	switch action {
	case entities.Hit:
		return entities.Hit, false, r.seat.Hit(i, shoe)

	case entities.Stand:
		return entities.Stand, true, nil

	case entities.Split:
		if !allowSplit {
			return entities.Stand, true, nil
		}
		if r.seat.CanSplit(i) {
			return entities.Split, false, r.seat.Split(i, shoe)
		}
		alternative := r.source.Next(r.seat.Hands[i], upcard, shoe.TrueCount(), false)
		return r.apply(i, alternative, upcard, shoe, false)

	case entities.DoubleOrHit, entities.DoubleOrStand:
		if r.seat.CanDouble(i) {
			return action, true, r.seat.Double(i, shoe)
		}
		if action == entities.DoubleOrHit {
			return r.apply(i, entities.Hit, upcard, shoe, allowSplit)
		}
		return entities.Stand, true, nil

	default:
		return action, true, types.NewGameError(types.ErrInvalidAction, fmt.Sprintf("unknown action %s", action))
	}
}
