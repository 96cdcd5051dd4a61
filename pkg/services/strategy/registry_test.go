package strategy

import (
	"testing"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/services/blackjack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stacked(faces ...entities.Face) *entities.Shoe {
	order := hand(faces...)
	for len(order) < 60 {
		order = append(order, entities.NewCard(entities.Clubs, entities.Seven))
	}
	return entities.NewStackedShoe(2, order)
}

func TestDefaultRegistry(t *testing.T) {
	registry := DefaultRegistry()

	assert.Equal(t, []string{"basic", "counting", "unskilled"}, registry.List())

	profile, err := registry.Get("counting")
	require.NoError(t, err)
	assert.Equal(t, Counting, profile.Mode)
}

func TestRegistryRejectsDuplicatesAndUnknowns(t *testing.T) {
	registry := DefaultRegistry()

	err := registry.Register("basic", Profile{Mode: Basic})
	assert.True(t, types.IsGameError(err, types.ErrInvalidConfig))

	_, err = registry.Get("wonging")
	assert.True(t, types.IsGameError(err, types.ErrInvalidConfig))

	_, err = registry.NewAgent("a1", "wonging", DefaultTable(), 2000, 20)
	assert.True(t, types.IsGameError(err, types.ErrInvalidConfig))
}

func TestNewAgentBets(t *testing.T) {
	registry := DefaultRegistry()

	counting, err := registry.NewAgent("c", "counting", DefaultTable(), 2000, 20)
	require.NoError(t, err)
	basic, err := registry.NewAgent("b", "basic", DefaultTable(), 2000, 20)
	require.NoError(t, err)

	assert.Equal(t, "counting", counting.Strategy())
	assert.Equal(t, "counting", counting.Seat().Stats.Strategy)
	assert.Equal(t, int64(60), counting.PlaceBet(3.2))
	assert.Equal(t, int64(20), basic.PlaceBet(3.2))
	assert.Equal(t, int64(20), counting.PlaceBet(-2))
}

func TestBasicAgentSplitsEightsAgainstSix(t *testing.T) {
	// Setup
	agent, err := DefaultRegistry().NewAgent("b", "basic", DefaultTable(), 1000, 100)
	require.NoError(t, err)
	seat := agent.Seat()
	require.NoError(t, seat.Open(100, hand(entities.Eight, entities.Eight)...))
	shoe := stacked(entities.Ten, entities.Nine)

	// Execute
	logs, err := agent.PlayTurn(up(entities.Six), shoe)

	// Assert
	require.NoError(t, err)
	require.Len(t, seat.Hands, 2)
	for _, h := range seat.Hands {
		assert.Len(t, h.Cards, 2)
	}
	assert.Equal(t, int64(200), seat.CommittedBet())
	assert.Equal(t, []entities.Action{entities.Split, entities.Stand}, logs[0])
	assert.Equal(t, []entities.Action{entities.Stand}, logs[1])
}

func TestBasicAgentDoublesElevenWithExactBankroll(t *testing.T) {
	// Setup
	agent, err := DefaultRegistry().NewAgent("b", "basic", DefaultTable(), 200, 100)
	require.NoError(t, err)
	seat := agent.Seat()
	require.NoError(t, seat.Open(100, hand(entities.Six, entities.Five)...))
	shoe := stacked(entities.Two)

	// Execute
	logs, err := agent.PlayTurn(up(entities.Six), shoe)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(200), seat.Hands[0].Bet)
	assert.Len(t, seat.Hands[0].Cards, 3)
	assert.Equal(t, 13, blackjack.HandValue(seat.Hands[0].Cards))
	assert.Equal(t, [][]entities.Action{{entities.DoubleOrHit}}, logs)
	assert.Zero(t, seat.Bankroll)
}

func TestCountingAgentHitsSixteenAgainstTenWhenNegative(t *testing.T) {
	// Setup: the upcard and two revealed tens drive the running count negative
	agent, err := DefaultRegistry().NewAgent("c", "counting", DefaultTable(), 1000, 10)
	require.NoError(t, err)
	shoe := stacked(entities.King, entities.Queen, entities.Jack)
	for i := 0; i < 2; i++ {
		_, err := shoe.Deal(true)
		require.NoError(t, err)
	}
	require.Less(t, shoe.TrueCount(), 0.0)
	require.NoError(t, agent.Seat().Open(10, hand(entities.Ten, entities.Six)...))

	// Execute
	logs, err := agent.PlayTurn(up(entities.Ten), shoe)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entities.Hit, logs[0][0])
}
