package main

import (
	"bytes"
	"testing"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/fadedpez/shoesim/pkg/services/statistics"
	"github.com/fadedpez/shoesim/pkg/services/strategy"
	"github.com/fadedpez/shoesim/pkg/simulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAgents(t *testing.T) {
	specs, err := parseAgents([]string{"basic", " counting=3", "unskilled=1"}, strategy.DefaultRegistry())

	require.NoError(t, err)
	assert.Equal(t, []simulation.AgentSpec{
		{Strategy: "basic", Count: 1},
		{Strategy: "counting", Count: 3},
		{Strategy: "unskilled", Count: 1},
	}, specs)
}

func TestParseAgentsErrors(t *testing.T) {
	testCases := []struct {
		name   string
		values []string
	}{
		{"unknown strategy", []string{"martingale"}},
		{"bad count", []string{"basic=two"}},
		{"zero count", []string{"basic=0"}},
		{"nothing", nil},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseAgents(tc.values, strategy.DefaultRegistry())
			assert.True(t, types.IsGameError(err, types.ErrInvalidConfig))
		})
	}
}

func TestDescribeRound(t *testing.T) {
	record := &entities.RoundRecord{
		Number:      3,
		TrueCount:   1.5,
		Reshuffled:  true,
		DealerCards: []entities.Card{entities.NewCard(entities.Spades, entities.King), entities.NewCard(entities.Hearts, entities.Seven)},
		DealerScore: 17,
		Agents: []entities.AgentRound{{
			AgentID: "basic-1",
			Bet:     20,
			Hands: []entities.HandOutcome{{
				Actions: []entities.Action{entities.Stand},
				Outcome: entities.OutcomeWin,
			}},
			Delta:         20,
			BankrollAfter: 2020,
		}},
		Dropped: []string{"unskilled-2"},
	}

	line := describeRound(record)

	assert.Contains(t, line, "round 3 tc 1.50")
	assert.Contains(t, line, "(17)")
	assert.Contains(t, line, "[reshuffled]")
	assert.Contains(t, line, "basic-1 bet 20")
	assert.Contains(t, line, "[stand] WIN")
	assert.Contains(t, line, "=> +20 (2020)")
	assert.Contains(t, line, "broke: unskilled-2")
}

func TestPrintComparison(t *testing.T) {
	var buf bytes.Buffer
	printComparison(&buf, &statistics.Comparison{
		RunsAnalyzed: 2,
		Strategies: []*statistics.StrategyStats{
			{Strategy: "counting", Agents: 2, MeanProfit: 100, WinRate: 0.475, NetProfit: 200},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Strategy comparison over 2 runs")
	assert.Contains(t, out, "counting")
	assert.Contains(t, out, "47.5")
	assert.Contains(t, out, "100.00")
}

func TestPrintRun(t *testing.T) {
	var buf bytes.Buffer
	printRun(&buf, &entities.RunRecord{
		ID:            "run-1",
		Seed:          7,
		RoundsPlanned: 40,
		RoundsPlayed:  40,
		Agents: []*entities.AgentSummary{
			{AgentID: "basic-1", StartingBankroll: 2000, FinalBankroll: 2060},
			{AgentID: "unskilled-2", StartingBankroll: 2000, BrokeRound: 31},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Run run-1 (seed 7): 40 of 40 rounds")
	assert.Contains(t, out, "basic-1 finished with bankroll 2060 (+60)")
	assert.Contains(t, out, "unskilled-2 went broke in round 31")
}
