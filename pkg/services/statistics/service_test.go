package statistics

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRepository is a mock implementation of the results.Repository interface
type MockRepository struct {
	mock.Mock
}

// SaveRun implements Repository
func (m *MockRepository) SaveRun(ctx context.Context, run *entities.RunRecord) error {
	args := m.Called(ctx, run)
	return args.Error(0)
}

// GetRun implements Repository
func (m *MockRepository) GetRun(ctx context.Context, id string) (*entities.RunRecord, error) {
	args := m.Called(ctx, id)
	if run, ok := args.Get(0).(*entities.RunRecord); ok {
		return run, args.Error(1)
	}
	return nil, args.Error(1)
}

// ListRuns implements Repository
func (m *MockRepository) ListRuns(ctx context.Context, strategy string, limit int) ([]*entities.RunRecord, error) {
	args := m.Called(ctx, strategy, limit)
	if runs, ok := args.Get(0).([]*entities.RunRecord); ok {
		return runs, args.Error(1)
	}
	return nil, args.Error(1)
}

// Close implements Repository
func (m *MockRepository) Close() error {
	return nil
}

func summary(strategy string, final int64, rounds, wins, losses, pushes, brokeRound int) *entities.AgentSummary {
	return &entities.AgentSummary{
		AgentID:          strategy,
		Strategy:         strategy,
		StartingBankroll: 2000,
		FinalBankroll:    final,
		RoundsPlayed:     rounds,
		Wins:             wins,
		Losses:           losses,
		Pushes:           pushes,
		BrokeRound:       brokeRound,
		TotalWagered:     int64(rounds) * 20,
	}
}

func testRuns() []*entities.RunRecord {
	return []*entities.RunRecord{
		{
			ID: "run-1",
			Agents: []*entities.AgentSummary{
				summary("basic", 2100, 40, 20, 16, 4, 0),
				summary("counting", 2400, 40, 21, 15, 4, 0),
				summary("unskilled", 0, 25, 8, 16, 1, 25),
			},
		},
		{
			ID: "run-2",
			Agents: []*entities.AgentSummary{
				summary("basic", 1900, 40, 18, 18, 4, 0),
				summary("counting", 1800, 40, 17, 19, 4, 0),
				summary("unskilled", 900, 40, 15, 23, 2, 0),
			},
		},
	}
}

func TestCompareStrategies(t *testing.T) {
	// Setup
	mockRepo := new(MockRepository)
	mockRepo.On("ListRuns", mock.Anything, "", 50).Return(testRuns(), nil)
	clock := quartz.NewMock(t)
	service := NewService(mockRepo, clock)

	// Execute
	comparison, err := service.CompareStrategies(context.Background(), 50)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 2, comparison.RunsAnalyzed)
	assert.Equal(t, clock.Now(), comparison.GeneratedAt)
	require.Len(t, comparison.Strategies, 3)

	counting := comparison.Strategies[0]
	assert.Equal(t, "counting", counting.Strategy)
	assert.Equal(t, 2, counting.Agents)
	assert.InDelta(t, 100.0, counting.MeanProfit, 1e-9)
	assert.InDelta(t, 2100.0, counting.MeanFinalBankroll, 1e-9)
	assert.InDelta(t, 2.5, counting.MeanProfitPerRound, 1e-9)
	assert.Equal(t, int64(200), counting.NetProfit)
	assert.InDelta(t, 38.0/80.0, counting.WinRate, 1e-9)
	assert.InDelta(t, 34.0/80.0, counting.LossRate, 1e-9)
	assert.InDelta(t, 8.0/80.0, counting.PushRate, 1e-9)

	basic := comparison.Strategies[1]
	assert.Equal(t, "basic", basic.Strategy)
	assert.InDelta(t, 0.0, basic.MeanProfit, 1e-9)
	assert.Zero(t, basic.RuinedCount)

	unskilled := comparison.Strategies[2]
	assert.Equal(t, "unskilled", unskilled.Strategy)
	assert.Equal(t, 1, unskilled.BrokeCount)
	assert.Equal(t, 2, unskilled.RuinedCount)
	assert.InDelta(t, 1.0, unskilled.RuinProportion, 1e-9)
	assert.Equal(t, int64(-3100), unskilled.NetProfit)
	assert.Equal(t, int64(1300), unskilled.TotalWagered)

	mockRepo.AssertExpectations(t)
}

func TestCompareStrategiesPropagatesErrors(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("ListRuns", mock.Anything, "", 0).Return(nil, errors.New("connection refused"))

	comparison, err := NewService(mockRepo, nil).CompareStrategies(context.Background(), 0)

	assert.Nil(t, comparison)
	assert.EqualError(t, err, "connection refused")
	mockRepo.AssertExpectations(t)
}

func TestAggregateEmpty(t *testing.T) {
	assert.Empty(t, Aggregate(nil))
	assert.Empty(t, Aggregate([]*entities.RunRecord{{ID: "empty"}}))
}

func TestAggregateAgentWithoutHands(t *testing.T) {
	stats := Aggregate([]*entities.RunRecord{{
		ID:     "run",
		Agents: []*entities.AgentSummary{summary("basic", 2000, 0, 0, 0, 0, 0)},
	}})

	require.Len(t, stats, 1)
	assert.Zero(t, stats[0].WinRate)
	assert.Zero(t, stats[0].MeanProfitPerRound)
}

func TestWriteAgentCSV(t *testing.T) {
	// Setup
	var buf bytes.Buffer

	// Execute
	err := WriteAgentCSV(&buf, testRuns())

	// Assert
	require.NoError(t, err)
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 7)
	assert.Equal(t, "Strategy", records[0][2])
	assert.Equal(t, []string{"run-1", "counting", "counting", "2000", "2400", "400", "10.00"}, records[2][:7])
	assert.Equal(t, "25", records[3][16])
}
