package strategy

import (
	"testing"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/stretchr/testify/suite"
)

type TableTestSuite struct {
	suite.Suite
	table *Table
}

func TestTableSuite(t *testing.T) {
	suite.Run(t, new(TableTestSuite))
}

func (s *TableTestSuite) SetupTest() {
	s.table = DefaultTable()
}

func (s *TableTestSuite) TestDefaultChartIsComplete() {
	s.Len(s.table.Base, 10*10+7*10+10*10)
	for total := 8; total <= 17; total++ {
		for _, dealer := range dealerColumns {
			_, ok := s.table.Base[Key{Kind: Hard, Value: total, Dealer: dealer}]
			s.True(ok, "hard %d vs %s", total, dealer)
		}
	}
}

func (s *TableTestSuite) TestBasicChartCells() {
	s.Equal(entities.Stand, s.table.Recommend(hand(entities.Ten, entities.Six), up(entities.Ten), 0, Basic, true))
	s.Equal(entities.Stand, s.table.Recommend(hand(entities.Nine, entities.Seven), up(entities.King), 0, Basic, true))
	s.Equal(entities.DoubleOrHit, s.table.Recommend(hand(entities.Six, entities.Five), up(entities.Six), 0, Basic, true))
	s.Equal(entities.Split, s.table.Recommend(hand(entities.Eight, entities.Eight), up(entities.Six), 0, Basic, true))
	s.Equal(entities.Split, s.table.Recommend(hand(entities.Ace, entities.Ace), up(entities.Ace), 0, Basic, true))
	s.Equal(entities.DoubleOrStand, s.table.Recommend(hand(entities.Ace, entities.Seven), up(entities.Four), 0, Basic, true))
	s.Equal(entities.Hit, s.table.Recommend(hand(entities.Ace, entities.Seven), up(entities.Nine), 0, Basic, true))
	s.Equal(entities.Hit, s.table.Recommend(hand(entities.Ten, entities.Two), up(entities.Two), 0, Basic, true))
	s.Equal(entities.DoubleOrHit, s.table.Recommend(hand(entities.Five, entities.Five), up(entities.Nine), 0, Basic, true))
}

func (s *TableTestSuite) TestBasicIgnoresCount() {
	s.Equal(entities.Stand, s.table.Recommend(hand(entities.Ten, entities.Six), up(entities.Ten), -6, Basic, true))
}

func (s *TableTestSuite) TestSixteenVersusTenDeviation() {
	cards := hand(entities.Ten, entities.Six)
	upcard := up(entities.Jack)

	s.Equal(entities.Hit, s.table.Recommend(cards, upcard, -1, Counting, true))
	s.Equal(entities.Hit, s.table.Recommend(cards, upcard, -0.01, Counting, true))
	s.Equal(entities.Stand, s.table.Recommend(cards, upcard, 0, Counting, true), "zero is not negative")
	s.Equal(entities.Stand, s.table.Recommend(cards, upcard, 0.01, Counting, true))
}

func (s *TableTestSuite) TestLoneZeroLowerBoundIsStrict() {
	// Setup
	key := Key{Kind: Hard, Value: 13, Dealer: entities.Two}
	table := NewTable(map[Key]entities.Action{key: entities.Stand}, map[Key]Deviation{key: AtLeast(0, entities.Hit)})
	cards := hand(entities.Ten, entities.Three)

	// Execute / Assert
	s.Equal(entities.Stand, table.Recommend(cards, up(entities.Two), 0, Counting, true))
	s.Equal(entities.Hit, table.Recommend(cards, up(entities.Two), 0.01, Counting, true))
	s.Equal(entities.Stand, table.Recommend(cards, up(entities.Two), -0.01, Counting, true))
}

func (s *TableTestSuite) TestNonZeroBoundsAreInclusiveThenExclusive() {
	s.True(AtLeast(4, entities.Stand).Matches(4))
	s.False(AtLeast(4, entities.Stand).Matches(3.99))

	s.False(Below(-1, entities.Hit).Matches(-1))
	s.True(Below(-1, entities.Hit).Matches(-1.01))

	band := Between(1, 3, entities.Hit)
	s.True(band.Matches(1))
	s.True(band.Matches(2.99))
	s.False(band.Matches(3))
	s.False(band.Matches(0.99))

	zeroBand := Between(0, 2, entities.Hit)
	s.True(zeroBand.Matches(0), "zero is only strict when it is the sole bound")

	s.True(Deviation{Action: entities.Hit}.Matches(-10))
}

func (s *TableTestSuite) TestFifteenVersusTenAtBoundary() {
	cards := hand(entities.Nine, entities.Six)
	s.Equal(entities.Stand, s.table.Recommend(cards, up(entities.Ten), 4, Counting, true))
	s.Equal(entities.Hit, s.table.Recommend(cards, up(entities.Ten), 3.99, Counting, true))
}

func (s *TableTestSuite) TestTensSplitOnlyAtHighCount() {
	cards := hand(entities.King, entities.Ten)
	s.Equal(entities.Split, s.table.Recommend(cards, up(entities.Six), 4, Counting, true))
	s.Equal(entities.Stand, s.table.Recommend(cards, up(entities.Six), 3, Counting, true))
	s.Equal(entities.Stand, s.table.Recommend(cards, up(entities.Six), 4, Counting, false), "hard 20 has no deviation")
}

func (s *TableTestSuite) TestMissingEntryStands() {
	table := NewTable(nil, nil)
	s.Equal(entities.Stand, table.Recommend(hand(entities.Two, entities.Three), up(entities.Ten), 0, Basic, true))
	s.Equal(entities.Stand, table.Recommend(hand(entities.Two, entities.Three), up(entities.Ten), 0, Counting, true))
}

func (s *TableTestSuite) TestUnskilled() {
	s.Equal(entities.Split, s.table.Recommend(hand(entities.Eight, entities.Eight), up(entities.Ten), 0, Unskilled, true))
	s.Equal(entities.Split, s.table.Recommend(hand(entities.Ace, entities.Ace), up(entities.Six), 0, Unskilled, true))
	s.Equal(entities.Hit, s.table.Recommend(hand(entities.Eight, entities.Eight), up(entities.Ten), 0, Unskilled, false))
	s.Equal(entities.Stand, s.table.Recommend(hand(entities.Nine, entities.Nine), up(entities.Ten), 0, Unskilled, true))
	s.Equal(entities.Hit, s.table.Recommend(hand(entities.Ten, entities.Six), up(entities.Six), 0, Unskilled, true))
	s.Equal(entities.Stand, s.table.Recommend(hand(entities.Ten, entities.Seven), up(entities.Ace), 0, Unskilled, true))
}

func (s *TableTestSuite) TestParseMode() {
	mode, err := ParseMode("Counting")
	s.NoError(err)
	s.Equal(Counting, mode)

	_, err = ParseMode("martingale")
	s.Error(err)
	s.True(types.IsGameError(err, types.ErrInvalidConfig))
}

func (s *TableTestSuite) TestCloneIsIndependent() {
	clone := s.table.Clone()
	key := Key{Kind: Hard, Value: 16, Dealer: entities.Ten}
	clone.Base[key] = entities.Hit

	s.Equal(entities.Stand, s.table.Base[key])
	s.Equal(entities.Hit, clone.Base[key])
}

func (s *TableTestSuite) TestDefaultTableReturnsFreshMaps() {
	key := Key{Kind: Hard, Value: 16, Dealer: entities.Ten}
	s.table.Deviations[key] = AtLeast(10, entities.Split)

	s.Equal(entities.Hit, DefaultTable().Deviations[key].Action)
}
