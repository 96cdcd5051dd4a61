package strategy

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStrategyFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strategy.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadTableHCLMissingFileUsesDefaults(t *testing.T) {
	table, err := LoadTableHCL(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTable(), table)

	table, err = LoadTableHCL("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTable(), table)
}

func TestLoadTableHCLOverrides(t *testing.T) {
	path := writeStrategyFile(t, `
entry "hard" {
  value  = 16
  dealer = "K"
  action = "hit"
}

entry "soft" {
  value  = 8
  dealer = "6"
  action = "ds"
}

deviation "hard" {
  value    = 16
  dealer   = "10"
  action   = "stand"
  at_least = 2
}

deviation "pair" {
  value    = 9
  dealer   = "A"
  action   = "split"
  at_least = 1
  below    = 3
}
`)

	table, err := LoadTableHCL(path)
	require.NoError(t, err)

	sixteenVsTen := Key{Kind: Hard, Value: 16, Dealer: entities.Ten}
	assert.Equal(t, entities.Hit, table.Base[sixteenVsTen])
	assert.Equal(t, entities.DoubleOrStand, table.Base[Key{Kind: Soft, Value: 8, Dealer: entities.Six}])

	deviation := table.Deviations[sixteenVsTen]
	assert.Equal(t, entities.Stand, deviation.Action)
	require.NotNil(t, deviation.Lower)
	assert.Equal(t, 2.0, *deviation.Lower)
	assert.Nil(t, deviation.Upper)

	nines := hand(entities.Nine, entities.Nine)
	assert.Equal(t, entities.Split, table.Recommend(nines, up(entities.Ace), 2, Counting, true))
	assert.Equal(t, entities.Stand, table.Recommend(nines, up(entities.Ace), 3, Counting, true))

	// untouched cells keep their defaults
	assert.Equal(t, entities.DoubleOrHit, table.Base[Key{Kind: Hard, Value: 11, Dealer: entities.Six}])
}

func TestLoadTableHCLErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{"syntax error", `entry "hard" {`},
		{"unknown kind", "entry \"squishy\" {\n value = 1\n dealer = \"2\"\n action = \"hit\"\n}\n"},
		{"unknown dealer", "entry \"hard\" {\n value = 12\n dealer = \"Z\"\n action = \"hit\"\n}\n"},
		{"unknown action", "entry \"hard\" {\n value = 12\n dealer = \"2\"\n action = \"surrender\"\n}\n"},
		{"missing attribute", "deviation \"hard\" {\n value = 12\n action = \"hit\"\n}\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTableHCL(writeStrategyFile(t, tc.content))
			assert.Error(t, err)
			assert.True(t, types.IsGameError(err, types.ErrInvalidConfig))
		})
	}
}
