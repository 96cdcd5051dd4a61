package strategy

import (
	"fmt"
	"os"
	"strings"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/entities"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// TableFile is the HCL form of table overrides:
//
//	entry "hard" {
//	  value  = 16
//	  dealer = "10"
//	  action = "hit"
//	}
//
//	deviation "pair" {
//	  value    = 10
//	  dealer   = "6"
//	  action   = "split"
//	  at_least = 4
//	}
type TableFile struct {
	Entries    []EntryBlock     `hcl:"entry,block"`
	Deviations []DeviationBlock `hcl:"deviation,block"`
}

// EntryBlock overrides one base chart cell
type EntryBlock struct {
	Kind   string `hcl:"kind,label"`
	Value  int    `hcl:"value"`
	Dealer string `hcl:"dealer"`
	Action string `hcl:"action"`
}

// DeviationBlock adds or replaces one count deviation
type DeviationBlock struct {
	Kind    string   `hcl:"kind,label"`
	Value   int      `hcl:"value"`
	Dealer  string   `hcl:"dealer"`
	Action  string   `hcl:"action"`
	AtLeast *float64 `hcl:"at_least,optional"`
	Below   *float64 `hcl:"below,optional"`
}

var dealerNames = map[string]entities.Face{
	"2": entities.Two, "3": entities.Three, "4": entities.Four, "5": entities.Five,
	"6": entities.Six, "7": entities.Seven, "8": entities.Eight, "9": entities.Nine,
	"10": entities.Ten, "T": entities.Ten, "J": entities.Ten, "Q": entities.Ten, "K": entities.Ten,
	"A": entities.Ace,
}

// LoadTableHCL returns the default table with the file's overrides applied. A
// missing file yields the default table unchanged.
func LoadTableHCL(filename string) (*Table, error) {
	table := DefaultTable()
	if filename == "" {
		return table, nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return table, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, types.WrapError(types.ErrInvalidConfig, "failed to parse strategy file", diags)
	}

	var overrides TableFile
	diags = gohcl.DecodeBody(file.Body, nil, &overrides)
	if diags.HasErrors() {
		return nil, types.WrapError(types.ErrInvalidConfig, "failed to decode strategy file", diags)
	}

	if err := overrides.Apply(table); err != nil {
		return nil, err
	}
	return table, nil
}

// Apply writes the overrides into table
func (f *TableFile) Apply(table *Table) error {
	for _, entry := range f.Entries {
		key, err := blockKey(entry.Kind, entry.Value, entry.Dealer)
		if err != nil {
			return err
		}
		action, err := entities.ParseAction(entry.Action)
		if err != nil {
			return types.WrapError(types.ErrInvalidConfig, fmt.Sprintf("entry %s", key), err)
		}
		table.Base[key] = action
	}

	for _, block := range f.Deviations {
		key, err := blockKey(block.Kind, block.Value, block.Dealer)
		if err != nil {
			return err
		}
		action, err := entities.ParseAction(block.Action)
		if err != nil {
			return types.WrapError(types.ErrInvalidConfig, fmt.Sprintf("deviation %s", key), err)
		}
		table.Deviations[key] = Deviation{Lower: block.AtLeast, Upper: block.Below, Action: action}
	}

	return nil
}

func blockKey(kindName string, value int, dealerName string) (Key, error) {
	kind, err := ParseKind(kindName)
	if err != nil {
		return Key{}, types.WrapError(types.ErrInvalidConfig, "invalid strategy block", err)
	}
	dealer, ok := dealerNames[strings.ToUpper(dealerName)]
	if !ok {
		return Key{}, types.NewGameError(types.ErrInvalidConfig, fmt.Sprintf("unknown dealer card %q", dealerName))
	}
	return Key{Kind: kind, Value: value, Dealer: dealer}, nil
}
