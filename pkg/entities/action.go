package entities

import (
	"fmt"
	"strings"
)

// Action is one of the five player decisions. DoubleOrHit and DoubleOrStand prefer
// doubling and fall back to Hit or Stand when the double cannot be funded.
type Action int

const (
	Hit Action = iota
	Stand
	DoubleOrHit
	DoubleOrStand
	Split
)

var actionNames = map[Action]string{
	Hit:           "hit",
	Stand:         "stand",
	DoubleOrHit:   "double_hit",
	DoubleOrStand: "double_stand",
	Split:         "split",
}

var actionsByName = map[string]Action{
	"hit": Hit, "h": Hit,
	"stand": Stand, "s": Stand,
	"double_hit": DoubleOrHit, "d": DoubleOrHit, "dh": DoubleOrHit,
	"double_stand": DoubleOrStand, "ds": DoubleOrStand,
	"split": Split, "p": Split,
}

// String returns the canonical action name
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// IsDouble reports whether the action asks to double
func (a Action) IsDouble() bool {
	return a == DoubleOrHit || a == DoubleOrStand
}

// ParseAction accepts canonical names and the usual chart abbreviations (H, S, D, Ds, P)
func ParseAction(name string) (Action, error) {
	if a, ok := actionsByName[strings.ToLower(name)]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("unknown action %q", name)
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	name, ok := actionNames[a]
	if !ok {
		return nil, fmt.Errorf("unknown action %d", int(a))
	}
	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	parsed, err := ParseAction(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
