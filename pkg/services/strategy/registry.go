package strategy

import (
	"fmt"
	"slices"
	"sync"

	"github.com/fadedpez/shoesim/internal/types"
	"github.com/fadedpez/shoesim/pkg/services/blackjack"
)

// Profile describes how an automatic agent plays and bets
type Profile struct {
	Mode Mode
	Bets blackjack.BetPolicy
}

// Registry maps strategy names to profiles
type Registry struct {
	profiles map[string]Profile
	mu       sync.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		profiles: make(map[string]Profile),
	}
}

// DefaultRegistry holds the three built-in strategies. Only counting spreads its
// bets with the count.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(Unskilled.String(), Profile{Mode: Unskilled, Bets: blackjack.FlatBet})
	_ = r.Register(Basic.String(), Profile{Mode: Basic, Bets: blackjack.FlatBet})
	_ = r.Register(Counting.String(), Profile{Mode: Counting, Bets: blackjack.CountSpread})
	return r
}

// Register adds a profile under name
func (r *Registry) Register(name string, profile Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.profiles[name]; exists {
		return types.NewGameError(types.ErrInvalidConfig, fmt.Sprintf("strategy %s is already registered", name))
	}

	r.profiles[name] = profile
	return nil
}

// Get returns the profile registered under name
func (r *Registry) Get(name string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, exists := r.profiles[name]
	if !exists {
		return Profile{}, types.NewGameError(types.ErrInvalidConfig, fmt.Sprintf("unknown strategy %q", name))
	}

	return profile, nil
}

// NewAgent builds an automatic agent for the named strategy
func (r *Registry) NewAgent(id, name string, table *Table, bankroll, baseBet int64) (blackjack.Agent, error) {
	profile, err := r.Get(name)
	if err != nil {
		return nil, err
	}

	seat := blackjack.NewSeat(id, name, bankroll, baseBet)
	return blackjack.NewStrategyAgent(seat, name, NewAdvisor(table, profile.Mode), profile.Bets), nil
}

// List returns the registered strategy names in sorted order
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.profiles))
	for name := range r.profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
