package results

import (
	"sort"

	"github.com/fadedpez/shoesim/pkg/entities"
)

// copyRun returns a deep copy so stored records never alias caller memory
func copyRun(run *entities.RunRecord) *entities.RunRecord {
	clone := *run
	clone.Agents = make([]*entities.AgentSummary, len(run.Agents))
	for i, agent := range run.Agents {
		summary := *agent
		clone.Agents[i] = &summary
	}
	return &clone
}

// seatsStrategy reports whether any agent in the run played the strategy
func seatsStrategy(run *entities.RunRecord, strategy string) bool {
	if strategy == "" {
		return true
	}
	for _, agent := range run.Agents {
		if agent.Strategy == strategy {
			return true
		}
	}
	return false
}

// newestFirst orders runs by completion time, most recent first. Ties keep the
// later-saved run first.
func newestFirst(runs []*entities.RunRecord) {
	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CompletedAt.After(runs[j].CompletedAt)
	})
}

func applyLimit(runs []*entities.RunRecord, limit int) []*entities.RunRecord {
	if limit > 0 && len(runs) > limit {
		return runs[:limit]
	}
	return runs
}
