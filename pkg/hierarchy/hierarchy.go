// Package hierarchy derives organizational depth from reports_to edges.
//
// Contact data is entered by hand, so manager references may dangle and
// reporting chains may contain cycles. The builder tolerates both: it
// always terminates and always yields a non-negative level for every
// contact, leaving it to callers to log anomalies.
package hierarchy

import (
	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

// Levels computes the depth of every contact in the reporting forest.
// A contact with no reports_to edge, or whose manager id resolves to no
// known contact, has level 0. Otherwise its level is the manager's
// level plus one. Cycles terminate at the last successfully resolved
// ancestor. Results are memoized, so the amortized cost is O(n).
func Levels(contacts []common.Contact) map[string]int {
	managers := make(map[string]string, len(contacts))
	known := make(map[string]struct{}, len(contacts))
	for _, c := range contacts {
		known[c.ID] = struct{}{}
		if m := c.ReportsTo(); m != "" {
			managers[c.ID] = m
		}
	}

	levels := make(map[string]int, len(contacts))
	for _, c := range contacts {
		resolveLevel(c.ID, managers, known, levels, map[string]struct{}{})
	}
	return levels
}

func resolveLevel(
	id string,
	managers map[string]string,
	known map[string]struct{},
	levels map[string]int,
	visiting map[string]struct{},
) int {
	if level, ok := levels[id]; ok {
		return level
	}
	if _, inChain := visiting[id]; inChain {
		// cycle: cut the chain here, the caller counts from zero
		return 0
	}

	manager, hasManager := managers[id]
	if !hasManager {
		levels[id] = 0
		return 0
	}
	if _, exists := known[manager]; !exists {
		// dangling manager reference, treat as a root
		levels[id] = 0
		return 0
	}

	visiting[id] = struct{}{}
	level := resolveLevel(manager, managers, known, levels, visiting) + 1
	delete(visiting, id)

	levels[id] = level
	return level
}
