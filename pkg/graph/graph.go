// Package graph assembles the typed team relationship graph from
// contact records, behavioral profiles and AI team analysis output.
//
// Formal reporting lines come from contact records; influence, alliance
// and tension edges come from the analysis. Person references in the
// analysis are free text and resolve through the identity resolver;
// edges whose endpoints do not resolve to a known contact are dropped,
// never fabricated.
package graph

import (
	"sort"

	"github.com/teamscope-ai/teamscope/backend/pkg/common"
	"github.com/teamscope-ai/teamscope/backend/pkg/hierarchy"
	"github.com/teamscope-ai/teamscope/backend/pkg/identity"
)

// Build assembles the TeamGraph for one team. It is a pure function of
// its inputs and is recomputed wholesale on every request. A zero-value
// analysis yields a graph with hierarchy edges only, which is the valid
// "no team analysis yet" state.
func Build(
	contacts []common.Contact,
	profiles []common.BehavioralProfile,
	analysis common.TeamAnalysis,
) common.TeamGraph {
	resolver := identity.NewResolver(contacts)
	levels := hierarchy.Levels(contacts)

	known := make(map[string]common.Contact, len(contacts))
	for _, c := range contacts {
		known[c.ID] = c
	}

	influence := make(map[string]float64, len(profiles))
	profiled := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if _, ok := known[p.ContactID]; !ok {
			continue
		}
		influence[p.ContactID] = common.Clamp(p.InfluenceScore, 0, 100)
		profiled[p.ContactID] = struct{}{}
	}

	edges := make([]common.RelationshipEdge, 0, len(contacts)+len(analysis.InfluenceMap))

	for _, c := range contacts {
		manager := c.ReportsTo()
		if manager == "" {
			continue
		}
		if _, ok := known[manager]; !ok {
			continue
		}
		edges = append(edges, common.RelationshipEdge{
			From: c.ID,
			To:   manager,
			Kind: common.RelationReportsTo,
		})
	}

	for _, link := range analysis.InfluenceMap {
		from, okFrom := resolver.ResolveID(link.FromPerson)
		to, okTo := resolver.ResolveID(link.ToPerson)
		if !okFrom || !okTo || from == to {
			continue
		}
		edges = append(edges, common.RelationshipEdge{
			From:     from,
			To:       to,
			Kind:     common.RelationInfluences,
			Strength: common.Clamp(link.Strength, 0, 1),
		})
	}

	for _, alliance := range analysis.Alliances {
		members := resolveMembers(resolver, alliance.Members)
		// expand alliances to pairwise edges between all resolved members
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				edges = append(edges, common.RelationshipEdge{
					From:     members[i],
					To:       members[j],
					Kind:     common.RelationAlignedWith,
					Strength: common.Clamp(alliance.Strength, 0, 1),
				})
			}
		}
	}

	// tensions are pair edges: the first two resolved members form the
	// edge, extra names are ignored (analyses report friction between
	// two parties; a wider group arrives as multiple tensions)
	for _, tension := range analysis.Tensions {
		members := resolveMembers(resolver, tension.Between)
		if len(members) < 2 {
			continue
		}
		edges = append(edges, common.RelationshipEdge{
			From:  members[0],
			To:    members[1],
			Kind:  common.RelationTensionWith,
			Level: normalizeLevel(tension.Level),
		})
	}

	inGraph := make(map[string]struct{}, len(contacts))
	for _, e := range edges {
		inGraph[e.From] = struct{}{}
		inGraph[e.To] = struct{}{}
	}
	for id := range profiled {
		inGraph[id] = struct{}{}
	}

	// contact-list order keeps node output deterministic
	nodes := make([]common.GraphNode, 0, len(inGraph))
	for _, c := range contacts {
		if _, ok := inGraph[c.ID]; !ok {
			continue
		}
		nodes = append(nodes, common.GraphNode{
			ID:             c.ID,
			Name:           c.Name,
			Role:           c.Role,
			Level:          levels[c.ID],
			InfluenceScore: influence[c.ID],
		})
	}

	return common.TeamGraph{
		Nodes:         nodes,
		Edges:         edges,
		CohesionScore: common.Clamp(analysis.CohesionScore, 0, 100),
		TensionLevel:  normalizeLevel(analysis.TensionLevel),
		PowerCenters:  rankPowerCenters(resolver, analysis.PowerCenters),
	}
}

// rankPowerCenters re-ranks the supplied entries by influence reach,
// descending. The sort is stable so entries with equal reach keep their
// input order. Power types pass through untouched; they categorize for
// display only.
func rankPowerCenters(resolver *identity.Resolver, centers []common.PowerCenter) []common.RankedPowerCenter {
	ranked := make([]common.RankedPowerCenter, 0, len(centers))
	for _, pc := range centers {
		entry := common.RankedPowerCenter{
			Name:           resolver.Resolve(pc.Person).Name,
			PowerType:      pc.PowerType,
			InfluenceReach: common.Clamp(pc.InfluenceReach, 0, 100),
		}
		if id, ok := resolver.ResolveID(pc.Person); ok {
			entry.ContactID = id
		}
		ranked = append(ranked, entry)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].InfluenceReach > ranked[j].InfluenceReach
	})
	return ranked
}

func resolveMembers(resolver *identity.Resolver, refs []string) []string {
	ids := make([]string, 0, len(refs))
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		id, ok := resolver.ResolveID(ref)
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func normalizeLevel(level string) string {
	switch level {
	case common.LevelLow, common.LevelMedium, common.LevelHigh:
		return level
	default:
		return common.LevelLow
	}
}
