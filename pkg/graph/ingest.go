package graph

import (
	"github.com/teamscope-ai/teamscope/backend/pkg/ai"
	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

// rawAnalysis mirrors the loosely-typed analysis payload as AI models
// emit it. Some models put power centers at the top level, others nest
// them under analysis_data; both shapes are accepted here and nowhere
// else.
type rawAnalysis struct {
	CohesionScore float64                `json:"cohesion_score"`
	TensionLevel  string                 `json:"tension_level"`
	TeamSize      int                    `json:"team_size"`
	InfluenceMap  []common.InfluenceLink `json:"influence_map"`
	Alliances     []common.Alliance      `json:"alliances"`
	Tensions      []common.Tension       `json:"tensions"`
	PowerCenters  []common.PowerCenter   `json:"power_centers"`
	AnalysisData  *struct {
		PowerCenters []common.PowerCenter `json:"power_centers"`
	} `json:"analysis_data"`
}

// ParseAnalysis normalizes a raw analysis payload into a TeamAnalysis.
// Parsing is tolerant (repairing malformed JSON, accepting both payload
// shapes) and defaulting happens once here, so the graph builder never
// re-checks for absent fields. An error is returned only when the
// payload is beyond repair; callers may then fall back to the zero
// value, which builds a hierarchy-only graph.
func ParseAnalysis(payload string) (common.TeamAnalysis, error) {
	var raw rawAnalysis
	if err := ai.UnmarshalFlexible(payload, &raw); err != nil {
		return common.TeamAnalysis{}, err
	}

	centers := raw.PowerCenters
	if len(centers) == 0 && raw.AnalysisData != nil {
		centers = raw.AnalysisData.PowerCenters
	}

	return common.TeamAnalysis{
		CohesionScore: raw.CohesionScore,
		TensionLevel:  raw.TensionLevel,
		TeamSize:      raw.TeamSize,
		InfluenceMap:  raw.InfluenceMap,
		Alliances:     raw.Alliances,
		Tensions:      raw.Tensions,
		PowerCenters:  centers,
	}, nil
}
