package common

// Contact is the canonical record for a person known to the system.
// Contacts are created and updated by the contact management layer;
// the graph engine only reads them.
//
// A contact may carry:
//   - Aliases: alternate name strings the person is known by
//   - Relationships: directed edges, currently only "reports_to"
//   - Timezone: an IANA zone name, empty meaning UTC
type Contact struct {
	ID            string                `json:"id"`
	Name          string                `json:"name"`
	Role          string                `json:"role,omitempty"`
	Organization  string                `json:"organization,omitempty"`
	Timezone      string                `json:"timezone,omitempty"`
	AvatarKey     string                `json:"avatar_key,omitempty"`
	Aliases       []string              `json:"aliases,omitempty"`
	Relationships []ContactRelationship `json:"relationships,omitempty"`
}

// ContactRelationship is a directed edge from the owning contact to
// another contact, typed by Type (currently only "reports_to").
type ContactRelationship struct {
	Type      string `json:"type"`
	ContactID string `json:"contact_id"`
}

// ReportsTo returns the id of the contact's manager, or "" when the
// contact has no reports_to relationship.
func (c Contact) ReportsTo() string {
	for _, r := range c.Relationships {
		if r.Type == RelationReportsTo {
			return r.ContactID
		}
	}
	return ""
}

// BehavioralProfile is the per-contact AI-derived analysis artifact.
// The graph engine consumes only ContactID and InfluenceScore; the
// remaining sections are carried for display.
type BehavioralProfile struct {
	ContactID          string   `json:"contact_id"`
	InfluenceScore     float64  `json:"influence_score"`
	CommunicationStyle string   `json:"communication_style,omitempty"`
	ConfidenceLevel    string   `json:"confidence_level,omitempty"`
	Summary            string   `json:"summary,omitempty"`
	Motivations        []string `json:"motivations,omitempty"`
	PressureBehaviors  []string `json:"pressure_behaviors,omitempty"`
}

// Relationship edge kinds. ReportsTo edges come from contact records,
// the rest from AI team analysis.
const (
	RelationReportsTo   = "reports_to"
	RelationInfluences  = "influences"
	RelationAlignedWith = "aligned_with"
	RelationTensionWith = "tension_with"
)

// Tension and confidence level values used across analysis payloads.
const (
	LevelLow    = "low"
	LevelMedium = "medium"
	LevelHigh   = "high"
)

// RelationshipEdge is a directed, typed edge between two canonical
// contact ids. Strength applies to influences/aligned_with edges,
// Level to tension_with edges.
type RelationshipEdge struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Kind     string  `json:"kind"`
	Strength float64 `json:"strength,omitempty"`
	Level    string  `json:"level,omitempty"`
}

// GraphNode is a contact as it appears in the assembled team graph.
type GraphNode struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Role           string  `json:"role,omitempty"`
	Level          int     `json:"level"`
	InfluenceScore float64 `json:"influence_score,omitempty"`
}

// RankedPowerCenter is a power-center entry after ranking. ContactID is
// empty when the analysis named a person that could not be resolved to
// a canonical contact; Name then carries the display fallback.
type RankedPowerCenter struct {
	ContactID      string  `json:"contact_id,omitempty"`
	Name           string  `json:"name"`
	PowerType      string  `json:"power_type"`
	InfluenceReach float64 `json:"influence_reach"`
}

// TeamGraph is the aggregate output of the relationship graph builder:
// nodes, typed edges and the derived team-level metrics. It is
// recomputed wholesale on each analysis run, never mutated in place.
type TeamGraph struct {
	Nodes         []GraphNode         `json:"nodes"`
	Edges         []RelationshipEdge  `json:"edges"`
	CohesionScore float64             `json:"cohesion_score"`
	TensionLevel  string              `json:"tension_level"`
	PowerCenters  []RankedPowerCenter `json:"power_centers"`
}

// TeamAnalysis is the normalized team-level result of an AI analysis
// run. It is treated as authoritative upstream input: cohesion, tension
// and power centers are consumed, not recomputed from the edge set.
type TeamAnalysis struct {
	CohesionScore float64         `json:"cohesion_score"`
	TensionLevel  string          `json:"tension_level,omitempty"`
	TeamSize      int             `json:"team_size,omitempty"`
	InfluenceMap  []InfluenceLink `json:"influence_map,omitempty"`
	Alliances     []Alliance      `json:"alliances,omitempty"`
	Tensions      []Tension       `json:"tensions,omitempty"`
	PowerCenters  []PowerCenter   `json:"power_centers,omitempty"`
}

// InfluenceLink is an analysis-derived influence edge between two
// free-text person references.
type InfluenceLink struct {
	FromPerson string  `json:"from_person"`
	ToPerson   string  `json:"to_person"`
	Strength   float64 `json:"strength"`
}

// Alliance groups two or more person references that act in alignment.
type Alliance struct {
	Members  StringList `json:"members"`
	Strength float64    `json:"strength"`
}

// Tension marks friction between two person references.
type Tension struct {
	Between StringList `json:"between"`
	Level   string     `json:"level"`
}

// PowerCenter is an analysis-supplied entry naming a person with
// outsized organizational influence.
type PowerCenter struct {
	Person         string  `json:"person"`
	PowerType      string  `json:"power_type"`
	InfluenceReach float64 `json:"influence_reach"`
}

// PersonDisplay is the display record returned by identity resolution.
// It may describe a synthetic fallback when the reference did not match
// any canonical contact.
type PersonDisplay struct {
	Name      string `json:"name"`
	Initials  string `json:"initials"`
	Role      string `json:"role,omitempty"`
	AvatarKey string `json:"avatar_key,omitempty"`
}

// Clamp limits v to the [lo, hi] range.
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
