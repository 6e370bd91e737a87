package graph

import (
	"reflect"
	"testing"

	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

func teamContacts() []common.Contact {
	return []common.Contact{
		{ID: "c1", Name: "Alice Johnson", Role: "CTO"},
		{ID: "c2", Name: "Bob Miller", Role: "Lead", Relationships: []common.ContactRelationship{
			{Type: common.RelationReportsTo, ContactID: "c1"},
		}},
		{ID: "c3", Name: "Carla Diaz", Role: "Engineer", Relationships: []common.ContactRelationship{
			{Type: common.RelationReportsTo, ContactID: "c2"},
		}},
	}
}

func edgesOfKind(g common.TeamGraph, kind string) []common.RelationshipEdge {
	var out []common.RelationshipEdge
	for _, e := range g.Edges {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func TestBuildEmptyAnalysis(t *testing.T) {
	g := Build(teamContacts(), nil, common.TeamAnalysis{})

	if got := len(edgesOfKind(g, common.RelationReportsTo)); got != 2 {
		t.Errorf("reports_to edges = %d, want 2", got)
	}
	for _, kind := range []string{common.RelationInfluences, common.RelationAlignedWith, common.RelationTensionWith} {
		if got := edgesOfKind(g, kind); len(got) != 0 {
			t.Errorf("%s edges = %d, want 0", kind, len(got))
		}
	}
	if len(g.PowerCenters) != 0 {
		t.Errorf("power centers = %d, want 0", len(g.PowerCenters))
	}
	if g.TensionLevel != common.LevelLow {
		t.Errorf("tension level = %q, want %q", g.TensionLevel, common.LevelLow)
	}
}

func TestBuildResolvesAnalysisReferences(t *testing.T) {
	analysis := common.TeamAnalysis{
		CohesionScore: 72,
		TensionLevel:  common.LevelMedium,
		InfluenceMap: []common.InfluenceLink{
			{FromPerson: "Person_1", ToPerson: "person 2", Strength: 0.9},
			{FromPerson: "Person_1", ToPerson: "Person_9", Strength: 0.5}, // unresolvable, dropped
		},
		Alliances: []common.Alliance{
			{Members: common.StringList{"Person_1", "Person_2", "carla"}, Strength: 0.6},
		},
		Tensions: []common.Tension{
			{Between: common.StringList{"bob", "carla"}, Level: common.LevelHigh},
			{Between: common.StringList{"bob", "Person_77"}, Level: common.LevelHigh}, // dropped
		},
	}

	g := Build(teamContacts(), nil, analysis)

	influences := edgesOfKind(g, common.RelationInfluences)
	want := []common.RelationshipEdge{
		{From: "c1", To: "c2", Kind: common.RelationInfluences, Strength: 0.9},
	}
	if !reflect.DeepEqual(influences, want) {
		t.Errorf("influence edges = %+v, want %+v", influences, want)
	}

	// three resolved members expand to three pairwise alliance edges
	aligned := edgesOfKind(g, common.RelationAlignedWith)
	if len(aligned) != 3 {
		t.Errorf("aligned_with edges = %d, want 3", len(aligned))
	}
	for _, e := range aligned {
		if e.Strength != 0.6 {
			t.Errorf("aligned_with strength = %v, want 0.6", e.Strength)
		}
	}

	tensions := edgesOfKind(g, common.RelationTensionWith)
	if len(tensions) != 1 {
		t.Fatalf("tension_with edges = %d, want 1", len(tensions))
	}
	if tensions[0].From != "c2" || tensions[0].To != "c3" || tensions[0].Level != common.LevelHigh {
		t.Errorf("tension edge = %+v", tensions[0])
	}

	if g.CohesionScore != 72 {
		t.Errorf("cohesion = %v, want 72", g.CohesionScore)
	}
	if g.TensionLevel != common.LevelMedium {
		t.Errorf("tension level = %q, want medium", g.TensionLevel)
	}
}

func TestBuildTensionPairSemantics(t *testing.T) {
	analysis := common.TeamAnalysis{
		Tensions: []common.Tension{
			{Between: common.StringList{"Person_1", "Person_2", "Person_3"}, Level: common.LevelMedium},
		},
	}

	g := Build(teamContacts(), nil, analysis)

	tensions := edgesOfKind(g, common.RelationTensionWith)
	if len(tensions) != 1 {
		t.Fatalf("tension_with edges = %d, want 1", len(tensions))
	}
	// first two resolved members form the pair, the rest are ignored
	if tensions[0].From != "c1" || tensions[0].To != "c2" {
		t.Errorf("tension edge = %+v, want c1 -> c2", tensions[0])
	}
}

func TestBuildClampsScores(t *testing.T) {
	analysis := common.TeamAnalysis{
		CohesionScore: 140,
		InfluenceMap: []common.InfluenceLink{
			{FromPerson: "Person_1", ToPerson: "Person_2", Strength: 3.5},
		},
		PowerCenters: []common.PowerCenter{
			{Person: "Person_1", PowerType: "formal", InfluenceReach: 250},
		},
	}

	g := Build(teamContacts(), nil, analysis)

	if g.CohesionScore != 100 {
		t.Errorf("cohesion = %v, want clamped 100", g.CohesionScore)
	}
	if e := edgesOfKind(g, common.RelationInfluences); len(e) != 1 || e[0].Strength != 1 {
		t.Errorf("influence strength not clamped: %+v", e)
	}
	if len(g.PowerCenters) != 1 || g.PowerCenters[0].InfluenceReach != 100 {
		t.Errorf("influence reach not clamped: %+v", g.PowerCenters)
	}
}

func TestBuildNodes(t *testing.T) {
	profiles := []common.BehavioralProfile{
		{ContactID: "c3", InfluenceScore: 40},
		{ContactID: "ghost", InfluenceScore: 90}, // unknown contact, ignored
	}

	contacts := []common.Contact{
		{ID: "c1", Name: "Alice Johnson"},
		{ID: "c2", Name: "Bob Miller", Relationships: []common.ContactRelationship{
			{Type: common.RelationReportsTo, ContactID: "c1"},
		}},
		{ID: "c3", Name: "Carla Diaz"},
		{ID: "c4", Name: "Dan Wu"}, // no edge, no profile: excluded
	}

	g := Build(contacts, profiles, common.TeamAnalysis{})

	gotIDs := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		gotIDs[i] = n.ID
	}
	wantIDs := []string{"c1", "c2", "c3"}
	if !reflect.DeepEqual(gotIDs, wantIDs) {
		t.Errorf("node ids = %v, want %v", gotIDs, wantIDs)
	}

	for _, n := range g.Nodes {
		switch n.ID {
		case "c1":
			if n.Level != 0 {
				t.Errorf("level(c1) = %d, want 0", n.Level)
			}
		case "c2":
			if n.Level != 1 {
				t.Errorf("level(c2) = %d, want 1", n.Level)
			}
		case "c3":
			if n.InfluenceScore != 40 {
				t.Errorf("influence(c3) = %v, want 40", n.InfluenceScore)
			}
		}
	}
}

func TestPowerCenterRankingStable(t *testing.T) {
	analysis := common.TeamAnalysis{
		PowerCenters: []common.PowerCenter{
			{Person: "Person_1", PowerType: "technical", InfluenceReach: 60},
			{Person: "Person_2", PowerType: "social", InfluenceReach: 80},
			{Person: "Person_3", PowerType: "formal", InfluenceReach: 60},
		},
	}

	g := Build(teamContacts(), nil, analysis)

	if len(g.PowerCenters) != 3 {
		t.Fatalf("power centers = %d, want 3", len(g.PowerCenters))
	}
	if g.PowerCenters[0].ContactID != "c2" {
		t.Errorf("rank 1 = %+v, want contact c2", g.PowerCenters[0])
	}
	// equal reach keeps input order: technical (c1) before formal (c3)
	if g.PowerCenters[1].ContactID != "c1" || g.PowerCenters[2].ContactID != "c3" {
		t.Errorf("ties not stable: %+v", g.PowerCenters[1:])
	}
	if g.PowerCenters[1].PowerType != "technical" {
		t.Errorf("power type not passed through: %+v", g.PowerCenters[1])
	}
}

func TestPowerCenterUnresolvedKeepsDisplayName(t *testing.T) {
	analysis := common.TeamAnalysis{
		PowerCenters: []common.PowerCenter{
			{Person: "Mystery_Person", PowerType: "other", InfluenceReach: 10},
		},
	}

	g := Build(teamContacts(), nil, analysis)

	if len(g.PowerCenters) != 1 {
		t.Fatalf("power centers = %d, want 1", len(g.PowerCenters))
	}
	pc := g.PowerCenters[0]
	if pc.ContactID != "" {
		t.Errorf("unresolved power center got contact id %q", pc.ContactID)
	}
	if pc.Name != "Mystery Person" {
		t.Errorf("fallback name = %q, want %q", pc.Name, "Mystery Person")
	}
}

func TestBuildIdempotent(t *testing.T) {
	analysis := common.TeamAnalysis{
		CohesionScore: 55,
		InfluenceMap: []common.InfluenceLink{
			{FromPerson: "Person_1", ToPerson: "Person_3", Strength: 0.4},
		},
		Alliances: []common.Alliance{
			{Members: common.StringList{"Person_1", "Person_2"}, Strength: 0.7},
		},
	}

	first := Build(teamContacts(), nil, analysis)
	second := Build(teamContacts(), nil, analysis)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Build not idempotent")
	}
}

func TestParseAnalysis(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, a common.TeamAnalysis)
	}{
		{
			name: "flat payload with string members",
			payload: `{
				"cohesion_score": 64,
				"tension_level": "medium",
				"influence_map": [{"from_person": "Person_1", "to_person": "Person_2", "strength": 0.8}],
				"alliances": [{"members": "Person_1, Person_2", "strength": 0.5}],
				"tensions": [{"between": ["Person_2", "Person_3"], "level": "high"}],
				"power_centers": [{"person": "Person_1", "power_type": "formal", "influence_reach": 90}]
			}`,
			check: func(t *testing.T, a common.TeamAnalysis) {
				if a.CohesionScore != 64 || a.TensionLevel != "medium" {
					t.Errorf("metrics = %v/%q", a.CohesionScore, a.TensionLevel)
				}
				wantMembers := common.StringList{"Person_1", "Person_2"}
				if len(a.Alliances) != 1 || !reflect.DeepEqual(a.Alliances[0].Members, wantMembers) {
					t.Errorf("alliances = %+v", a.Alliances)
				}
				if len(a.PowerCenters) != 1 || a.PowerCenters[0].PowerType != "formal" {
					t.Errorf("power centers = %+v", a.PowerCenters)
				}
			},
		},
		{
			name: "power centers nested under analysis_data",
			payload: `{
				"cohesion_score": 40,
				"analysis_data": {"power_centers": [{"person": "Person_2", "power_type": "social", "influence_reach": 70}]}
			}`,
			check: func(t *testing.T, a common.TeamAnalysis) {
				if len(a.PowerCenters) != 1 || a.PowerCenters[0].Person != "Person_2" {
					t.Errorf("power centers = %+v", a.PowerCenters)
				}
			},
		},
		{
			name:    "malformed but repairable",
			payload: `{cohesion_score: 50, tension_level: "low",}`,
			check: func(t *testing.T, a common.TeamAnalysis) {
				if a.CohesionScore != 50 {
					t.Errorf("cohesion = %v, want 50", a.CohesionScore)
				}
			},
		},
		{
			name:    "empty object",
			payload: `{}`,
			check: func(t *testing.T, a common.TeamAnalysis) {
				if len(a.InfluenceMap) != 0 || len(a.Alliances) != 0 || len(a.Tensions) != 0 || len(a.PowerCenters) != 0 {
					t.Errorf("expected empty analysis, got %+v", a)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAnalysis(tt.payload)
			if err != nil {
				t.Fatalf("ParseAnalysis() error = %v", err)
			}
			tt.check(t, got)
		})
	}
}

func TestStyleForKind(t *testing.T) {
	kinds := []string{
		common.RelationReportsTo,
		common.RelationInfluences,
		common.RelationAlignedWith,
		common.RelationTensionWith,
	}

	seen := make(map[string]struct{})
	for _, kind := range kinds {
		style := StyleForKind(kind)
		if style.Color == "" || style.Width == 0 {
			t.Errorf("StyleForKind(%s) = %+v, want color and width", kind, style)
		}
		seen[style.Color] = struct{}{}
	}
	if len(seen) != len(kinds) {
		t.Errorf("edge kinds share colors: %v", seen)
	}

	fallback := StyleForKind("unknown")
	if fallback.Color == "" {
		t.Error("unknown kind must still style")
	}
}
