package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/teamscope-ai/teamscope/backend/pkg/ai"
	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

// mockAIClient returns canned structured responses keyed by the format
// name, failing a configurable number of times first.
type mockAIClient struct {
	responses map[string]any
	failures  int
	calls     int
}

func (m *mockAIClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	return "", errors.New("not implemented")
}

func (m *mockAIClient) GenerateCompletionWithFormat(ctx context.Context, name string, description string, prompt string, out any, opts ...ai.GenerateOption) error {
	m.calls++
	if m.failures > 0 {
		m.failures--
		return errors.New("model unavailable")
	}
	resp, ok := m.responses[name]
	if !ok {
		return errors.New("unexpected format name: " + name)
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (m *mockAIClient) GetMetrics() ai.ModelMetrics { return ai.ModelMetrics{} }
func (m *mockAIClient) ResetMetrics()               {}

func testContacts() []common.Contact {
	return []common.Contact{
		{ID: "c1", Name: "Sarah Chen", Role: "Engineering Manager"},
		{ID: "c2", Name: "Marcus Webb", Role: "Staff Engineer"},
		{ID: "c3", Name: "Priya Nair", Role: "Product Manager"},
	}
}

func TestGenerateProfilesCoversAllContacts(t *testing.T) {
	client := &mockAIClient{responses: map[string]any{
		"behavioral_profile": profileResponse{
			InfluenceScore:     72,
			CommunicationStyle: "direct",
			ConfidenceLevel:    "medium",
			Summary:            "Collaborates broadly.",
		},
	}}

	profiles, err := GenerateProfiles(context.Background(), client, testContacts())
	if err != nil {
		t.Fatalf("GenerateProfiles returned error: %v", err)
	}
	if len(profiles) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(profiles))
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ContactID)
		if p.InfluenceScore != 72 {
			t.Errorf("profile %s: influence = %v, want 72", p.ContactID, p.InfluenceScore)
		}
	}
	sort.Strings(ids)
	want := []string{"c1", "c2", "c3"}
	for i, id := range want {
		if ids[i] != id {
			t.Errorf("profile ids = %v, want %v", ids, want)
			break
		}
	}
}

func TestGenerateProfilesClampsInfluence(t *testing.T) {
	client := &mockAIClient{responses: map[string]any{
		"behavioral_profile": profileResponse{InfluenceScore: 250},
	}}

	profiles, err := GenerateProfiles(context.Background(), client, testContacts()[:1])
	if err != nil {
		t.Fatalf("GenerateProfiles returned error: %v", err)
	}
	if profiles[0].InfluenceScore != 100 {
		t.Errorf("influence = %v, want clamped to 100", profiles[0].InfluenceScore)
	}
}

func TestGenerateProfilesRetriesTransientFailures(t *testing.T) {
	client := &mockAIClient{
		failures: 2,
		responses: map[string]any{
			"behavioral_profile": profileResponse{InfluenceScore: 40},
		},
	}

	profiles, err := GenerateProfiles(context.Background(), client, testContacts()[:1])
	if err != nil {
		t.Fatalf("GenerateProfiles returned error after retries: %v", err)
	}
	if len(profiles) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(profiles))
	}
}

func TestGenerateProfilesFailsAfterExhaustedRetries(t *testing.T) {
	client := &mockAIClient{
		failures:  maxRetries,
		responses: map[string]any{},
	}

	_, err := GenerateProfiles(context.Background(), client, testContacts()[:1])
	if err == nil {
		t.Fatal("expected error after exhausted retries")
	}
}

func TestGenerateTeamAnalysis(t *testing.T) {
	client := &mockAIClient{responses: map[string]any{
		"team_analysis": teamAnalysisResponse{
			CohesionScore: 68,
			TensionLevel:  "medium",
			InfluenceMap: []influenceResponse{
				{FromPerson: "Person_1", ToPerson: "Person_2", Strength: 0.8},
			},
			Alliances: []allianceResponse{
				{Members: []string{"Person_1", "Person_3"}, Strength: 0.6},
			},
			Tensions: []tensionResponse{
				{Between: []string{"Person_2", "Person_3"}, Level: "high"},
			},
			PowerCenters: []powerCenterResponse{
				{Person: "Person_1", PowerType: "formal", InfluenceReach: 62},
			},
		},
	}}

	contacts := testContacts()
	result, payload, err := GenerateTeamAnalysis(context.Background(), client, contacts, nil)
	if err != nil {
		t.Fatalf("GenerateTeamAnalysis returned error: %v", err)
	}

	if result.CohesionScore != 68 {
		t.Errorf("cohesion = %v, want 68", result.CohesionScore)
	}
	if result.TeamSize != len(contacts) {
		t.Errorf("team size = %d, want %d", result.TeamSize, len(contacts))
	}
	if len(result.InfluenceMap) != 1 || result.InfluenceMap[0].FromPerson != "Person_1" {
		t.Errorf("influence map = %+v", result.InfluenceMap)
	}
	if len(result.Alliances) != 1 || len(result.Alliances[0].Members) != 2 {
		t.Errorf("alliances = %+v", result.Alliances)
	}
	if len(result.Tensions) != 1 || result.Tensions[0].Level != "high" {
		t.Errorf("tensions = %+v", result.Tensions)
	}
	if len(result.PowerCenters) != 1 || result.PowerCenters[0].PowerType != "formal" {
		t.Errorf("power centers = %+v", result.PowerCenters)
	}
	// Reach shares the 0-100 scale with influence scores and must reach
	// the graph builder unscaled.
	if result.PowerCenters[0].InfluenceReach != 62 {
		t.Errorf("influence reach = %v, want 62", result.PowerCenters[0].InfluenceReach)
	}

	var roundTrip common.TeamAnalysis
	if err := json.Unmarshal([]byte(payload), &roundTrip); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if roundTrip.CohesionScore != result.CohesionScore {
		t.Errorf("payload cohesion = %v, want %v", roundTrip.CohesionScore, result.CohesionScore)
	}
}

func TestGenerateTeamAnalysisClampsInfluenceReach(t *testing.T) {
	client := &mockAIClient{responses: map[string]any{
		"team_analysis": teamAnalysisResponse{
			CohesionScore: 50,
			TensionLevel:  "low",
			PowerCenters: []powerCenterResponse{
				{Person: "Person_1", PowerType: "social", InfluenceReach: 130},
				{Person: "Person_2", PowerType: "technical", InfluenceReach: -4},
			},
		},
	}}

	result, _, err := GenerateTeamAnalysis(context.Background(), client, testContacts(), nil)
	if err != nil {
		t.Fatalf("GenerateTeamAnalysis returned error: %v", err)
	}
	if got := result.PowerCenters[0].InfluenceReach; got != 100 {
		t.Errorf("influence reach = %v, want clamped to 100", got)
	}
	if got := result.PowerCenters[1].InfluenceReach; got != 0 {
		t.Errorf("influence reach = %v, want clamped to 0", got)
	}
}

func TestRosterBlock(t *testing.T) {
	contacts := testContacts()
	profiles := []common.BehavioralProfile{
		{ContactID: "c2", Summary: "Quiet but high leverage."},
	}

	block := rosterBlock(contacts, profiles)

	for _, want := range []string{"Person_1: Sarah Chen", "Person_2: Marcus Webb", "Person_3: Priya Nair"} {
		if !strings.Contains(block, want) {
			t.Errorf("roster block missing %q:\n%s", want, block)
		}
	}
	if !strings.Contains(block, "Profile: Quiet") {
		t.Errorf("roster block missing profile summary:\n%s", block)
	}
}
