// Package analysis runs the AI side of a team analysis: per-contact
// behavioral profiles and the team-level relationship analysis. The
// graph builder consumes its output; this package never touches
// storage.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	_ "github.com/invopop/jsonschema"

	"github.com/teamscope-ai/teamscope/backend/internal/util"
	"github.com/teamscope-ai/teamscope/backend/pkg/ai"
	"github.com/teamscope-ai/teamscope/backend/pkg/common"

	"golang.org/x/sync/errgroup"
)

const (
	parallelMax = 4
	maxRetries  = 3
)

type profileResponse struct {
	InfluenceScore     float64  `json:"influence_score" jsonschema_description:"Influence within the team from 0 to 100"`
	CommunicationStyle string   `json:"communication_style" jsonschema_description:"Short label for how the person communicates"`
	ConfidenceLevel    string   `json:"confidence_level" jsonschema_description:"Confidence in this profile: low, medium, high or very_high"`
	Summary            string   `json:"summary" jsonschema_description:"Two to three sentence behavioral summary"`
	Motivations        []string `json:"motivations" jsonschema_description:"What drives this person at work"`
	PressureBehaviors  []string `json:"pressure_behaviors" jsonschema_description:"How this person behaves under pressure"`
}

type influenceResponse struct {
	FromPerson string  `json:"from_person" jsonschema_description:"Roster label or full name of the influencing person"`
	ToPerson   string  `json:"to_person" jsonschema_description:"Roster label or full name of the influenced person"`
	Strength   float64 `json:"strength" jsonschema_description:"Influence strength from 0.0 to 1.0"`
}

type allianceResponse struct {
	Members  []string `json:"members" jsonschema_description:"Roster labels or full names of the aligned people"`
	Strength float64  `json:"strength" jsonschema_description:"Alliance strength from 0.0 to 1.0"`
}

type tensionResponse struct {
	Between []string `json:"between" jsonschema_description:"Roster labels or full names of the people in tension"`
	Level   string   `json:"level" jsonschema_description:"Tension level: low, medium or high"`
}

type powerCenterResponse struct {
	Person         string  `json:"person" jsonschema_description:"Roster label or full name of the power center"`
	PowerType      string  `json:"power_type" jsonschema_description:"One of: technical, formal, social, informal, other"`
	InfluenceReach float64 `json:"influence_reach" jsonschema_description:"How far this person's influence reaches across the organization, 0 to 100"`
}

type teamAnalysisResponse struct {
	CohesionScore float64               `json:"cohesion_score" jsonschema_description:"Team cohesion from 0 (fragmented) to 100 (fully aligned)"`
	TensionLevel  string                `json:"tension_level" jsonschema_description:"Overall tension level: low, medium or high"`
	InfluenceMap  []influenceResponse   `json:"influence_map" jsonschema_description:"Directed influence relationships within the team"`
	Alliances     []allianceResponse    `json:"alliances" jsonschema_description:"Groups of people acting in alignment"`
	Tensions      []tensionResponse     `json:"tensions" jsonschema_description:"Pairs or groups with friction"`
	PowerCenters  []powerCenterResponse `json:"power_centers" jsonschema_description:"People with outsized organizational influence"`
}

func profileFromContact(
	ctx context.Context,
	client ai.TeamAIClient,
	contact common.Contact,
) (common.BehavioralProfile, error) {
	systemPrompt := fmt.Sprintf(ai.ProfilePrompt, contact.Name, contact.Role, contact.Organization)

	var res profileResponse
	err := client.GenerateCompletionWithFormat(
		ctx,
		"behavioral_profile",
		"Build a behavioral profile for one team member.",
		contactNotes(contact),
		&res,
		ai.WithSystemPrompts(systemPrompt),
	)
	if err != nil {
		return common.BehavioralProfile{}, err
	}

	return common.BehavioralProfile{
		ContactID:          contact.ID,
		InfluenceScore:     common.Clamp(res.InfluenceScore, 0, 100),
		CommunicationStyle: res.CommunicationStyle,
		ConfidenceLevel:    res.ConfidenceLevel,
		Summary:            res.Summary,
		Motivations:        res.Motivations,
		PressureBehaviors:  res.PressureBehaviors,
	}, nil
}

// contactNotes flattens what the system knows about a contact into the
// prompt body.
func contactNotes(contact common.Contact) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", contact.Name)
	if contact.Role != "" {
		fmt.Fprintf(&b, "Role: %s\n", contact.Role)
	}
	if contact.Organization != "" {
		fmt.Fprintf(&b, "Organization: %s\n", contact.Organization)
	}
	if len(contact.Aliases) > 0 {
		fmt.Fprintf(&b, "Also known as: %s\n", strings.Join(contact.Aliases, ", "))
	}
	return b.String()
}

// GenerateProfiles builds a behavioral profile per contact, running
// requests in parallel. Contacts whose generation fails after retries
// fail the whole run; partial profile sets would skew the team
// analysis that consumes them.
func GenerateProfiles(
	ctx context.Context,
	client ai.TeamAIClient,
	contacts []common.Contact,
) ([]common.BehavioralProfile, error) {
	profiles := make([]common.BehavioralProfile, 0, len(contacts))
	mergeMu := sync.Mutex{}

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(parallelMax)
	for _, contact := range contacts {
		c := contact
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
				p, err := util.RetryWithContext(gCtx, maxRetries, func(ctx context.Context) (common.BehavioralProfile, error) {
					return profileFromContact(ctx, client, c)
				})
				if err != nil {
					return fmt.Errorf("failed to profile contact %s: %w", c.ID, err)
				}

				mergeMu.Lock()
				profiles = append(profiles, p)
				mergeMu.Unlock()
				return nil
			}
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return profiles, nil
}

// GenerateTeamAnalysis runs the team-level relationship analysis over
// the full roster. It returns the normalized analysis plus the raw
// JSON payload for auditing.
func GenerateTeamAnalysis(
	ctx context.Context,
	client ai.TeamAIClient,
	contacts []common.Contact,
	profiles []common.BehavioralProfile,
) (common.TeamAnalysis, string, error) {
	systemPrompt := fmt.Sprintf(ai.TeamAnalysisPrompt, rosterBlock(contacts, profiles))

	res, err := util.RetryWithContext(ctx, maxRetries, func(ctx context.Context) (teamAnalysisResponse, error) {
		var res teamAnalysisResponse
		err := client.GenerateCompletionWithFormat(
			ctx,
			"team_analysis",
			"Map influence flows, alliances, tensions and power centers in a team.",
			"Analyze the team roster given in the system prompt.",
			&res,
			ai.WithSystemPrompts(systemPrompt),
		)
		return res, err
	})
	if err != nil {
		return common.TeamAnalysis{}, "", err
	}

	analysis := common.TeamAnalysis{
		CohesionScore: res.CohesionScore,
		TensionLevel:  res.TensionLevel,
		TeamSize:      len(contacts),
	}
	for _, link := range res.InfluenceMap {
		analysis.InfluenceMap = append(analysis.InfluenceMap, common.InfluenceLink{
			FromPerson: link.FromPerson,
			ToPerson:   link.ToPerson,
			Strength:   link.Strength,
		})
	}
	for _, a := range res.Alliances {
		analysis.Alliances = append(analysis.Alliances, common.Alliance{
			Members:  common.StringList(a.Members),
			Strength: a.Strength,
		})
	}
	for _, t := range res.Tensions {
		analysis.Tensions = append(analysis.Tensions, common.Tension{
			Between: common.StringList(t.Between),
			Level:   t.Level,
		})
	}
	for _, pc := range res.PowerCenters {
		analysis.PowerCenters = append(analysis.PowerCenters, common.PowerCenter{
			Person:         pc.Person,
			PowerType:      pc.PowerType,
			InfluenceReach: common.Clamp(pc.InfluenceReach, 0, 100),
		})
	}

	payload, err := json.Marshal(analysis)
	if err != nil {
		return common.TeamAnalysis{}, "", fmt.Errorf("failed to marshal analysis payload: %w", err)
	}

	return analysis, string(payload), nil
}

// rosterBlock renders the team roster the way the analysis prompt
// expects it: one Person_{i} line per contact, 1-based, matching the
// labels identity resolution accepts back.
func rosterBlock(contacts []common.Contact, profiles []common.BehavioralProfile) string {
	byContact := make(map[string]common.BehavioralProfile, len(profiles))
	for _, p := range profiles {
		byContact[p.ContactID] = p
	}

	var b strings.Builder
	for i, c := range contacts {
		fmt.Fprintf(&b, "Person_%d: %s", i+1, c.Name)
		if c.Role != "" {
			fmt.Fprintf(&b, " (%s)", c.Role)
		}
		b.WriteString("\n")
		if p, ok := byContact[c.ID]; ok && p.Summary != "" {
			fmt.Fprintf(&b, "  Profile: %s\n", p.Summary)
		}
	}
	return b.String()
}
