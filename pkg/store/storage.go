package store

import (
	"context"
	"errors"

	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Team is a named group of contacts that analyses run against.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AnalysisRecord is a persisted team analysis run: the normalized
// result plus the raw model payload kept for auditing.
type AnalysisRecord struct {
	TeamID        string              `json:"team_id"`
	CorrelationID string              `json:"correlation_id"`
	Payload       string              `json:"payload"`
	Analysis      common.TeamAnalysis `json:"analysis"`
}

// TeamStorage is the persistence interface for teams, contacts,
// behavioral profiles and analysis results. The graph engine itself
// never touches storage; route handlers and the worker load records
// through this interface and hand them to the engine.
type TeamStorage interface {
	CreateTeam(ctx context.Context, name string) (Team, error)
	GetTeam(ctx context.Context, teamID string) (Team, error)
	ListTeams(ctx context.Context) ([]Team, error)
	DeleteTeam(ctx context.Context, teamID string) error

	CreateContact(ctx context.Context, teamID string, contact common.Contact) (common.Contact, error)
	GetContact(ctx context.Context, contactID string) (common.Contact, error)
	ListContacts(ctx context.Context, teamID string) ([]common.Contact, error)
	UpdateContact(ctx context.Context, contact common.Contact) (common.Contact, error)
	DeleteContact(ctx context.Context, contactID string) error

	SaveProfiles(ctx context.Context, teamID string, profiles []common.BehavioralProfile) error
	ListProfiles(ctx context.Context, teamID string) ([]common.BehavioralProfile, error)

	SaveAnalysis(ctx context.Context, record AnalysisRecord) error
	GetLatestAnalysis(ctx context.Context, teamID string) (AnalysisRecord, error)
}
