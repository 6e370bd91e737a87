package pgx

import (
	"context"
	"fmt"

	"github.com/teamscope-ai/teamscope/backend/pkg/common"
)

// SaveProfiles upserts the profiles produced by an analysis run. A
// contact keeps at most one profile; reruns overwrite it.
func (s *TeamDBStorage) SaveProfiles(ctx context.Context, teamID string, profiles []common.BehavioralProfile) error {
	tx, err := s.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, p := range profiles {
		_, err := tx.Exec(ctx,
			`INSERT INTO behavioral_profiles (contact_id, influence_score, communication_style, confidence_level, summary, motivations, pressure_behaviors)
			 SELECT c.id, $2, $3, $4, $5, $6, $7
			 FROM contacts c
			 JOIN teams t ON t.id = c.team_id
			 WHERE c.public_id = $1 AND t.public_id = $8
			 ON CONFLICT (contact_id) DO UPDATE SET
			     influence_score = EXCLUDED.influence_score,
			     communication_style = EXCLUDED.communication_style,
			     confidence_level = EXCLUDED.confidence_level,
			     summary = EXCLUDED.summary,
			     motivations = EXCLUDED.motivations,
			     pressure_behaviors = EXCLUDED.pressure_behaviors,
			     updated_at = now()`,
			p.ContactID, p.InfluenceScore, p.CommunicationStyle, p.ConfidenceLevel,
			p.Summary, p.Motivations, p.PressureBehaviors, teamID,
		)
		if err != nil {
			return fmt.Errorf("failed to save profile for contact %s: %w", p.ContactID, err)
		}
	}

	return tx.Commit(ctx)
}

func (s *TeamDBStorage) ListProfiles(ctx context.Context, teamID string) ([]common.BehavioralProfile, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT c.public_id, p.influence_score, p.communication_style, p.confidence_level, p.summary, p.motivations, p.pressure_behaviors
		 FROM behavioral_profiles p
		 JOIN contacts c ON c.id = p.contact_id
		 JOIN teams t ON t.id = c.team_id
		 WHERE t.public_id = $1
		 ORDER BY c.id`,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]common.BehavioralProfile, 0)
	for rows.Next() {
		var p common.BehavioralProfile
		err := rows.Scan(
			&p.ContactID, &p.InfluenceScore, &p.CommunicationStyle,
			&p.ConfidenceLevel, &p.Summary, &p.Motivations, &p.PressureBehaviors,
		)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
