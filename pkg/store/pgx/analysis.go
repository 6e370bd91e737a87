package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamscope-ai/teamscope/backend/pkg/store"

	"github.com/jackc/pgx/v5"
)

func (s *TeamDBStorage) SaveAnalysis(ctx context.Context, record store.AnalysisRecord) error {
	tag, err := s.conn.Exec(ctx,
		`INSERT INTO team_analyses (team_id, correlation_id, payload, analysis)
		 SELECT t.id, $2, $3, $4
		 FROM teams t WHERE t.public_id = $1`,
		record.TeamID, record.CorrelationID, record.Payload, record.Analysis,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *TeamDBStorage) GetLatestAnalysis(ctx context.Context, teamID string) (store.AnalysisRecord, error) {
	record := store.AnalysisRecord{TeamID: teamID}
	err := s.conn.QueryRow(ctx,
		`SELECT a.correlation_id, a.payload, a.analysis
		 FROM team_analyses a
		 JOIN teams t ON t.id = a.team_id
		 WHERE t.public_id = $1
		 ORDER BY a.id DESC
		 LIMIT 1`,
		teamID,
	).Scan(&record.CorrelationID, &record.Payload, &record.Analysis)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.AnalysisRecord{}, store.ErrNotFound
	}
	if err != nil {
		return store.AnalysisRecord{}, fmt.Errorf("failed to get latest analysis: %w", err)
	}
	return record, nil
}
