package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamscope-ai/teamscope/backend/internal/util"
	"github.com/teamscope-ai/teamscope/backend/pkg/store"

	"github.com/jackc/pgx/v5"
)

func (s *TeamDBStorage) CreateTeam(ctx context.Context, name string) (store.Team, error) {
	id, err := util.NewPublicID()
	if err != nil {
		return store.Team{}, fmt.Errorf("failed to generate team id: %w", err)
	}

	_, err = s.conn.Exec(ctx,
		`INSERT INTO teams (public_id, name) VALUES ($1, $2)`,
		id, name,
	)
	if err != nil {
		return store.Team{}, fmt.Errorf("failed to create team: %w", err)
	}

	return store.Team{ID: id, Name: name}, nil
}

func (s *TeamDBStorage) GetTeam(ctx context.Context, teamID string) (store.Team, error) {
	var team store.Team
	err := s.conn.QueryRow(ctx,
		`SELECT public_id, name FROM teams WHERE public_id = $1`,
		teamID,
	).Scan(&team.ID, &team.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Team{}, store.ErrNotFound
	}
	if err != nil {
		return store.Team{}, fmt.Errorf("failed to get team: %w", err)
	}
	return team, nil
}

func (s *TeamDBStorage) ListTeams(ctx context.Context) ([]store.Team, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT public_id, name FROM teams ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]store.Team, 0)
	for rows.Next() {
		var team store.Team
		if err := rows.Scan(&team.ID, &team.Name); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *TeamDBStorage) DeleteTeam(ctx context.Context, teamID string) error {
	tag, err := s.conn.Exec(ctx,
		`DELETE FROM teams WHERE public_id = $1`,
		teamID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
