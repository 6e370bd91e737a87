package pgx

import (
	"context"
	"errors"
	"fmt"

	"github.com/teamscope-ai/teamscope/backend/internal/util"
	"github.com/teamscope-ai/teamscope/backend/pkg/common"
	"github.com/teamscope-ai/teamscope/backend/pkg/store"

	"github.com/jackc/pgx/v5"
)

const contactColumns = `public_id, name, role, organization, timezone, avatar_key, aliases, relationships`

func scanContact(row pgx.Row) (common.Contact, error) {
	var c common.Contact
	err := row.Scan(
		&c.ID, &c.Name, &c.Role, &c.Organization, &c.Timezone,
		&c.AvatarKey, &c.Aliases, &c.Relationships,
	)
	return c, err
}

func (s *TeamDBStorage) CreateContact(ctx context.Context, teamID string, contact common.Contact) (common.Contact, error) {
	id, err := util.NewPublicID()
	if err != nil {
		return common.Contact{}, fmt.Errorf("failed to generate contact id: %w", err)
	}
	contact.ID = id

	tag, err := s.conn.Exec(ctx,
		`INSERT INTO contacts (public_id, team_id, name, role, organization, timezone, avatar_key, aliases, relationships)
		 SELECT $1, t.id, $3, $4, $5, $6, $7, $8, $9
		 FROM teams t WHERE t.public_id = $2`,
		contact.ID, teamID, contact.Name, contact.Role, contact.Organization,
		contact.Timezone, contact.AvatarKey, contact.Aliases, contact.Relationships,
	)
	if err != nil {
		return common.Contact{}, fmt.Errorf("failed to create contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.Contact{}, store.ErrNotFound
	}

	return contact, nil
}

func (s *TeamDBStorage) GetContact(ctx context.Context, contactID string) (common.Contact, error) {
	row := s.conn.QueryRow(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE public_id = $1`,
		contactID,
	)
	contact, err := scanContact(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return common.Contact{}, store.ErrNotFound
	}
	if err != nil {
		return common.Contact{}, fmt.Errorf("failed to get contact: %w", err)
	}
	return contact, nil
}

// ListContacts returns a team's contacts in insertion order. The order
// is part of the contract: identity resolution keys contacts by their
// position in this list, so it must be stable across calls.
func (s *TeamDBStorage) ListContacts(ctx context.Context, teamID string) ([]common.Contact, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT `+contactColumns+`
		 FROM contacts c
		 JOIN teams t ON t.id = c.team_id
		 WHERE t.public_id = $1
		 ORDER BY c.id`,
		teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := make([]common.Contact, 0)
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func (s *TeamDBStorage) UpdateContact(ctx context.Context, contact common.Contact) (common.Contact, error) {
	tag, err := s.conn.Exec(ctx,
		`UPDATE contacts
		 SET name = $2, role = $3, organization = $4, timezone = $5,
		     avatar_key = $6, aliases = $7, relationships = $8, updated_at = now()
		 WHERE public_id = $1`,
		contact.ID, contact.Name, contact.Role, contact.Organization,
		contact.Timezone, contact.AvatarKey, contact.Aliases, contact.Relationships,
	)
	if err != nil {
		return common.Contact{}, fmt.Errorf("failed to update contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return common.Contact{}, store.ErrNotFound
	}
	return contact, nil
}

func (s *TeamDBStorage) DeleteContact(ctx context.Context, contactID string) error {
	tag, err := s.conn.Exec(ctx,
		`DELETE FROM contacts WHERE public_id = $1`,
		contactID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
