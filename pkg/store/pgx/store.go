// Package pgx implements store.TeamStorage on PostgreSQL using pgx.
package pgx

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// TeamDBStorage is the PostgreSQL-backed implementation of
// store.TeamStorage.
type TeamDBStorage struct {
	conn *pgxpool.Pool
}

// NewTeamDBStorage creates a storage client on top of an existing
// connection pool. The pool is owned by the caller.
func NewTeamDBStorage(conn *pgxpool.Pool) *TeamDBStorage {
	return &TeamDBStorage{conn: conn}
}
