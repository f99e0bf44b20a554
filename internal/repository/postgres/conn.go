package postgres

import (
	"context"
	"database/sql"
)

// DBProvider yields the shared database handle. Implementations may
// establish the connection on first use, so every repository operation
// resolves the handle through Get instead of holding one directly.
type DBProvider interface {
	Get(ctx context.Context) (*sql.DB, error)
}

// StaticDB is a DBProvider over an already-established handle.
type StaticDB struct {
	DB *sql.DB
}

func (s StaticDB) Get(ctx context.Context) (*sql.DB, error) {
	return s.DB, nil
}
