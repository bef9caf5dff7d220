package persistence

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

// GenderAdapter implements out.GenderRepository using PostgreSQL.
type GenderAdapter struct {
	db *sqlx.DB
}

// NewGenderAdapter creates a new GenderAdapter.
func NewGenderAdapter(db *sqlx.DB) *GenderAdapter {
	return &GenderAdapter{db: db}
}

// FindIDByName returns the id for an exact, case-sensitive name match.
func (a *GenderAdapter) FindIDByName(ctx context.Context, name string) (int64, bool, error) {
	const query = `SELECT id FROM gender WHERE name = $1 LIMIT 1`

	var id int64
	if err := a.db.GetContext(ctx, &id, query, name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, err
	}
	return id, true, nil
}
