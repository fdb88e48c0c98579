package migration

import (
	"context"

	"backend-vietrip/internal/db"
)

// Flags persists which users have finished the legacy pass.
type Flags struct {
	db db.Querier
}

func NewFlags(q db.Querier) *Flags {
	return &Flags{db: q}
}

func (f *Flags) Done(ctx context.Context, userID string) (bool, error) {
	var done bool
	err := f.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM legacy_migrations WHERE user_id=$1)`, userID).Scan(&done)
	return done, err
}

func (f *Flags) MarkDone(ctx context.Context, userID string) error {
	_, err := f.db.Exec(ctx, `
		INSERT INTO legacy_migrations (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	return err
}
