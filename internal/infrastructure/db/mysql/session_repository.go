package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// SessionRepository stores login sessions in the auth table, keyed by the
// opaque signature segment of the issued token. A row's presence is the only
// definition of "logged in".
type SessionRepository struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewSessionRepository(db *sql.DB, log zerolog.Logger) *SessionRepository {
	return &SessionRepository{db: db, log: log}
}

func (r *SessionRepository) Create(ctx context.Context, signature string, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth (token, userId) VALUES (?, ?)`, signature, userID,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	r.log.Debug().Int64("userId", userID).Msg("session created")
	return nil
}

func (r *SessionRepository) Exists(ctx context.Context, signature string) (bool, error) {
	var userID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT userId FROM auth WHERE token=?`, signature,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("select session: %w", err)
	}
	return true, nil
}

// Delete removes the session row. Deleting an absent signature is a no-op.
func (r *SessionRepository) Delete(ctx context.Context, signature string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM auth WHERE token=?`, signature); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
