package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// RevokeSession records id until expires and drops entries that have already
// expired, since those tokens are rejected on their own.
func (s *implStore) RevokeSession(ctx context.Context, id string, expires time.Time) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO revoked_sessions(id, expires_at) VALUES(?, ?)`,
		id, expires.UnixNano(),
	); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM revoked_sessions WHERE expires_at < ?`, time.Now().UnixNano(),
	); err != nil {
		s.logger.Warn(ctx, "Failed to purge expired revocations: %v", err)
	}
	return nil
}

func (s *implStore) IsSessionRevoked(ctx context.Context, id string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM revoked_sessions WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check revoked session: %w", err)
	}
	return true, nil
}
