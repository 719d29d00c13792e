package store

import (
	"context"
	"time"
)

func (s *Store) CreateSession(ctx context.Context, token, accountID string, ttl time.Duration) error {
	_, err := s.Pool.Exec(ctx, `
		INSERT INTO sessions (token_hash, account_id, expires_at)
		VALUES ($1, $2, $3)`,
		HashSessionToken(token), accountID, time.Now().Add(ttl))
	return err
}

// GetSessionByToken resolves a raw cookie token to the session identity.
// Expired sessions are indistinguishable from missing ones.
func (s *Store) GetSessionByToken(ctx context.Context, token string) (*Session, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT s.account_id, a.username, a.is_owner, s.expires_at, s.created_at
		FROM sessions s
		JOIN accounts a ON a.id = s.account_id
		WHERE s.token_hash = $1 AND s.expires_at > now()`,
		HashSessionToken(token))
	var sess Session
	if err := row.Scan(&sess.AccountID, &sess.Username, &sess.IsOwner, &sess.ExpiresAt, &sess.CreatedAt); err != nil {
		return nil, mapNotFound(err)
	}
	return &sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) error {
	_, err := s.Pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, HashSessionToken(token))
	return err
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
