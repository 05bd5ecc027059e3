package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-profiles/internal/domain/sessions"
)

type SessionsRepo struct {
	db *sql.DB
}

func NewSessionsRepo(db *sql.DB) *SessionsRepo {
	return &SessionsRepo{db: db}
}

func (r *SessionsRepo) Create(ctx context.Context, s sessions.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, role, username, created_at, expires_at, revoked_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, s.ID, s.UserID, s.Role, s.Username, s.CreatedAt, s.ExpiresAt, toNullTime(s.RevokedAt))
	return err
}

func (r *SessionsRepo) GetByID(ctx context.Context, id string) (sessions.Session, error) {
	var s sessions.Session
	var revoked sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, role, username, created_at, expires_at, revoked_at
		FROM sessions
		WHERE id = $1
	`, id).Scan(&s.ID, &s.UserID, &s.Role, &s.Username, &s.CreatedAt, &s.ExpiresAt, &revoked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sessions.Session{}, sessions.ErrNotFound
		}
		return sessions.Session{}, err
	}
	if revoked.Valid {
		t := revoked.Time
		s.RevokedAt = &t
	}
	return s, nil
}

// Revoke conserva el primer revoked_at.
func (r *SessionsRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE sessions SET revoked_at = COALESCE(revoked_at, $2) WHERE id = $1
	`, id, at)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return sessions.ErrNotFound
	}
	return nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
