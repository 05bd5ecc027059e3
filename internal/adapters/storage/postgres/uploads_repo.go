package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pet-profiles/internal/domain/uploads"
)

type UploadsRepo struct {
	db *sql.DB
}

func NewUploadsRepo(db *sql.DB) *UploadsRepo {
	return &UploadsRepo{db: db}
}

const uploadColumns = `
	id, owner_user_id, path, public_url, content_type, size,
	status, attempts, last_error, created_at, updated_at`

func (r *UploadsRepo) Create(ctx context.Context, u uploads.Upload) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO uploads (`+uploadColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		u.ID, u.OwnerUserID, u.Path, u.PublicURL, u.ContentType, u.Size,
		string(u.Status), u.Attempts, nullString(u.LastError), u.CreatedAt, u.UpdatedAt,
	)
	return err
}

func (r *UploadsRepo) Update(ctx context.Context, u uploads.Upload) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE uploads
		SET status = $2, attempts = $3, last_error = $4, updated_at = $5
		WHERE id = $1
	`, u.ID, string(u.Status), u.Attempts, nullString(u.LastError), u.UpdatedAt)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return uploads.ErrNotFound
	}
	return nil
}

func (r *UploadsRepo) FindStaged(ctx context.Context, ownerUserID, publicURL string) (uploads.Upload, error) {
	u, err := scanUpload(r.db.QueryRowContext(ctx, `
		SELECT `+uploadColumns+`
		FROM uploads
		WHERE owner_user_id = $1 AND public_url = $2 AND status = $3
		LIMIT 1
	`, ownerUserID, publicURL, string(uploads.StatusStaged)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uploads.Upload{}, uploads.ErrNotFound
		}
		return uploads.Upload{}, err
	}
	return u, nil
}

func (r *UploadsRepo) ListStaleStaged(ctx context.Context, before time.Time, limit int) ([]uploads.Upload, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+uploadColumns+`
		FROM uploads
		WHERE status = $1 AND updated_at < $2
		ORDER BY updated_at ASC
		LIMIT $3
	`, string(uploads.StatusStaged), before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uploads.Upload, 0)
	for rows.Next() {
		u, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func scanUpload(s scanner) (uploads.Upload, error) {
	var u uploads.Upload
	var status string
	var lastErr sql.NullString
	if err := s.Scan(
		&u.ID, &u.OwnerUserID, &u.Path, &u.PublicURL, &u.ContentType, &u.Size,
		&status, &u.Attempts, &lastErr, &u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return uploads.Upload{}, err
	}
	u.Status = uploads.Status(status)
	u.LastError = lastErr.String
	return u, nil
}
