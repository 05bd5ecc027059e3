package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-profiles/internal/domain/sessions"
)

// UsersRepo lee la tabla users. encrypted_password es un hash bcrypt.
type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) FindByMobile(ctx context.Context, mobileNumber string) (sessions.Credential, error) {
	var c sessions.Credential
	var role sql.NullString
	err := r.db.QueryRowContext(ctx, `
		SELECT id, mobile_number, encrypted_password, role
		FROM users
		WHERE mobile_number = $1
	`, mobileNumber).Scan(&c.ID, &c.MobileNumber, &c.PasswordHash, &role)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return sessions.Credential{}, sessions.ErrNotFound
		}
		return sessions.Credential{}, err
	}
	c.Role = role.String
	return c, nil
}

// Add inserta un usuario (seed de desarrollo). Si el celular ya existe no hace nada.
func (r *UsersRepo) Add(ctx context.Context, c sessions.Credential) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, mobile_number, encrypted_password, role)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (mobile_number) DO NOTHING
	`, c.ID, c.MobileNumber, c.PasswordHash, c.Role)
	return err
}
