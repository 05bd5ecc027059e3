package supabase

import (
	"context"
	"net/http"
	"net/url"

	"pet-profiles/internal/domain/sessions"
)

type userRow struct {
	ID                string  `json:"id"`
	MobileNumber      string  `json:"mobile_number"`
	EncryptedPassword string  `json:"encrypted_password"`
	Role              *string `json:"role"`
}

// Users implementa sessions.CredentialStore sobre la tabla users.
type Users struct {
	c *Client
}

func NewUsers(c *Client) *Users {
	return &Users{c: c}
}

func (u *Users) FindByMobile(ctx context.Context, mobileNumber string) (sessions.Credential, error) {
	q := url.Values{}
	q.Set("select", "id,mobile_number,encrypted_password,role")
	q.Set("mobile_number", eq(mobileNumber))
	q.Set("limit", "1")

	var rows []userRow
	if err := u.c.rest(ctx, http.MethodGet, "users", q, "", nil, &rows); err != nil {
		return sessions.Credential{}, err
	}
	if len(rows) == 0 {
		return sessions.Credential{}, sessions.ErrNotFound
	}

	r := rows[0]
	c := sessions.Credential{
		ID:           r.ID,
		MobileNumber: r.MobileNumber,
		PasswordHash: r.EncryptedPassword,
	}
	if r.Role != nil {
		c.Role = *r.Role
	}
	return c, nil
}

// Add inserta un usuario; si el celular ya existe lo ignora.
func (u *Users) Add(ctx context.Context, c sessions.Credential) error {
	row := userRow{
		ID:                c.ID,
		MobileNumber:      c.MobileNumber,
		EncryptedPassword: c.PasswordHash,
		Role:              &c.Role,
	}
	q := url.Values{}
	q.Set("on_conflict", "mobile_number")
	return u.c.rest(ctx, http.MethodPost, "users", q, "resolution=ignore-duplicates,return=minimal", []userRow{row}, nil)
}
