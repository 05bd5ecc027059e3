package sessions

import (
	"context"
	"errors"
	"time"

	"pet-profiles/internal/ports/auth"
)

var (
	ErrNotFound = errors.New("not found")
)

// CredentialStore busca credenciales por identificador de login (mobile_number).
type CredentialStore interface {
	FindByMobile(ctx context.Context, mobileNumber string) (Credential, error)
}

type Repository interface {
	Create(ctx context.Context, s Session) error
	GetByID(ctx context.Context, id string) (Session, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}

// TokenCodec firma y valida los tokens de sesión.
type TokenCodec interface {
	Issue(c auth.Claims) (string, error)
	Parse(token string) (auth.Claims, error)
}
