package pets

import (
	"context"
	"errors"
)

var (
	ErrNotFound      = errors.New("pet not found")
	ErrUsernameTaken = errors.New("pet username already taken")
)

// Repository es el acceso a la colección pet_profiles.
// Las implementaciones deben devolver ErrNotFound / ErrUsernameTaken (envueltos o no).
type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id, ownerUserID string) error

	GetByID(ctx context.Context, id string) (Pet, error)
	GetByUsername(ctx context.Context, username string) (Pet, error)

	// ListByOwner ordena por created_at descendente.
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)

	// ImageReferenced responde si algún perfil apunta a esa URL (lo usa el reconciliador de uploads).
	ImageReferenced(ctx context.Context, imageURL string) (bool, error)
}
