package uploads

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("upload not found")

type Repository interface {
	Create(ctx context.Context, u Upload) error
	Update(ctx context.Context, u Upload) error
	// FindStaged busca la fila staged del dueño para esa URL pública.
	FindStaged(ctx context.Context, ownerUserID, publicURL string) (Upload, error)
	// ListStaleStaged: staged con updated_at anterior a before, más viejas primero.
	ListStaleStaged(ctx context.Context, before time.Time, limit int) ([]Upload, error)
}

// ReferenceChecker responde si algún perfil todavía apunta a la imagen.
type ReferenceChecker interface {
	ImageReferenced(ctx context.Context, imageURL string) (bool, error)
}
