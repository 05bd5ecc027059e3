package objectstore

import (
	"context"
	"errors"
	"io"
)

var ErrNotFound = errors.New("object not found")

// Store es el almacenamiento de objetos (imágenes de mascotas).
// Los paths son relativos al namespace de uploads, p.ej. "pet_images/<id>.png".
type Store interface {
	Put(ctx context.Context, path, contentType string, body io.Reader) error
	Delete(ctx context.Context, path string) error
	PublicURL(path string) string
}
