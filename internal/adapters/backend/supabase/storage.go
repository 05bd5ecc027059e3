package supabase

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"pet-profiles/internal/platform/httpclient"
	"pet-profiles/internal/ports/objectstore"
)

// Storage implementa objectstore.Store sobre el bucket público configurado.
type Storage struct {
	c *Client
}

func NewStorage(c *Client) *Storage {
	return &Storage{c: c}
}

func (s *Storage) Put(ctx context.Context, path, contentType string, body io.Reader) error {
	_, _, err := s.c.http.Do(ctx, httpclient.Request{
		Method:      http.MethodPost,
		Path:        s.objectPath(path),
		Body:        body,
		ContentType: contentType,
		Headers: map[string]string{
			"x-upsert":      "false",
			"cache-control": "3600",
		},
	})
	return mapError(err)
}

func (s *Storage) Delete(ctx context.Context, path string) error {
	_, _, err := s.c.http.Do(ctx, httpclient.Request{
		Method: http.MethodDelete,
		Path:   s.objectPath(path),
	})
	// Storage contesta 400 con statusCode "404" en el body para objetos inexistentes.
	if code := httpclient.StatusCode(err); code == http.StatusNotFound ||
		(code == http.StatusBadRequest && strings.Contains(err.Error(), `"404"`)) {
		return fmt.Errorf("%w: %s", objectstore.ErrNotFound, path)
	}
	return mapError(err)
}

func (s *Storage) PublicURL(path string) string {
	return s.c.BaseURL() + storagePrefix + "/object/public/" + s.c.bucket + "/" + escapePath(path)
}

func (s *Storage) objectPath(path string) string {
	return storagePrefix + "/object/" + s.c.bucket + "/" + escapePath(path)
}

func escapePath(p string) string {
	parts := strings.Split(strings.TrimLeft(p, "/"), "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
