package memory

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"pet-profiles/internal/ports/objectstore"
)

type Object struct {
	ContentType string
	Data        []byte
}

// Store guarda objetos en memoria (dev/tests).
type Store struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]Object
}

func New(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]Object),
	}
}

func (s *Store) Put(ctx context.Context, path, contentType string, body io.Reader) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = Object{ContentType: contentType, Data: b}
	return nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.objects[path]; !ok {
		return objectstore.ErrNotFound
	}
	delete(s.objects, path)
	return nil
}

func (s *Store) PublicURL(path string) string {
	return s.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (s *Store) Get(path string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[path]
	return o, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// ServeHTTP sirve el objeto por path (montar con http.StripPrefix).
func (s *Store) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	o, ok := s.Get(strings.TrimLeft(r.URL.Path, "/"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", o.ContentType)
	http.ServeContent(w, r, "", time.Time{}, bytes.NewReader(o.Data))
}
