package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/ports/objectstore"

	"github.com/google/uuid"
)

var (
	ErrNoFile      = errors.New("no file part")
	ErrMalformed   = errors.New("malformed upload")
	ErrEmptyFile   = errors.New("empty file")
	ErrTooLarge    = errors.New("file too large")
	ErrNotAnImage  = errors.New("file is not an image")
	ErrInvalidUser = errors.New("owner required")
)

const (
	PathPrefix       = "pet_images"
	DefaultMaxBytes  = 5 << 20
	sniffLen         = 512
	maxLastErrorSize = 500
)

type Service struct {
	repo     Repository
	store    objectstore.Store
	log      logger.Logger
	maxBytes int64
	now      func() time.Time
	newID    func() string
}

func NewService(repo Repository, store objectstore.Store, maxBytes int64, log logger.Logger) *Service {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:     repo,
		store:    store,
		log:      log,
		maxBytes: maxBytes,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

func (s *Service) MaxBytes() int64 {
	return s.maxBytes
}

// Stage sube el objeto con nombre aleatorio (conserva la extensión) y deja
// la fila en staged. El perfil todavía no la referencia.
func (s *Service) Stage(ctx context.Context, ownerUserID, filename string, body io.Reader) (Upload, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Upload{}, ErrInvalidUser
	}

	// Leemos hasta max+1 para detectar exceso sin cargar más.
	data, err := io.ReadAll(io.LimitReader(body, s.maxBytes+1))
	if err != nil {
		return Upload{}, fmt.Errorf("uploads: read: %w", err)
	}
	if len(data) == 0 {
		return Upload{}, ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return Upload{}, ErrTooLarge
	}

	contentType := http.DetectContentType(data[:min(len(data), sniffLen)])
	if !strings.HasPrefix(contentType, "image/") {
		return Upload{}, ErrNotAnImage
	}

	id := s.newID()
	objPath := ObjectPath(id, filename)
	if err := s.store.Put(ctx, objPath, contentType, bytes.NewReader(data)); err != nil {
		return Upload{}, fmt.Errorf("uploads: put object: %w", err)
	}

	now := s.now()
	u := Upload{
		ID:          id,
		OwnerUserID: ownerUserID,
		Path:        objPath,
		PublicURL:   s.store.PublicURL(objPath),
		ContentType: contentType,
		Size:        int64(len(data)),
		Status:      StatusStaged,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		// Sin fila no hay quien limpie el objeto después.
		if derr := s.store.Delete(ctx, objPath); derr != nil && !errors.Is(derr, objectstore.ErrNotFound) {
			s.log.Error("uploads: orphan object after ledger failure", map[string]any{"path": objPath, "err": derr})
		}
		return Upload{}, fmt.Errorf("uploads: create ledger row: %w", err)
	}

	s.log.Info("uploads: staged", map[string]any{"upload_id": id, "owner_user_id": ownerUserID, "path": objPath, "size": u.Size})
	return u, nil
}

// Commit marca como committed la subida que el perfil acaba de persistir.
// URLs que no son staged del dueño (externas, ya committed) no hacen nada.
func (s *Service) Commit(ctx context.Context, ownerUserID, imageURL string) error {
	u, err := s.repo.FindStaged(ctx, ownerUserID, imageURL)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.commitRow(ctx, u)
}

// Discard intenta borrar el objeto de una subida cuyo perfil no se pudo guardar.
// Si el borrado falla la fila queda staged y el Reconciler reintenta.
func (s *Service) Discard(ctx context.Context, ownerUserID, imageURL string) error {
	u, err := s.repo.FindStaged(ctx, ownerUserID, imageURL)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	return s.discard(ctx, u)
}

// Touch renueva updated_at de una subida staged que un formulario abierto sigue
// mostrando, así el Reconciler no la toma por huérfana.
func (s *Service) Touch(ctx context.Context, ownerUserID, imageURL string) error {
	u, err := s.repo.FindStaged(ctx, ownerUserID, imageURL)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil
		}
		return err
	}
	u.UpdatedAt = s.now()
	return s.repo.Update(ctx, u)
}

func (s *Service) discard(ctx context.Context, u Upload) error {
	u.Attempts++
	u.UpdatedAt = s.now()

	if err := s.store.Delete(ctx, u.Path); err != nil && !errors.Is(err, objectstore.ErrNotFound) {
		u.LastError = truncate(err.Error(), maxLastErrorSize)
		if uerr := s.repo.Update(ctx, u); uerr != nil {
			s.log.Error("uploads: ledger update failed", map[string]any{"upload_id": u.ID, "err": uerr})
		}
		return fmt.Errorf("uploads: delete object: %w", err)
	}

	u.Status = StatusDiscarded
	u.LastError = ""
	if err := s.repo.Update(ctx, u); err != nil {
		return fmt.Errorf("uploads: mark discarded: %w", err)
	}
	s.log.Info("uploads: discarded", map[string]any{"upload_id": u.ID, "path": u.Path, "attempts": u.Attempts})
	return nil
}

func (s *Service) commitRow(ctx context.Context, u Upload) error {
	u.Status = StatusCommitted
	u.LastError = ""
	u.UpdatedAt = s.now()
	return s.repo.Update(ctx, u)
}

// ObjectPath arma pet_images/<id>.<ext>. La extensión se normaliza a minúsculas
// y se descarta si trae caracteres raros.
func ObjectPath(id, filename string) string {
	ext := strings.ToLower(path.Ext(strings.TrimSpace(filename)))
	if len(ext) < 2 || len(ext) > 10 || strings.ContainsFunc(ext[1:], notAlnum) {
		ext = ""
	}
	return PathPrefix + "/" + id + ext
}

func notAlnum(r rune) bool {
	return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
