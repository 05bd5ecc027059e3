package pets

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"pet-profiles/internal/platform/logger"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

const maxUsernameLen = 64

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// ImageStager es la parte del módulo uploads que necesita pets.
// Commit confirma una imagen subida (staged) una vez persistido el perfil;
// Discard la descarta cuando la escritura del perfil falla.
// Ambos son no-op para URLs que no correspondan a un upload staged del usuario.
type ImageStager interface {
	Commit(ctx context.Context, ownerUserID, imageURL string) error
	Discard(ctx context.Context, ownerUserID, imageURL string) error
}

type Service struct {
	repo   Repository
	images ImageStager // puede ser nil
	log    logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, images ImageStager, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:   repo,
		images: images,
		log:    log,
		now:    time.Now,
	}
}

// Submit persiste el formulario con una sola escritura: insert (modo create) o update (modo edit).
func (s *Service) Submit(ctx context.Context, ownerUserID string, f Form) (Pet, error) {
	if f.Editing() {
		return s.Update(ctx, f.ID, ownerUserID, f.Details, f.Visibility)
	}
	return s.Create(ctx, ownerUserID, f.Details, f.Visibility)
}

func (s *Service) Create(ctx context.Context, ownerUserID string, d Details, v Visibility) (Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}
	d, err := normalizeDetails(d)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Details:     d,
		Visibility:  v,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.discardImage(ctx, ownerUserID, d.ImageURL)
		return Pet{}, err
	}
	s.commitImage(ctx, ownerUserID, d.ImageURL)
	return p, nil
}

// Update reemplaza el registro completo (el formulario siempre manda todos los campos).
// Sin control de versión: gana la última escritura.
func (s *Service) Update(ctx context.Context, id, ownerUserID string, d Details, v Visibility) (Pet, error) {
	current, err := s.GetOwned(ctx, id, ownerUserID)
	if err != nil {
		return Pet{}, err
	}
	d, err = normalizeDetails(d)
	if err != nil {
		return Pet{}, err
	}

	// Solo la imagen nueva participa del commit/discard; la anterior queda como está.
	newImage := ""
	if d.ImageURL != current.ImageURL {
		newImage = d.ImageURL
	}

	updated := current
	updated.Details = d
	updated.Visibility = v
	updated.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, updated); err != nil {
		s.discardImage(ctx, current.OwnerUserID, newImage)
		return Pet{}, err
	}
	s.commitImage(ctx, current.OwnerUserID, newImage)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id, ownerUserID string) error {
	id = strings.TrimSpace(id)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if id == "" || ownerUserID == "" {
		return ErrInvalidInput
	}
	return s.repo.Delete(ctx, id, ownerUserID)
}

// GetOwned devuelve el perfil solo si pertenece a ownerUserID; si no, ErrNotFound
// (no revelamos perfiles ajenos).
func (s *Service) GetOwned(ctx context.Context, id, ownerUserID string) (Pet, error) {
	id = strings.TrimSpace(id)
	ownerUserID = strings.TrimSpace(ownerUserID)
	if id == "" || ownerUserID == "" {
		return Pet{}, ErrInvalidInput
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if p.OwnerUserID != ownerUserID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (s *Service) GetByUsername(ctx context.Context, username string) (Pet, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetByUsername(ctx, username)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ImageReferenced expone el repo al reconciliador de uploads.
func (s *Service) ImageReferenced(ctx context.Context, imageURL string) (bool, error) {
	return s.repo.ImageReferenced(ctx, imageURL)
}

func (s *Service) commitImage(ctx context.Context, ownerUserID, imageURL string) {
	if s.images == nil || imageURL == "" {
		return
	}
	if err := s.images.Commit(ctx, ownerUserID, imageURL); err != nil {
		// El reconciliador vuelve a mirar la referencia antes de borrar nada.
		s.log.Warn("pets: image commit failed", map[string]any{
			"owner_user_id": ownerUserID,
			"image_url":     imageURL,
			"err":           err,
		})
	}
}

func (s *Service) discardImage(ctx context.Context, ownerUserID, imageURL string) {
	if s.images == nil || imageURL == "" {
		return
	}
	if err := s.images.Discard(ctx, ownerUserID, imageURL); err != nil {
		s.log.Warn("pets: image discard failed, left for reconciler", map[string]any{
			"owner_user_id": ownerUserID,
			"image_url":     imageURL,
			"err":           err,
		})
	}
}

func normalizeDetails(d Details) (Details, error) {
	d.Username = strings.TrimSpace(d.Username)
	d.Name = strings.TrimSpace(d.Name)
	d.MobileNumber = strings.TrimSpace(d.MobileNumber)
	d.ImageURL = strings.TrimSpace(d.ImageURL)
	for _, f := range OptionalFields {
		d = d.With(f, strings.TrimSpace(d.Value(f)))
	}

	if d.Username == "" || len(d.Username) > maxUsernameLen || !usernamePattern.MatchString(d.Username) {
		return Details{}, fmt.Errorf("%w: pet_unique_username must be 1-%d letters, digits, '_', '.' or '-'", ErrInvalidInput, maxUsernameLen)
	}
	if d.Name == "" {
		return Details{}, fmt.Errorf("%w: pet_name is required", ErrInvalidInput)
	}
	return d, nil
}
