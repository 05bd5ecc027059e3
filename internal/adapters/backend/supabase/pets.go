package supabase

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"pet-profiles/internal/domain/pets"
	"pet-profiles/internal/platform/httpclient"
)

const petsTable = "pet_profiles"

// petRow es la fila de pet_profiles tal como la expone PostgREST.
type petRow struct {
	ID          string `json:"id"`
	OwnerUserID string `json:"owner_user_id"`

	Username     string  `json:"pet_unique_username"`
	Name         string  `json:"pet_name"`
	MobileNumber *string `json:"mobile_number"`
	ImageURL     *string `json:"pet_image_url"`
	Description  *string `json:"description"`
	WhatsApp     *string `json:"whatsapp"`
	Location     *string `json:"location"`
	Instagram    *string `json:"instagram"`
	Gallery      *string `json:"gallery"`
	Address      *string `json:"address"`

	DescriptionVisibility bool `json:"description_visibility"`
	WhatsAppVisibility    bool `json:"whatsapp_visibility"`
	LocationVisibility    bool `json:"location_visibility"`
	InstagramVisibility   bool `json:"instagram_visibility"`
	GalleryVisibility     bool `json:"gallery_visibility"`
	AddressVisibility     bool `json:"address_visibility"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pets implementa pets.Repository sobre PostgREST.
type Pets struct {
	c *Client
}

func NewPets(c *Client) *Pets {
	return &Pets{c: c}
}

func (r *Pets) Create(ctx context.Context, p pets.Pet) error {
	err := r.c.rest(ctx, http.MethodPost, petsTable, nil, "return=minimal", []petRow{toRow(p)}, nil)
	if httpclient.StatusCode(err) == http.StatusConflict {
		return pets.ErrUsernameTaken
	}
	return err
}

func (r *Pets) Update(ctx context.Context, p pets.Pet) error {
	q := url.Values{}
	q.Set("id", eq(p.ID))
	q.Set("owner_user_id", eq(p.OwnerUserID))
	q.Set("select", "id")

	row := toRow(p)
	var out []struct {
		ID string `json:"id"`
	}
	err := r.c.rest(ctx, http.MethodPatch, petsTable, q, "return=representation", row, &out)
	if err != nil {
		if httpclient.StatusCode(err) == http.StatusConflict {
			return pets.ErrUsernameTaken
		}
		return err
	}
	if len(out) == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *Pets) Delete(ctx context.Context, id, ownerUserID string) error {
	q := url.Values{}
	q.Set("id", eq(id))
	q.Set("owner_user_id", eq(ownerUserID))
	q.Set("select", "id")

	var out []struct {
		ID string `json:"id"`
	}
	if err := r.c.rest(ctx, http.MethodDelete, petsTable, q, "return=representation", nil, &out); err != nil {
		return err
	}
	if len(out) == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *Pets) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	return r.getOne(ctx, "id", id)
}

func (r *Pets) GetByUsername(ctx context.Context, username string) (pets.Pet, error) {
	return r.getOne(ctx, "pet_unique_username", username)
}

func (r *Pets) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("owner_user_id", eq(ownerUserID))
	q.Set("order", "created_at.desc")

	var rows []petRow
	if err := r.c.rest(ctx, http.MethodGet, petsTable, q, "", nil, &rows); err != nil {
		return nil, err
	}
	out := make([]pets.Pet, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toPet())
	}
	return out, nil
}

func (r *Pets) ImageReferenced(ctx context.Context, imageURL string) (bool, error) {
	if imageURL == "" {
		return false, nil
	}
	q := url.Values{}
	q.Set("select", "id")
	q.Set("pet_image_url", eq(imageURL))
	q.Set("limit", "1")

	var rows []struct {
		ID string `json:"id"`
	}
	if err := r.c.rest(ctx, http.MethodGet, petsTable, q, "", nil, &rows); err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

func (r *Pets) getOne(ctx context.Context, column, value string) (pets.Pet, error) {
	if value == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	q := url.Values{}
	q.Set("select", "*")
	q.Set(column, eq(value))
	q.Set("limit", "1")

	var rows []petRow
	if err := r.c.rest(ctx, http.MethodGet, petsTable, q, "", nil, &rows); err != nil {
		// PostgREST responde 400 si el id no es un uuid válido.
		if httpclient.StatusCode(err) == http.StatusBadRequest {
			return pets.Pet{}, errors.Join(pets.ErrNotFound, err)
		}
		return pets.Pet{}, err
	}
	if len(rows) == 0 {
		return pets.Pet{}, pets.ErrNotFound
	}
	return rows[0].toPet(), nil
}

func toRow(p pets.Pet) petRow {
	return petRow{
		ID:                    p.ID,
		OwnerUserID:           p.OwnerUserID,
		Username:              p.Username,
		Name:                  p.Name,
		MobileNumber:          optional(p.MobileNumber),
		ImageURL:              optional(p.ImageURL),
		Description:           optional(p.Description),
		WhatsApp:              optional(p.WhatsApp),
		Location:              optional(p.Location),
		Instagram:             optional(p.Instagram),
		Gallery:               optional(p.Gallery),
		Address:               optional(p.Address),
		DescriptionVisibility: p.Visibility.Description,
		WhatsAppVisibility:    p.Visibility.WhatsApp,
		LocationVisibility:    p.Visibility.Location,
		InstagramVisibility:   p.Visibility.Instagram,
		GalleryVisibility:     p.Visibility.Gallery,
		AddressVisibility:     p.Visibility.Address,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}

func (row petRow) toPet() pets.Pet {
	return pets.Pet{
		ID:          row.ID,
		OwnerUserID: row.OwnerUserID,
		Details: pets.Details{
			Username:     row.Username,
			Name:         row.Name,
			MobileNumber: deref(row.MobileNumber),
			ImageURL:     deref(row.ImageURL),
			Description:  deref(row.Description),
			WhatsApp:     deref(row.WhatsApp),
			Location:     deref(row.Location),
			Instagram:    deref(row.Instagram),
			Gallery:      deref(row.Gallery),
			Address:      deref(row.Address),
		},
		Visibility: pets.Visibility{
			Description: row.DescriptionVisibility,
			WhatsApp:    row.WhatsAppVisibility,
			Location:    row.LocationVisibility,
			Instagram:   row.InstagramVisibility,
			Gallery:     row.GalleryVisibility,
			Address:     row.AddressVisibility,
		},
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
