package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-profiles/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	pet_unique_username, pet_name, mobile_number, pet_image_url,
	description, whatsapp, location, instagram, gallery, address,
	description_visibility, whatsapp_visibility, location_visibility,
	instagram_visibility, gallery_visibility, address_visibility,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pet_profiles (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
	`,
		p.ID,
		p.OwnerUserID,
		p.Username,
		p.Name,
		nullString(p.MobileNumber),
		nullString(p.ImageURL),
		nullString(p.Description),
		nullString(p.WhatsApp),
		nullString(p.Location),
		nullString(p.Instagram),
		nullString(p.Gallery),
		nullString(p.Address),
		p.Visibility.Description,
		p.Visibility.WhatsApp,
		p.Visibility.Location,
		p.Visibility.Instagram,
		p.Visibility.Gallery,
		p.Visibility.Address,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return pets.ErrUsernameTaken
	}
	return err
}

// Update pisa el registro completo (last write wins).
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pet_profiles
		SET
			pet_unique_username = $3,
			pet_name = $4,
			mobile_number = $5,
			pet_image_url = $6,
			description = $7,
			whatsapp = $8,
			location = $9,
			instagram = $10,
			gallery = $11,
			address = $12,
			description_visibility = $13,
			whatsapp_visibility = $14,
			location_visibility = $15,
			instagram_visibility = $16,
			gallery_visibility = $17,
			address_visibility = $18,
			updated_at = $19
		WHERE id = $1 AND owner_user_id = $2
	`,
		p.ID,
		p.OwnerUserID,
		p.Username,
		p.Name,
		nullString(p.MobileNumber),
		nullString(p.ImageURL),
		nullString(p.Description),
		nullString(p.WhatsApp),
		nullString(p.Location),
		nullString(p.Instagram),
		nullString(p.Gallery),
		nullString(p.Address),
		p.Visibility.Description,
		p.Visibility.WhatsApp,
		p.Visibility.Location,
		p.Visibility.Instagram,
		p.Visibility.Gallery,
		p.Visibility.Address,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return pets.ErrUsernameTaken
		}
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM pet_profiles WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+petColumns+` FROM pet_profiles WHERE id = $1`, id)
}

func (r *PetsRepo) GetByUsername(ctx context.Context, username string) (pets.Pet, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.getOne(ctx, `SELECT `+petColumns+` FROM pet_profiles WHERE pet_unique_username = $1`, username)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pet_profiles
		WHERE owner_user_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) ImageReferenced(ctx context.Context, imageURL string) (bool, error) {
	if imageURL == "" {
		return false, nil
	}
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM pet_profiles WHERE pet_image_url = $1)
	`, imageURL).Scan(&exists)
	return exists, err
}

func (r *PetsRepo) getOne(ctx context.Context, query string, arg string) (pets.Pet, error) {
	p, err := scanPet(r.db.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, fmt.Errorf("postgres: get pet: %w", err)
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

// Las columnas de texto opcionales pueden venir NULL desde filas cargadas a mano.
func scanPet(s scanner) (pets.Pet, error) {
	var p pets.Pet
	var mobile, image, desc, wa, loc, ig, gallery, addr sql.NullString
	err := s.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Username,
		&p.Name,
		&mobile,
		&image,
		&desc,
		&wa,
		&loc,
		&ig,
		&gallery,
		&addr,
		&p.Visibility.Description,
		&p.Visibility.WhatsApp,
		&p.Visibility.Location,
		&p.Visibility.Instagram,
		&p.Visibility.Gallery,
		&p.Visibility.Address,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return pets.Pet{}, err
	}
	p.MobileNumber = mobile.String
	p.ImageURL = image.String
	p.Description = desc.String
	p.WhatsApp = wa.String
	p.Location = loc.String
	p.Instagram = ig.String
	p.Gallery = gallery.String
	p.Address = addr.String
	return p, nil
}
