package router

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"pet-profiles/internal/adapters/backend/supabase"
	objdisk "pet-profiles/internal/adapters/objectstore/disk"
	objmem "pet-profiles/internal/adapters/objectstore/memory"
	mem "pet-profiles/internal/adapters/storage/memory"
	pg "pet-profiles/internal/adapters/storage/postgres"
	"pet-profiles/internal/domain/pets"
	"pet-profiles/internal/domain/sessions"
	"pet-profiles/internal/domain/uploads"
	"pet-profiles/internal/platform/config"
	"pet-profiles/internal/platform/logger"
	"pet-profiles/internal/ports/objectstore"

	"github.com/google/uuid"
)

// UploadsPath es donde se publican los objetos cuando el store es local.
const UploadsPath = "/uploads"

// UserSeeder lo implementan los stores de credenciales que aceptan altas (dev).
type UserSeeder interface {
	Add(ctx context.Context, c sessions.Credential) error
}

// Backends agrupa los repos/stores elegidos según la configuración.
type Backends struct {
	Credentials sessions.CredentialStore
	Seeder      UserSeeder
	Sessions    sessions.Repository
	Pets        pets.Repository
	Uploads     uploads.Repository
	Objects     objectstore.Store

	// ObjectsHandler sirve UploadsPath (nil si los objetos viven en Supabase).
	ObjectsHandler http.Handler

	Kind string // memory | postgres | supabase

	db *sql.DB
}

// MemoryBackends: todo in-memory (dev/tests).
func MemoryBackends(publicBaseURL string) *Backends {
	users := mem.NewUserRepo()
	objects := objmem.New(strings.TrimRight(publicBaseURL, "/") + UploadsPath)
	return &Backends{
		Credentials:    users,
		Seeder:         users,
		Sessions:       mem.NewSessionRepo(),
		Pets:           mem.NewPetRepo(),
		Uploads:        mem.NewUploadRepo(),
		Objects:        objects,
		ObjectsHandler: objects,
		Kind:           "memory",
	}
}

// OpenBackends elige backend:
// - SUPABASE_URL: credenciales, perfiles y objetos vía Supabase.
// - DB_DSN: credenciales y perfiles en Postgres.
// - nada: in-memory.
// Con DB_DSN los ledgers de sesiones y uploads van a Postgres; si no, in-memory.
func OpenBackends(cfg config.Config, log logger.Logger) (*Backends, error) {
	b := MemoryBackends(cfg.PublicBaseURL)

	if dsn := strings.TrimSpace(cfg.DBDSN); dsn != "" {
		db, err := pg.Open(dsn)
		if err != nil {
			return nil, fmt.Errorf("router: open postgres: %w", err)
		}
		users := pg.NewUsersRepo(db)
		b.db = db
		b.Credentials = users
		b.Seeder = users
		b.Pets = pg.NewPetsRepo(db)
		b.Sessions = pg.NewSessionsRepo(db)
		b.Uploads = pg.NewUploadsRepo(db)
		b.Kind = "postgres"
	}

	if dir := strings.TrimSpace(cfg.UploadsDir); dir != "" {
		store, err := objdisk.New(dir, strings.TrimRight(cfg.PublicBaseURL, "/")+UploadsPath)
		if err != nil {
			_ = b.Close()
			return nil, err
		}
		b.Objects = store
		b.ObjectsHandler = store.Handler()
	}

	if strings.TrimSpace(cfg.SupabaseURL) != "" {
		client, err := supabase.NewClient(supabase.Config{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Bucket:  cfg.SupabaseBucket,
			Timeout: 10 * time.Second,
		})
		if err != nil {
			_ = b.Close()
			return nil, fmt.Errorf("router: supabase: %w", err)
		}
		users := supabase.NewUsers(client)
		b.Credentials = users
		b.Seeder = users
		b.Pets = supabase.NewPets(client)
		b.Objects = supabase.NewStorage(client)
		b.ObjectsHandler = nil
		b.Kind = "supabase"
	}

	log.Info("backends selected", map[string]any{
		"kind":           b.Kind,
		"session_ledger": ledgerKind(b),
		"local_objects":  b.ObjectsHandler != nil,
	})
	return b, nil
}

func ledgerKind(b *Backends) string {
	if b.db != nil {
		return "postgres"
	}
	return "memory"
}

// Seed da de alta los usuarios de SEED_USERS con password hasheada.
func (b *Backends) Seed(ctx context.Context, seeds []config.SeedUser, log logger.Logger) error {
	if len(seeds) == 0 {
		return nil
	}
	if b.Seeder == nil {
		return errors.New("router: backend does not accept seeded users")
	}
	for _, s := range seeds {
		hash, err := sessions.HashPassword(s.Password)
		if err != nil {
			return err
		}
		err = b.Seeder.Add(ctx, sessions.Credential{
			ID:           uuid.NewString(),
			MobileNumber: s.MobileNumber,
			PasswordHash: hash,
			Role:         s.Role,
		})
		if err != nil && !errors.Is(err, mem.ErrMobileTaken) {
			return fmt.Errorf("router: seed %s: %w", s.MobileNumber, err)
		}
		log.Info("seeded user", map[string]any{"mobile_number": s.MobileNumber, "role": s.Role})
	}
	return nil
}

func (b *Backends) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}
