package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config agrupa toda la configuración del servicio (env vars).
type Config struct {
	Port    string `envconfig:"PORT" default:"8080"`
	AppName string `envconfig:"APP_NAME" default:"pet-profiles"`

	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	// Storage. Sin DB_DSN ni SUPABASE_URL todo queda in-memory (modo dev).
	DBDSN          string `envconfig:"DB_DSN"`
	SupabaseURL    string `envconfig:"SUPABASE_URL"`
	SupabaseKey    string `envconfig:"SUPABASE_KEY"`
	SupabaseBucket string `envconfig:"SUPABASE_BUCKET" default:"uploads"`
	UploadsDir     string `envconfig:"UPLOADS_DIR"`
	PublicBaseURL  string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:8080"`

	// Sesiones
	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	SessionTTL   time.Duration `envconfig:"SESSION_TTL" default:"12h"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`

	// Uploads
	MaxUploadMB       int64         `envconfig:"MAX_UPLOAD_MB" default:"5"`
	OrphanTTL         time.Duration `envconfig:"UPLOAD_ORPHAN_TTL" default:"1h"`
	ReconcileInterval time.Duration `envconfig:"UPLOAD_RECONCILE_INTERVAL" default:"5m"`

	// SEED_USERS=mobile:password:role;mobile2:password2:role2 (dev; celulares existentes se ignoran)
	SeedUsers string `envconfig:"SEED_USERS"`

	ReadTimeout  time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"HTTP_WRITE_TIMEOUT" default:"10s"`
}

// SeedUser es un usuario de desarrollo declarado en SEED_USERS.
type SeedUser struct {
	MobileNumber string
	Password     string
	Role         string
}

// Load lee .env (si existe) y luego el entorno.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if len(strings.TrimSpace(c.JWTSecret)) < 16 {
		return fmt.Errorf("config: JWT_SECRET must be at least 16 characters")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("config: SESSION_TTL must be positive")
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("config: MAX_UPLOAD_MB must be positive")
	}
	if strings.TrimSpace(c.SupabaseURL) != "" && strings.TrimSpace(c.SupabaseKey) == "" {
		return fmt.Errorf("config: SUPABASE_KEY is required when SUPABASE_URL is set")
	}
	if _, err := c.Seeds(); err != nil {
		return err
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + strings.TrimPrefix(strings.TrimSpace(c.Port), ":")
}

func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// Seeds parsea SEED_USERS. Role vacío => "user".
func (c Config) Seeds() ([]SeedUser, error) {
	raw := strings.TrimSpace(c.SeedUsers)
	if raw == "" {
		return nil, nil
	}

	out := make([]SeedUser, 0)
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || parts[1] == "" {
			return nil, fmt.Errorf("config: invalid SEED_USERS entry %q", entry)
		}
		u := SeedUser{
			MobileNumber: strings.TrimSpace(parts[0]),
			Password:     parts[1],
			Role:         "user",
		}
		if len(parts) == 3 && strings.TrimSpace(parts[2]) != "" {
			u.Role = strings.TrimSpace(parts[2])
		}
		out = append(out, u)
	}
	return out, nil
}
