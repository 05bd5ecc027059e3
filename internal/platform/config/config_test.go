package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "pet-profiles", cfg.AppName)
	assert.Equal(t, "uploads", cfg.SupabaseBucket)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.Equal(t, int64(5<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 5*time.Minute, cfg.ReconcileInterval)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef-secret")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("MAX_UPLOAD_MB", "2")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, int64(2<<20), cfg.MaxUploadBytes())
}

func TestValidate_SupabaseNeedsKey(t *testing.T) {
	cfg := Config{
		JWTSecret:   "0123456789abcdef-secret",
		SessionTTL:  time.Hour,
		MaxUploadMB: 1,
		SupabaseURL: "https://example.supabase.co",
	}
	assert.Error(t, cfg.Validate())

	cfg.SupabaseKey = "anon"
	assert.NoError(t, cfg.Validate())
}

func TestSeeds(t *testing.T) {
	t.Run("parses entries and defaults role", func(t *testing.T) {
		cfg := Config{SeedUsers: "5550001:secret:admin; 5550002:pw"}
		seeds, err := cfg.Seeds()
		require.NoError(t, err)
		require.Len(t, seeds, 2)

		assert.Equal(t, SeedUser{MobileNumber: "5550001", Password: "secret", Role: "admin"}, seeds[0])
		assert.Equal(t, SeedUser{MobileNumber: "5550002", Password: "pw", Role: "user"}, seeds[1])
	})

	t.Run("rejects entry without password", func(t *testing.T) {
		cfg := Config{SeedUsers: "5550001"}
		_, err := cfg.Seeds()
		assert.Error(t, err)
	})

	t.Run("empty is nil", func(t *testing.T) {
		seeds, err := Config{}.Seeds()
		require.NoError(t, err)
		assert.Nil(t, seeds)
	})
}
