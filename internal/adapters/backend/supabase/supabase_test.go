package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pet-profiles/internal/domain/pets"
	"pet-profiles/internal/domain/sessions"
	"pet-profiles/internal/ports/objectstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "service-role-key"

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("apikey") != testKey || r.Header.Get("Authorization") != "Bearer "+testKey {
			http.Error(w, `{"message":"invalid key"}`, http.StatusUnauthorized)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: testKey, Timeout: time.Second})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresConfig(t *testing.T) {
	_, err := NewClient(Config{BaseURL: "http://x"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestUsers_FindByMobile(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/users", r.URL.Path)
		if r.URL.Query().Get("mobile_number") == "eq.5550001" {
			_, _ = io.WriteString(w, `[{"id":"u1","mobile_number":"5550001","encrypted_password":"$2a$hash","role":"admin"}]`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	})
	users := NewUsers(c)

	cred, err := users.FindByMobile(context.Background(), "5550001")
	require.NoError(t, err)
	assert.Equal(t, sessions.Credential{ID: "u1", MobileNumber: "5550001", PasswordHash: "$2a$hash", Role: "admin"}, cred)

	_, err = users.FindByMobile(context.Background(), "0000")
	assert.ErrorIs(t, err, sessions.ErrNotFound)
}

func TestPets_CreateConflict(t *testing.T) {
	var got []map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		if got[0]["pet_unique_username"] == "taken" {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"code":"23505"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
	})
	repo := NewPets(c)

	p := pets.Pet{ID: "p1", OwnerUserID: "u1", Details: pets.Details{Username: "milo", Name: "Milo", WhatsApp: "555"}, Visibility: pets.Visibility{WhatsApp: true}}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.Equal(t, "milo", got[0]["pet_unique_username"])
	assert.Equal(t, true, got[0]["whatsapp_visibility"])
	assert.Nil(t, got[0]["description"])

	p.Username = "taken"
	assert.ErrorIs(t, repo.Create(context.Background(), p), pets.ErrUsernameTaken)
}

func TestPets_UpdateDeleteNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "eq.u1", q.Get("owner_user_id"))
		assert.Contains(t, r.Header.Get("Prefer"), "return=representation")
		if q.Get("id") == "eq.p1" {
			_, _ = io.WriteString(w, `[{"id":"p1"}]`)
			return
		}
		_, _ = io.WriteString(w, `[]`)
	})
	repo := NewPets(c)
	ctx := context.Background()

	require.NoError(t, repo.Update(ctx, pets.Pet{ID: "p1", OwnerUserID: "u1"}))
	assert.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "p2", OwnerUserID: "u1"}), pets.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "p1", "u1"))
	assert.ErrorIs(t, repo.Delete(ctx, "p2", "u1"), pets.ErrNotFound)
}

func TestPets_ListAndGet(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch {
		case q.Get("owner_user_id") == "eq.u1":
			assert.Equal(t, "created_at.desc", q.Get("order"))
			_, _ = io.WriteString(w, `[
				{"id":"p2","owner_user_id":"u1","pet_unique_username":"luna","pet_name":"Luna","whatsapp":null,"created_at":"2026-01-02T00:00:00Z","updated_at":"2026-01-02T00:00:00Z"},
				{"id":"p1","owner_user_id":"u1","pet_unique_username":"milo","pet_name":"Milo","whatsapp":"555","whatsapp_visibility":true,"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}
			]`)
		case q.Get("pet_unique_username") == "eq.milo":
			_, _ = io.WriteString(w, `[{"id":"p1","owner_user_id":"u1","pet_unique_username":"milo","pet_name":"Milo","whatsapp":"555","whatsapp_visibility":true,"created_at":"2026-01-01T00:00:00Z","updated_at":"2026-01-01T00:00:00Z"}]`)
		case q.Get("id") == "eq.not-a-uuid":
			http.Error(w, `{"code":"22P02"}`, http.StatusBadRequest)
		case q.Get("pet_image_url") != "":
			_, _ = io.WriteString(w, `[{"id":"p1"}]`)
		default:
			_, _ = io.WriteString(w, `[]`)
		}
	})
	repo := NewPets(c)
	ctx := context.Background()

	list, err := repo.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ID)
	assert.Equal(t, "", list[0].WhatsApp)

	p, err := repo.GetByUsername(ctx, "milo")
	require.NoError(t, err)
	assert.Equal(t, "555", p.WhatsApp)
	assert.True(t, p.Visibility.WhatsApp)

	_, err = repo.GetByUsername(ctx, "unknown_user")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, pets.ErrNotFound)

	ok, err := repo.ImageReferenced(ctx, "https://x/y.png")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStorage(t *testing.T) {
	var uploaded string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/storage/v1/object/uploads/pet_images/a.png":
			assert.Equal(t, "image/png", r.Header.Get("Content-Type"))
			b, _ := io.ReadAll(r.Body)
			uploaded = string(b)
			_, _ = io.WriteString(w, `{"Key":"uploads/pet_images/a.png"}`)
		case r.Method == http.MethodDelete && r.URL.Path == "/storage/v1/object/uploads/pet_images/a.png":
			_, _ = io.WriteString(w, `{"message":"Successfully deleted"}`)
		case r.Method == http.MethodDelete:
			http.Error(w, `{"statusCode":"404","error":"not_found"}`, http.StatusBadRequest)
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	})
	s := NewStorage(c)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "pet_images/a.png", "image/png", strings.NewReader("PNG")))
	assert.Equal(t, "PNG", uploaded)
	assert.Equal(t, c.BaseURL()+"/storage/v1/object/public/uploads/pet_images/a.png", s.PublicURL("pet_images/a.png"))

	require.NoError(t, s.Delete(ctx, "pet_images/a.png"))
	assert.ErrorIs(t, s.Delete(ctx, "pet_images/missing.png"), objectstore.ErrNotFound)
}

func TestMapError_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewClient(Config{BaseURL: srv.URL, APIKey: "wrong"})
	require.NoError(t, err)

	_, err = NewUsers(c).FindByMobile(context.Background(), "1")
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
