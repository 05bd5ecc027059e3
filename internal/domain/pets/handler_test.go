package pets

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-profiles/internal/middleware"
	"pet-profiles/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newPetsRouter(svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			c := auth.Claims{UserID: "owner-1", Role: auth.RoleUser}
			next.ServeHTTP(w, req.WithContext(middleware.WithClaims(req.Context(), c)))
		})
	})
	RegisterRoutes(r, svc, nil)
	return r
}

func TestCreatePetHandler_NilLoggerOnWriteFailure(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.failWrites = errors.New("db down")

	req := httptest.NewRequest(http.MethodPost, "/api/pets", strings.NewReader(`{"pet_unique_username":"milo","pet_name":"Milo"}`))
	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() { newPetsRouter(svc).ServeHTTP(rr, req) })

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgSubmitFailed)
}

func TestPublicProfileHandler_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	rr := httptest.NewRecorder()
	newPetsRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/public/pets/unknown_user", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgPetNotFound)
}
