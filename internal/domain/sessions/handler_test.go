package sessions

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

type downCreds struct{}

func (downCreds) FindByMobile(context.Context, string) (Credential, error) {
	return Credential{}, errors.New("db down")
}

func TestLoginHandler_NilLoggerOnBackendFailure(t *testing.T) {
	svc := NewService(downCreds{}, newTestRepo(), &testCodec{}, time.Hour, nil)
	r := chi.NewRouter()
	RegisterRoutes(r, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"mobile_number":"5550001","password":"x"}`))
	rr := httptest.NewRecorder()
	assert.NotPanics(t, func() { r.ServeHTTP(rr, req) })
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestLoginHandler_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	r := chi.NewRouter()
	RegisterRoutes(r, svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"mobile_number":"5550001","password":"nope"}`))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), MsgInvalidCredentials)
}
