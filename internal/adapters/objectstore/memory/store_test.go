package memory

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-profiles/internal/ports/objectstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	s := New("https://cdn.test/")
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "pet_images/a.png", "image/png", strings.NewReader("x")))
	o, ok := s.Get("pet_images/a.png")
	require.True(t, ok)
	assert.Equal(t, "image/png", o.ContentType)
	assert.Equal(t, "https://cdn.test/pet_images/a.png", s.PublicURL("pet_images/a.png"))

	rr := httptest.NewRecorder()
	http.StripPrefix("/uploads", s).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/uploads/pet_images/a.png", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, "x", rr.Body.String())

	require.NoError(t, s.Delete(ctx, "pet_images/a.png"))
	assert.ErrorIs(t, s.Delete(ctx, "pet_images/a.png"), objectstore.ErrNotFound)
	assert.Equal(t, 0, s.Len())
}
