package disk

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pet-profiles/internal/ports/objectstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_PutServeDelete(t *testing.T) {
	root := t.TempDir()
	s, err := New(root, "http://localhost:8080/uploads/")
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, "pet_images/a.png", "image/png", strings.NewReader("PNGDATA")))
	b, err := os.ReadFile(filepath.Join(root, "pet_images", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "PNGDATA", string(b))
	assert.Equal(t, "http://localhost:8080/uploads/pet_images/a.png", s.PublicURL("pet_images/a.png"))

	srv := httptest.NewServer(http.StripPrefix("/uploads", s.Handler()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/uploads/pet_images/a.png")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "PNGDATA", string(body))

	resp, err = http.Get(srv.URL + "/uploads/pet_images/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	require.NoError(t, s.Delete(ctx, "pet_images/a.png"))
	assert.ErrorIs(t, s.Delete(ctx, "pet_images/a.png"), objectstore.ErrNotFound)
}

func TestStore_RejectsTraversal(t *testing.T) {
	s, err := New(t.TempDir(), "http://x/uploads")
	require.NoError(t, err)

	assert.ErrorIs(t, s.Put(context.Background(), "../escape.png", "image/png", strings.NewReader("x")), ErrInvalidPath)
	assert.ErrorIs(t, s.Delete(context.Background(), ""), ErrInvalidPath)
}
