package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoJSON_SendsHeadersAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key-1", r.Header.Get("apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "eq.milo", r.URL.Query().Get("pet_unique_username"))

		b, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"name":"milo"}`, string(b))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p-1"}`))
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL+"/", time.Second)
	require.NoError(t, err)
	c.Headers = map[string]string{"apikey": "key-1"}

	var out struct {
		ID string `json:"id"`
	}
	err = c.DoJSON(context.Background(), http.MethodPost, "rest/v1/pets",
		url.Values{"pet_unique_username": {"eq.milo"}}, nil,
		map[string]string{"name": "milo"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "p-1", out.ID)
}

func TestDo_Non2xxIsHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"code":"23505"}`, http.StatusConflict)
	}))
	defer ts.Close()

	c, err := NewWithBaseURL(ts.URL, time.Second)
	require.NoError(t, err)

	_, _, err = c.Do(context.Background(), Request{
		Method:      http.MethodPost,
		Path:        "/storage/v1/object/uploads/a.png",
		Body:        strings.NewReader("png"),
		ContentType: "image/png",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, StatusCode(err))
	assert.Contains(t, err.Error(), "23505")
}

func TestResolveURL(t *testing.T) {
	c := New(0)
	_, err := c.resolveURL("/relative")
	assert.Error(t, err)

	u, err := c.resolveURL("https://example.com/x")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/x", u)

	c.BaseURL = "https://api.example.com"
	u, err = c.resolveURL("v1/x")
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/v1/x", u)
}
