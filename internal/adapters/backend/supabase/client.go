package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-profiles/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("supabase client not configured")
	ErrUnauthorized  = errors.New("supabase unauthorized")
	ErrUpstream      = errors.New("supabase upstream error")
)

const (
	restPrefix    = "/rest/v1"
	storagePrefix = "/storage/v1"

	DefaultBucket = "uploads"
)

// Config del backend Supabase-compatible (PostgREST + Storage).
type Config struct {
	BaseURL string
	APIKey  string // service role key; solo vive en el servidor
	Bucket  string

	Timeout time.Duration
}

type Client struct {
	http   *httpclient.Client
	bucket string
}

func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}

	hc, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	hc.Headers = map[string]string{
		"apikey":        key,
		"Authorization": "Bearer " + key,
	}

	bucket := strings.Trim(strings.TrimSpace(cfg.Bucket), "/")
	if bucket == "" {
		bucket = DefaultBucket
	}
	return &Client{http: hc, bucket: bucket}, nil
}

func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// rest hace un request JSON contra PostgREST.
func (c *Client) rest(ctx context.Context, method, table string, query url.Values, prefer string, in, out any) error {
	var headers map[string]string
	if prefer != "" {
		headers = map[string]string{"Prefer": prefer}
	}
	err := c.http.DoJSON(ctx, method, restPrefix+"/"+table, query, headers, in, out)
	return mapError(err)
}

// mapError traduce errores HTTP a sentinels; el status queda accesible con httpclient.StatusCode.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch httpclient.StatusCode(err) {
	case 0:
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %w", ErrUnauthorized, err)
	default:
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
}

func eq(v string) string {
	return "eq." + v
}
