package cache

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zinc-sig/firebuild-cache/internal/confmap"
)

// HTTPConfig holds HTTP cache endpoint configuration
type HTTPConfig struct {
	URL       string            // Base URL, objects are stored below it
	Method    string            // HTTP method (default: PUT)
	Headers   map[string]string // Custom headers
	Timeout   time.Duration     // Timeout for the whole upload
	AuthType  string            // Authentication type: none, bearer, api-key
	AuthToken string            // Authentication token
}

// HTTPBackend stores archives on a plain HTTP blob cache
type HTTPBackend struct {
	httpClient *http.Client
	config     *HTTPConfig
}

// NewHTTPBackend creates a new HTTPBackend
func NewHTTPBackend() *HTTPBackend {
	return &HTTPBackend{httpClient: &http.Client{}}
}

// Name returns the backend name
func (h *HTTPBackend) Name() string {
	return "http"
}

// Configure validates the endpoint and authentication settings
func (h *HTTPBackend) Configure(ctx context.Context, config confmap.Map) error {
	rawURL, ok := config.String("url")
	if !ok || rawURL == "" {
		return fmt.Errorf("http cache: url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("http cache: invalid url %q", rawURL)
	}

	method := strings.ToUpper(config.StringOr("method", http.MethodPut))
	if method != http.MethodPut && method != http.MethodPost {
		return fmt.Errorf("http cache: unsupported method %s", method)
	}

	authType := config.StringOr("auth_type", "none")
	authToken := config.StringOr("auth_token", "")
	switch authType {
	case "none":
	case "bearer", "api-key":
		if authToken == "" {
			return fmt.Errorf("http cache: auth_token is required for auth_type %s", authType)
		}
	default:
		return fmt.Errorf("http cache: unsupported auth_type %s", authType)
	}

	timeout, err := config.Duration("timeout", 10*time.Minute)
	if err != nil {
		return fmt.Errorf("http cache: %w", err)
	}

	h.config = &HTTPConfig{
		URL:       rawURL,
		Method:    method,
		Headers:   config.StringMap("headers"),
		Timeout:   timeout,
		AuthType:  authType,
		AuthToken: authToken,
	}
	return nil
}

// Upload sends the archive in a single request
func (h *HTTPBackend) Upload(ctx context.Context, reader io.Reader, size int64, object string) error {
	if h.config == nil {
		return fmt.Errorf("http cache: backend not configured")
	}

	target, err := objectURL(h.config.URL, object)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, h.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, h.config.Method, target, reader)
	if err != nil {
		return fmt.Errorf("http cache: failed to create request: %w", err)
	}
	if size >= 0 {
		req.ContentLength = size
	}

	// Set headers
	req.Header.Set("Content-Type", "application/zstd")
	for k, v := range h.config.Headers {
		req.Header.Set(k, v)
	}

	// Set authentication
	switch h.config.AuthType {
	case "bearer":
		req.Header.Set("Authorization", "Bearer "+h.config.AuthToken)
	case "api-key":
		req.Header.Set("X-API-Key", h.config.AuthToken)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http cache: upload of %s failed: %w", object, err)
	}
	defer func() { _ = resp.Body.Close() }()

	// Drain response body to reuse connection
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("http cache: upload of %s failed with status %d", object, resp.StatusCode)
	}
	return nil
}

// objectURL joins the slash separated object name below base, escaping each segment
func objectURL(base, object string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("http cache: invalid url %q: %w", base, err)
	}
	return u.JoinPath(strings.Split(object, "/")...).String(), nil
}
