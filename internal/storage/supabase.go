// Package storage proxies file uploads to a Supabase-compatible object
// storage service. The server writes through the authenticated endpoint and
// hands clients a public read URL for the same key.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/travelapp/travel-journal/backend/internal/domain"
)

// Client uploads files to one bucket of a storage service.
type Client struct {
	baseURL    string
	bucket     string
	serviceKey string
	httpClient *http.Client

	// now is swappable in tests so storage keys are deterministic.
	now func() time.Time
}

// NewClient constructs a Client for the given storage endpoint and bucket.
// baseURL must not have a trailing slash (config.Load guarantees this).
// serviceKey is the privileged write credential; it never appears in any
// URL returned to callers.
func NewClient(baseURL, bucket, serviceKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		bucket:     bucket,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		now:        time.Now,
	}
}

// Upload forwards the file bytes to the storage service and returns the
// public URL the uploaded object is served from.
//
// The storage key is the upload timestamp plus a random component plus the
// sanitized original name, so concurrent uploads of the same filename never
// collide. One attempt only: any transport error or non-2xx response
// surfaces immediately as domain.ErrUpstream.
func (c *Client) Upload(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	key := c.objectKey(originalName)
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", c.baseURL, c.bucket, key)

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storage.Client.Upload: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("storage.Client.Upload: %w: %v", domain.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Include a bounded slice of the upstream body; storage services put
		// the actual failure reason there.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("storage.Client.Upload: %w: status %d: %s",
			domain.ErrUpstream, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.baseURL, c.bucket, key), nil
}

// objectKey builds a collision-resistant storage key from the original
// filename: "<unix-millis>_<8-hex>_<name>".
func (c *Client) objectKey(originalName string) string {
	name := sanitizeName(originalName)
	return fmt.Sprintf("%d_%s_%s", c.now().UnixMilli(), uuid.NewString()[:8], name)
}

// sanitizeName reduces an arbitrary client-supplied filename to a safe key
// segment: base name only, spaces collapsed to dashes, anything outside
// [A-Za-z0-9._-] dropped. An empty result falls back to "file.bin".
func sanitizeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, " ", "-")

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "file.bin"
	}
	return out
}
