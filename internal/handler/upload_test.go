package handler_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelapp/travel-journal/backend/internal/domain"
)

// multipartFile builds a multipart body with one "file" part.
func multipartFile(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func TestUploadFile_ok(t *testing.T) {
	var gotName, gotType string
	var gotData []byte
	up := &mockUploader{
		upload: func(_ context.Context, data []byte, originalName, contentType string) (string, error) {
			gotData, gotName, gotType = data, originalName, contentType
			return "https://cdn.example.com/public/trip-photos/key.jpg", nil
		},
	}
	h := newRouter(t, nil, nil, up)

	body, contentType := multipartFile(t, "eiffel.jpg", "image/jpeg", []byte("jpegbytes"))
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, 7))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, []byte("jpegbytes"), gotData)
	assert.Equal(t, "eiffel.jpg", gotName)
	assert.Equal(t, "image/jpeg", gotType)
	assert.Contains(t, rec.Body.String(), `"url":"https://cdn.example.com/public/trip-photos/key.jpg"`)
}

func TestUploadFile_requiresToken(t *testing.T) {
	h := newRouter(t, nil, nil, &mockUploader{})

	body, contentType := multipartFile(t, "a.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUploadFile_missingFilePart(t *testing.T) {
	h := newRouter(t, nil, nil, &mockUploader{})

	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", bytes.NewBufferString("not multipart"))
	req.Header.Set("Content-Type", "text/plain")
	req.Header.Set("Authorization", bearerFor(t, 7))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadFile_upstreamFailure(t *testing.T) {
	up := &mockUploader{
		upload: func(context.Context, []byte, string, string) (string, error) {
			return "", fmt.Errorf("storage.Client.Upload: %w: status 404: bucket not found", domain.ErrUpstream)
		},
	}
	h := newRouter(t, nil, nil, up)

	body, contentType := multipartFile(t, "a.jpg", "image/jpeg", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/api/files/upload", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", bearerFor(t, 7))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream_error")
}
