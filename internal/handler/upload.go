package handler

import (
	"io"
	"net/http"
)

// uploadResponse is the body returned by POST /api/files/upload.
type uploadResponse struct {
	URL string `json:"url"`
}

// UploadFile handles POST /api/files/upload. It reads the "file" part of a
// multipart form and proxies the bytes to the object storage service.
// The overall request size is already capped by the max-body-size middleware.
func (s *Server) UploadFile(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, `multipart form must include a "file" part`)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "cannot read file bytes")
		return
	}

	url, err := s.uploads.Upload(r.Context(), data, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
}
