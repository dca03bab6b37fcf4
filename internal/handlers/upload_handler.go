package handlers

import (
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"toiletBack/internal/services"
	"toiletBack/utils"
)

const maxPhotoSize = 10 << 20 // 10 MB

type UploadHandler struct {
	Storage     *utils.Storage
	HostService *services.HostService
}

// UploadToiletPhoto handles POST /uploads/toilet-photo and
// POST /host/toilets/:id/photos: a multipart image is pushed to object
// storage and attached to the listing. The generic upload route carries
// the listing id as a form value instead of a path segment.
func (h *UploadHandler) UploadToiletPhoto(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r)

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		writeBadRequest(w, "invalid multipart form")
		return
	}

	toiletID, ok := pathInt(r, "id")
	if !ok {
		toiletID, ok = formInt(r, "toilet_id")
	}
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		writeBadRequest(w, "photo file is required")
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	contentType := ""
	switch ext {
	case ".jpg", ".jpeg":
		contentType = "image/jpeg"
	case ".png":
		contentType = "image/png"
	case ".webp":
		contentType = "image/webp"
	default:
		writeBadRequest(w, "unsupported image format")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxPhotoSize+1))
	if err != nil {
		writeError(w, "UploadToiletPhoto", err)
		return
	}
	if len(data) > maxPhotoSize {
		writeBadRequest(w, "photo too large")
		return
	}

	fileName := uuid.New().String() + ext
	url, err := h.Storage.UploadFile(data, fileName, "toilets", contentType)
	if err != nil {
		writeError(w, "UploadToiletPhoto", err)
		return
	}

	isCover := false
	if v := qBool(r, "is_cover"); v != nil {
		isCover = *v
	} else if raw := strings.ToLower(r.FormValue("is_cover")); raw != "" {
		isCover = raw == "1" || raw == "true"
	}

	photo, err := h.HostService.AddPhoto(r.Context(), *claims, toiletID, url, isCover)
	if err != nil {
		writeError(w, "UploadToiletPhoto", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"data": photo})
}
