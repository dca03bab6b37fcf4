package handlers

import (
	"encoding/json"
	"net/http"

	"toiletBack/internal/models"
	"toiletBack/internal/services"
)

type HostHandler struct {
	Service *services.HostService
}

// Me handles GET /host/me: the profile plus per-status listing counts.
func (h *HostHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r)

	user, counts, err := h.Service.Me(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, "HostMe", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": user,
		"meta": map[string]interface{}{"toilet_counts": counts},
	})
}

// GetOwnToilet handles GET /host/toilets/:id.
func (h *HostHandler) GetOwnToilet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	toilet, err := h.Service.GetOwnToilet(r.Context(), *claims, id, langParam(r))
	if err != nil {
		writeError(w, "GetOwnToilet", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": toilet})
}

// ListOwnToilets handles GET /host/toilets.
func (h *HostHandler) ListOwnToilets(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r)

	result, err := h.Service.ListOwnToilets(r.Context(), claims.UserID,
		intValue(qInt(r, "page")), intValue(qInt(r, "per_page")))
	if err != nil {
		writeError(w, "ListOwnToilets", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result.Data,
		"meta": result.Meta,
	})
}

// CreateToilet handles POST /host/toilets.
func (h *HostHandler) CreateToilet(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r)

	var req models.ToiletMutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	toilet, err := h.Service.CreateToilet(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, "CreateToilet", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"data": toilet})
}

// UpdateToilet handles PUT /host/toilets/:id.
func (h *HostHandler) UpdateToilet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	var req models.ToiletMutateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	toilet, err := h.Service.UpdateToilet(r.Context(), *claims, id, req)
	if err != nil {
		writeError(w, "UpdateToilet", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": toilet})
}

// UpdateStatus handles POST /host/toilets/:id/status.
func (h *HostHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	toilet, err := h.Service.UpdateStatus(r.Context(), *claims, id, req.Status)
	if err != nil {
		writeError(w, "UpdateStatus", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": toilet})
}

// DeleteToilet handles DELETE /host/toilets/:id.
func (h *HostHandler) DeleteToilet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	if err := h.Service.DeleteToilet(r.Context(), *claims, id); err != nil {
		writeError(w, "DeleteToilet", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeletePhoto handles DELETE /host/toilets/:id/photos/:photo_id.
func (h *HostHandler) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	photoID, ok := pathInt(r, "photo_id")
	if !ok {
		writeBadRequest(w, "invalid photo id")
		return
	}
	claims := identityFromContext(r)

	if err := h.Service.RemovePhoto(r.Context(), *claims, toiletID, photoID); err != nil {
		writeError(w, "DeletePhoto", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ReplaceOpenHours handles PUT /host/toilets/:id/open-hours.
func (h *HostHandler) ReplaceOpenHours(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	var req struct {
		OpenHours []models.ToiletOpenHour `json:"open_hours"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := h.Service.ReplaceOpenHours(r.Context(), *claims, id, req.OpenHours); err != nil {
		writeError(w, "ReplaceOpenHours", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}
