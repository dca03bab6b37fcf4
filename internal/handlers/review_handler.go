package handlers

import (
	"encoding/json"
	"net/http"

	"toiletBack/internal/formatter"
	"toiletBack/internal/models"
	"toiletBack/internal/services"
)

type ReviewHandler struct {
	Service *services.ReviewService
}

// SubmitReview handles POST /toilets/:id/reviews: one review per user per
// listing, a repeat call replaces the previous one.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)
	if claims == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "authentication required"})
		return
	}

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	review, err := h.Service.SubmitReview(r.Context(), claims.UserID, id, req)
	if err != nil {
		writeError(w, "SubmitReview", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": formatter.ReviewMap(review.Row()),
	})
}

// UpdateMyReview handles PUT /toilets/:id/reviews/me. Unlike SubmitReview
// it answers 404 when the caller has no review yet.
func (h *ReviewHandler) UpdateMyReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	var req models.ReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	review, err := h.Service.UpdateMyReview(r.Context(), claims.UserID, id, req)
	if err != nil {
		writeError(w, "UpdateMyReview", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": formatter.ReviewMap(review.Row()),
	})
}

// DeleteMyReview handles DELETE /toilets/:id/reviews/me.
func (h *ReviewHandler) DeleteMyReview(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	if err := h.Service.DeleteMyReview(r.Context(), claims.UserID, id); err != nil {
		writeError(w, "DeleteMyReview", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
