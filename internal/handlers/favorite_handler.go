package handlers

import (
	"net/http"

	"toiletBack/internal/services"
)

type FavoriteHandler struct {
	Service *services.FavoriteService
}

// AddFavorite handles POST /toilets/:id/favorite. Saving twice is fine,
// the second call is a no-op.
func (h *FavoriteHandler) AddFavorite(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	if err := h.Service.AddFavorite(r.Context(), claims.UserID, toiletID); err != nil {
		writeError(w, "AddFavorite", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"favorited": true})
}

// RemoveFavorite handles DELETE /toilets/:id/favorite.
func (h *FavoriteHandler) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	if err := h.Service.RemoveFavorite(r.Context(), claims.UserID, toiletID); err != nil {
		writeError(w, "RemoveFavorite", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"favorited": false})
}

// ListFavorites handles GET /me/favorites.
func (h *FavoriteHandler) ListFavorites(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r)
	req := parseSearchRequest(r)

	result, err := h.Service.ListFavorites(r.Context(), claims.UserID, req)
	if err != nil {
		writeError(w, "ListFavorites", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": result.Data,
		"meta": result.Meta,
	})
}
