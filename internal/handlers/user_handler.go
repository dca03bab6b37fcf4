package handlers

import (
	"encoding/json"
	"net/http"

	"toiletBack/internal/models"
	"toiletBack/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

// SignUp handles POST /auth/register.
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	resp, err := h.Service.SignUp(r.Context(), req)
	if err != nil {
		writeError(w, "SignUp", err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

// SignIn handles POST /auth/login.
func (h *UserHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	resp, err := h.Service.SignIn(r.Context(), req)
	if err != nil {
		writeError(w, "SignIn", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Refresh handles POST /auth/refresh.
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeBadRequest(w, "refresh_token is required")
		return
	}

	resp, err := h.Service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeError(w, "Refresh", err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Me handles GET /auth/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r)

	user, err := h.Service.Me(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": user})
}
