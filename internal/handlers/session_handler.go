package handlers

import (
	"encoding/json"
	"net/http"

	"toiletBack/internal/formatter"
	"toiletBack/internal/models"
	"toiletBack/internal/services"
)

type SessionHandler struct {
	Service *services.SessionService
}

// StartSession handles POST /toilets/:id/sessions/start. The body is
// optional; an empty one checks in with the default method.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	claims := identityFromContext(r)

	var req models.SessionStartRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
	}

	session, err := h.Service.StartSession(r.Context(), claims.UserID, toiletID, req)
	if err != nil {
		writeError(w, "StartSession", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"data": formatter.SessionMap(session.Row(), formatter.Options{All: true}),
	})
}

// EndSession handles POST /toilets/:id/sessions/:session_id/end.
func (h *SessionHandler) EndSession(w http.ResponseWriter, r *http.Request) {
	toiletID, ok := pathInt(r, "id")
	if !ok {
		writeBadRequest(w, "invalid toilet id")
		return
	}
	sessionID, ok := pathInt(r, "session_id")
	if !ok {
		writeBadRequest(w, "invalid session id")
		return
	}
	claims := identityFromContext(r)

	var req models.SessionEndRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeBadRequest(w, "invalid request body")
			return
		}
	}

	session, err := h.Service.EndSession(r.Context(), *claims, toiletID, sessionID, req)
	if err != nil {
		writeError(w, "EndSession", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"data": formatter.SessionMap(session.Row(), formatter.Options{All: true}),
	})
}

// ListMySessions handles GET /me/sessions.
func (h *SessionHandler) ListMySessions(w http.ResponseWriter, r *http.Request) {
	claims := identityFromContext(r)

	sessions, meta, err := h.Service.ListMySessions(r.Context(), claims.UserID,
		intValue(qInt(r, "page")), intValue(qInt(r, "per_page")))
	if err != nil {
		writeError(w, "ListMySessions", err)
		return
	}

	opts := formatter.Options{Include: []string{"id", "name", "coords", "labels", "cover_photo"}}
	data := make([]interface{}, 0, len(sessions))
	for i := range sessions {
		data = append(data, formatter.SessionMap(sessions[i].Row(), opts))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"data": data, "meta": meta})
}
