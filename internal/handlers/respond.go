package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"os"

	"toiletBack/internal/models"
)

var errorLog = log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

// SetErrorLog points the handlers at the application's error logger.
func SetErrorLog(l *log.Logger) {
	errorLog = l
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errorLog.Printf("writeJSON error: %v", err)
	}
}

// writeError maps domain errors onto HTTP statuses. Anything unmapped is
// a 500, logged with the handler's label.
func writeError(w http.ResponseWriter, label string, err error) {
	var v *models.ValidationError
	if errors.As(err, &v) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "validation failed",
			"errors":  v.Fields,
		})
		return
	}

	switch {
	case errors.Is(err, models.ErrToiletNotFound),
		errors.Is(err, models.ErrWilayaNotFound),
		errors.Is(err, models.ErrReviewNotFound),
		errors.Is(err, models.ErrReportNotFound),
		errors.Is(err, models.ErrSessionNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrPhotoNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"message": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		writeJSON(w, http.StatusForbidden, map[string]string{"message": "forbidden"})
	case errors.Is(err, models.ErrSessionEnded):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"message": err.Error()})
	case errors.Is(err, models.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
	case errors.Is(err, models.ErrDuplicateEmail):
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"message": "validation failed",
			"errors":  map[string][]string{"email": {"is already taken"}},
		})
	default:
		errorLog.Printf("%s error: %v", label, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "internal server error"})
	}
}

func writeBadRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"message": msg})
}
