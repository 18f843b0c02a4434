package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Nuga25/interneefy-backend/errs"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, kind errs.Kind, message string) {
	respondJSON(w, status, map[string]string{
		"code":  string(kind),
		"error": message,
	})
}

func respondForbidden(w http.ResponseWriter, e *errs.Error) {
	respondJSON(w, http.StatusForbidden, map[string]string{
		"code":   string(e.Kind),
		"reason": string(e.Reason),
		"error":  e.Message,
	})
}

// respondAppError maps a taxonomy error to its status. Internal details of
// anything outside the taxonomy are logged, never returned.
func respondAppError(w http.ResponseWriter, err error) {
	var e *errs.Error
	if !errors.As(err, &e) {
		log.Printf("handler: unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, errs.KindPersistence, "Internal server error.")
		return
	}

	if e.Kind == errs.KindForbidden {
		respondForbidden(w, e)
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case errs.KindUnauthenticated:
		status = http.StatusUnauthorized
	case errs.KindNotYourIntern:
		status = http.StatusForbidden
	case errs.KindValidation, errs.KindTooEarly, errs.KindNoValidFields:
		status = http.StatusBadRequest
	case errs.KindNotFound:
		status = http.StatusNotFound
	case errs.KindDuplicateEmail, errs.KindConflict:
		status = http.StatusConflict
	case errs.KindPersistence:
		log.Printf("handler: persistence error: %v", e.Message)
	}

	respondError(w, status, e.Kind, e.Message)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errs.New(errs.KindValidation, "Invalid request body.")
	}
	return nil
}
