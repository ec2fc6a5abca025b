// Package handlers implements the HTTP surface: the public menu API,
// the admin CRUD API, login/logout, and image upload plumbing. Handlers
// are thin — every data operation goes through the menu façade.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"menuboard/internal/menu"
	"menuboard/internal/schema"
	"menuboard/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func readJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

// readPayload decodes a request body into the open map the schema
// validation layer consumes.
func readPayload(r *http.Request) (map[string]any, error) {
	var payload map[string]any
	if err := readJSON(r, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// urlID parses the {id} URL parameter.
func urlID(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "id"))
}

// writeOperationError maps façade errors onto HTTP statuses without
// transforming them: malformed payloads are 422, missing ids 404,
// unconfigured storage 503, and anything else an opaque 500.
func writeOperationError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *schema.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, menu.ErrStorageUnavailable):
		writeError(w, http.StatusServiceUnavailable, "object storage is not configured")
	default:
		slog.Error("operation failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
