package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrov/geovault/internal/model"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}

// handleError maps domain errors to HTTP statuses. Denials never reach this
// path; they are encoded as decision payloads by the handlers.
func (h *Handler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidCoordinate),
		errors.Is(err, model.ErrInvalidZoneSpec),
		errors.Is(err, model.ErrInvalidFile):
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, model.ErrNotFound):
		h.writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, model.ErrConflict):
		h.writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, model.ErrUnauthorized):
		h.writeJSON(w, http.StatusForbidden, map[string]string{"error": "forbidden"})
	case errors.Is(err, model.ErrDecryptionFailed):
		h.log(r).Error("request failed with data-integrity fault")
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to decrypt file"})
	default:
		h.log(r).Error("request failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}
