package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/model"
)

type storeFileRequest struct {
	OriginalName string `json:"original_name" validate:"required"`
	MimeType     string `json:"mime_type" validate:"required"`
	ZoneID       string `json:"zone_id" validate:"required,uuid"`
	// Content is base64 in the JSON body; encoding/json decodes it.
	Content []byte `json:"content" validate:"required"`
}

type checkRequest struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// FileStore handles POST /api/v1/files.
func (h *Handler) FileStore(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no actor"})
		return
	}

	var req storeFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	zoneID, err := uuid.Parse(req.ZoneID)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid zone id"})
		return
	}

	file, err := h.vault.Store(r.Context(), model.StoreFileParams{
		OriginalName: req.OriginalName,
		MimeType:     req.MimeType,
		Plaintext:    req.Content,
		ZoneID:       zoneID,
		OwnerID:      actor.ID,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("file stored", "file_id", file.ID, "zone_id", file.ZoneID, "size_bytes", file.SizeBytes)
	h.writeJSON(w, http.StatusCreated, file)
}

// FileRetrieve handles GET /api/v1/files/{id}?lat=&lng=. On allow the
// plaintext is returned as the response body; on deny the decision is
// returned with 403.
func (h *Handler) FileRetrieve(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no actor"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	claimed, err := coordinateFromQuery(r)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	file, plaintext, decision, err := h.vault.Retrieve(r.Context(), id, actor, claimed)
	if err != nil {
		h.handleError(w, r, err)
		return
	}
	if !decision.Allowed {
		l.Info("file access denied", "file_id", id, "reason", decision.Reason)
		h.writeJSON(w, http.StatusForbidden, decision)
		return
	}

	w.Header().Set("Content-Type", file.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.OriginalName))
	w.Header().Set("Content-Length", strconv.Itoa(len(plaintext)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(plaintext); err != nil {
		l.Error("failed to write file response", "file_id", id, "error", err)
	}
}

// FileList handles GET /api/v1/files. Admin only.
func (h *Handler) FileList(w http.ResponseWriter, r *http.Request) {
	files, err := h.vault.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"files": files})
}

// FileDelete handles DELETE /api/v1/files/{id}. Admin only; cascades the
// audit trail.
func (h *Handler) FileDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no actor"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.vault.Remove(r.Context(), id, actor); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("file deleted", "file_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "file deleted"})
}

// FileCheck handles POST /api/v1/files/{id}/check: a decision without
// content, for audit and reporting tools.
func (h *Handler) FileCheck(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no actor"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	decision, err := h.vault.Check(r.Context(), id, actor, model.Coordinate{Lat: req.Lat, Lng: req.Lng})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, decision)
}

// FileAttempts handles GET /api/v1/files/{id}/attempts. Admin only.
func (h *Handler) FileAttempts(w http.ResponseWriter, r *http.Request) {
	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no actor"})
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	attempts, err := h.vault.Attempts(r.Context(), id, actor)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"attempts": attempts})
}

func coordinateFromQuery(r *http.Request) (model.Coordinate, error) {
	lat, err := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid lat query parameter")
	}
	lng, err := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if err != nil {
		return model.Coordinate{}, fmt.Errorf("invalid lng query parameter")
	}
	return model.Coordinate{Lat: lat, Lng: lng}, nil
}
