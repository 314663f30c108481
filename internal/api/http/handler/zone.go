package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mpetrov/geovault/internal/model"
)

type createZoneRequest struct {
	Name         string  `json:"name" validate:"required"`
	Lat          float64 `json:"lat" validate:"latitude"`
	Lng          float64 `json:"lng" validate:"longitude"`
	RadiusMeters float64 `json:"radius_meters" validate:"required,gt=0"`
	Description  string  `json:"description"`
}

// ZoneCreate handles POST /api/v1/zones. Admin only.
func (h *Handler) ZoneCreate(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	actor, ok := model.ActorFromContext(r.Context())
	if !ok {
		h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "no actor"})
		return
	}

	var req createZoneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	zone, err := h.zones.Create(r.Context(), model.CreateZoneParams{
		Name:         req.Name,
		Center:       model.Coordinate{Lat: req.Lat, Lng: req.Lng},
		RadiusMeters: req.RadiusMeters,
		Description:  req.Description,
		CreatorID:    actor.ID,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone created", "zone_id", zone.ID, "radius_meters", zone.RadiusMeters)
	h.writeJSON(w, http.StatusCreated, zone)
}

// ZoneList handles GET /api/v1/zones. Admin only.
func (h *Handler) ZoneList(w http.ResponseWriter, r *http.Request) {
	zones, err := h.zones.List(r.Context())
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"zones": zones})
}

// ZoneGet handles GET /api/v1/zones/{id}. Admin only.
func (h *Handler) ZoneGet(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	zone, err := h.zones.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	h.writeJSON(w, http.StatusOK, zone)
}

// ZoneDelete handles DELETE /api/v1/zones/{id}. Admin only; 409 while files
// still reference the zone.
func (h *Handler) ZoneDelete(w http.ResponseWriter, r *http.Request) {
	l := h.log(r)

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	if err := h.zones.Delete(r.Context(), id); err != nil {
		h.handleError(w, r, err)
		return
	}

	l.Info("zone deleted", "zone_id", id)
	h.writeJSON(w, http.StatusOK, map[string]string{"message": "zone deleted"})
}
