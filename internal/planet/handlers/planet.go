package handlers

import (
	"log/slog"
	"net/http"

	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/request"
	"starwars-catalog/internal/shared/response"
)

type PlanetHandler struct {
	service *planet.Service
	logger  *slog.Logger
}

func NewPlanetHandler(service *planet.Service, logger *slog.Logger) *PlanetHandler {
	return &PlanetHandler{service: service, logger: logger}
}

// List handles GET /api/planets
func (h *PlanetHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_planets")

	planets, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	body := make([]planet.Response, 0, len(planets))
	for _, p := range planets {
		body = append(body, p.Serialize())
	}

	response.Success(w, http.StatusOK, body)
}

// Get handles GET /api/planets/{id}
func (h *PlanetHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_planet")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, p.Serialize())
}

// Create handles POST /api/planets
func (h *PlanetHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "create_planet")

	var req planet.Request
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, p.Serialize())
}

// Update handles PUT /api/planets/{id}
func (h *PlanetHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "update_planet")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req planet.Request
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	p, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, p.Serialize())
}

// Delete handles DELETE /api/planets/{id}
func (h *PlanetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "delete_planet")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}
