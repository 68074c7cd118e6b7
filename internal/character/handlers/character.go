package handlers

import (
	"log/slog"
	"net/http"

	"starwars-catalog/internal/character"
	"starwars-catalog/internal/shared/request"
	"starwars-catalog/internal/shared/response"
)

type CharacterHandler struct {
	service *character.Service
	logger  *slog.Logger
}

func NewCharacterHandler(service *character.Service, logger *slog.Logger) *CharacterHandler {
	return &CharacterHandler{service: service, logger: logger}
}

// List handles GET /api/characters
func (h *CharacterHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_characters")

	characters, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, serializeAll(characters))
}

// Residents handles GET /api/planets/{id}/residents
func (h *CharacterHandler) Residents(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_residents")

	planetID, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	residents, err := h.service.ListResidents(r.Context(), planetID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, serializeAll(residents))
}

// Get handles GET /api/characters/{id}
func (h *CharacterHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_character")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	c, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, c.Serialize())
}

// Create handles POST /api/characters
func (h *CharacterHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "create_character")

	var req character.Request
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, c.Serialize())
}

// Update handles PUT /api/characters/{id}
func (h *CharacterHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "update_character")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req character.Request
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	c, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, c.Serialize())
}

// Delete handles DELETE /api/characters/{id}
func (h *CharacterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "delete_character")

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

func serializeAll(characters []character.Character) []character.Response {
	body := make([]character.Response, 0, len(characters))
	for _, c := range characters {
		body = append(body, c.Serialize())
	}
	return body
}
