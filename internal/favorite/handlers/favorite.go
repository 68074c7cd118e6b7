package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"starwars-catalog/internal/favorite"
	"starwars-catalog/internal/shared/request"
	"starwars-catalog/internal/shared/response"
)

type FavoriteHandler struct {
	service *favorite.Service
	logger  *slog.Logger
}

func NewFavoriteHandler(service *favorite.Service, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{service: service, logger: logger}
}

// ListByUser handles GET /api/users/{id}/favorites
func (h *FavoriteHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list_user_favorites", h.service.ListByUser)
}

// ListByPlanet handles GET /api/planets/{id}/favorites
func (h *FavoriteHandler) ListByPlanet(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list_planet_favorites", h.service.ListByPlanet)
}

// ListByCharacter handles GET /api/characters/{id}/favorites
func (h *FavoriteHandler) ListByCharacter(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, "list_character_favorites", h.service.ListByCharacter)
}

func (h *FavoriteHandler) list(w http.ResponseWriter, r *http.Request, name string, load func(context.Context, int) ([]favorite.Response, error)) {
	logger := h.logger.With("handler", name)

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	favorites, err := load(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, favorites)
}

// AddPlanet handles POST /api/users/{id}/favorites/planets/{planetID}
func (h *FavoriteHandler) AddPlanet(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, "add_favorite_planet", "planetID", h.service.AddPlanet)
}

// AddCharacter handles POST /api/users/{id}/favorites/characters/{characterID}
func (h *FavoriteHandler) AddCharacter(w http.ResponseWriter, r *http.Request) {
	h.add(w, r, "add_favorite_character", "characterID", h.service.AddCharacter)
}

func (h *FavoriteHandler) add(w http.ResponseWriter, r *http.Request, name, targetParam string, add func(context.Context, int, int) (favorite.Response, error)) {
	logger := h.logger.With("handler", name)

	userID, targetID, err := pathIDs(r, targetParam)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	fav, err := add(r.Context(), userID, targetID)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, fav)
}

// RemovePlanet handles DELETE /api/users/{id}/favorites/planets/{planetID}
func (h *FavoriteHandler) RemovePlanet(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "remove_favorite_planet", "planetID", h.service.RemovePlanet)
}

// RemoveCharacter handles DELETE /api/users/{id}/favorites/characters/{characterID}
func (h *FavoriteHandler) RemoveCharacter(w http.ResponseWriter, r *http.Request) {
	h.remove(w, r, "remove_favorite_character", "characterID", h.service.RemoveCharacter)
}

func (h *FavoriteHandler) remove(w http.ResponseWriter, r *http.Request, name, targetParam string, remove func(context.Context, int, int) error) {
	logger := h.logger.With("handler", name)

	userID, targetID, err := pathIDs(r, targetParam)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := remove(r.Context(), userID, targetID); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}

// Get handles GET /api/favorites/{id}
func (h *FavoriteHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_favorite")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	fav, err := h.service.Get(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, fav)
}

// Delete handles DELETE /api/favorites/{id}
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "delete_favorite")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	if err := h.service.Remove(r.Context(), id); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusNoContent, nil)
}

func pathIDs(r *http.Request, targetParam string) (int, int, error) {
	userID, err := request.PathID(r, "id")
	if err != nil {
		return 0, 0, err
	}

	targetID, err := request.PathID(r, targetParam)
	if err != nil {
		return 0, 0, err
	}

	return userID, targetID, nil
}
