package handlers

import (
	"log/slog"
	"net/http"

	"starwars-catalog/internal/shared/request"
	"starwars-catalog/internal/shared/response"
	"starwars-catalog/internal/user"
)

type UserHandler struct {
	service *user.Service
	logger  *slog.Logger
}

func NewUserHandler(service *user.Service, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// List handles GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "list_users")

	users, err := h.service.List(r.Context())
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	body := make([]user.Response, 0, len(users))
	for _, u := range users {
		body = append(body, u.Serialize())
	}

	response.Success(w, http.StatusOK, body)
}

// Get handles GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "get_user")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	u, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, u.Serialize())
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "create_user")

	var req user.CreateRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	u, err := h.service.Create(r.Context(), req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusCreated, u.Serialize())
}

// SetActive handles PUT /api/users/{id}/active
func (h *UserHandler) SetActive(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "set_user_active")

	id, err := request.PathID(r, "id")
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	var req user.ActiveRequest
	if err := request.DecodeJSON(w, r, &req); err != nil {
		response.Error(w, r, logger, err)
		return
	}

	u, err := h.service.SetActive(r.Context(), id, req)
	if err != nil {
		response.Error(w, r, logger, err)
		return
	}

	response.Success(w, http.StatusOK, u.Serialize())
}

// Delete handles DELETE /api/users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With("handler", "delete_user")

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
