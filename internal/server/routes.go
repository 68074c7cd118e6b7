package server

import (
	"log/slog"
	"net/http"

	characterHandlers "starwars-catalog/internal/character/handlers"
	favoriteHandlers "starwars-catalog/internal/favorite/handlers"
	planetHandlers "starwars-catalog/internal/planet/handlers"
	serverHandlers "starwars-catalog/internal/server/handlers"
	userHandlers "starwars-catalog/internal/user/handlers"
)

type Routes struct {
	health     *serverHandlers.HealthHandler
	users      *userHandlers.UserHandler
	planets    *planetHandlers.PlanetHandler
	characters *characterHandlers.CharacterHandler
	favorites  *favoriteHandlers.FavoriteHandler
	logger     *slog.Logger
}

func NewRoutes(
	health *serverHandlers.HealthHandler,
	users *userHandlers.UserHandler,
	planets *planetHandlers.PlanetHandler,
	characters *characterHandlers.CharacterHandler,
	favorites *favoriteHandlers.FavoriteHandler,
	logger *slog.Logger,
) *Routes {
	return &Routes{
		health:     health,
		users:      users,
		planets:    planets,
		characters: characters,
		favorites:  favorites,
		logger:     logger,
	}
}

func (r *Routes) Setup() *http.ServeMux {
	logger := r.logger.With("component", "routes", "operation", "setup")
	logger.Debug("Setting up application routes")

	mux := http.NewServeMux()

	mux.Handle("GET /api/server/health", r.health)

	mux.HandleFunc("GET /api/users", r.users.List)
	mux.HandleFunc("POST /api/users", r.users.Create)
	mux.HandleFunc("GET /api/users/{id}", r.users.Get)
	mux.HandleFunc("PUT /api/users/{id}/active", r.users.SetActive)
	mux.HandleFunc("DELETE /api/users/{id}", r.users.Delete)

	mux.HandleFunc("GET /api/users/{id}/favorites", r.favorites.ListByUser)
	mux.HandleFunc("POST /api/users/{id}/favorites/planets/{planetID}", r.favorites.AddPlanet)
	mux.HandleFunc("DELETE /api/users/{id}/favorites/planets/{planetID}", r.favorites.RemovePlanet)
	mux.HandleFunc("POST /api/users/{id}/favorites/characters/{characterID}", r.favorites.AddCharacter)
	mux.HandleFunc("DELETE /api/users/{id}/favorites/characters/{characterID}", r.favorites.RemoveCharacter)

	mux.HandleFunc("GET /api/planets", r.planets.List)
	mux.HandleFunc("POST /api/planets", r.planets.Create)
	mux.HandleFunc("GET /api/planets/{id}", r.planets.Get)
	mux.HandleFunc("PUT /api/planets/{id}", r.planets.Update)
	mux.HandleFunc("DELETE /api/planets/{id}", r.planets.Delete)
	mux.HandleFunc("GET /api/planets/{id}/residents", r.characters.Residents)
	mux.HandleFunc("GET /api/planets/{id}/favorites", r.favorites.ListByPlanet)

	mux.HandleFunc("GET /api/characters", r.characters.List)
	mux.HandleFunc("POST /api/characters", r.characters.Create)
	mux.HandleFunc("GET /api/characters/{id}", r.characters.Get)
	mux.HandleFunc("PUT /api/characters/{id}", r.characters.Update)
	mux.HandleFunc("DELETE /api/characters/{id}", r.characters.Delete)
	mux.HandleFunc("GET /api/characters/{id}/favorites", r.favorites.ListByCharacter)

	mux.HandleFunc("GET /api/favorites/{id}", r.favorites.Get)
	mux.HandleFunc("DELETE /api/favorites/{id}", r.favorites.Delete)

	logger.Info("Routes configured successfully",
		"resources", []string{"/api/users", "/api/planets", "/api/characters", "/api/favorites"},
	)

	return mux
}
