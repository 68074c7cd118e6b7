package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"starwars-catalog/internal/character"
	"starwars-catalog/internal/favorite"
	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lookup[T any] map[int]T

func (l lookup[T]) GetByID(_ context.Context, id int) (*T, error) {
	v, ok := l[id]
	if !ok {
		return nil, errors.NotFoundf("record %d not found", id)
	}
	return &v, nil
}

type stubStore struct {
	favorites map[int]favorite.Favorite
}

func (s *stubStore) Create(_ context.Context, f favorite.Favorite, _ *database.Tx) (*favorite.Favorite, error) {
	f.ID = len(s.favorites) + 1
	s.favorites[f.ID] = f
	return &f, nil
}

func (s *stubStore) GetByID(_ context.Context, id int) (*favorite.Favorite, error) {
	f, ok := s.favorites[id]
	if !ok {
		return nil, errors.NotFoundf("favorite %d not found", id)
	}
	return &f, nil
}

func (s *stubStore) FindByUserAndTarget(_ context.Context, userID int, target favorite.Target) (*favorite.Favorite, error) {
	for _, f := range s.favorites {
		if f.UserID == userID && f.Target == target {
			return &f, nil
		}
	}
	return nil, errors.NotFoundf("no favorite")
}

func (s *stubStore) ListByUser(_ context.Context, userID int) ([]favorite.Favorite, error) {
	favorites := []favorite.Favorite{}
	for id := 1; id <= len(s.favorites); id++ {
		if f, ok := s.favorites[id]; ok && f.UserID == userID {
			favorites = append(favorites, f)
		}
	}
	return favorites, nil
}

func (s *stubStore) ListByTarget(_ context.Context, target favorite.Target) ([]favorite.Favorite, error) {
	favorites := []favorite.Favorite{}
	for id := 1; id <= len(s.favorites); id++ {
		if f, ok := s.favorites[id]; ok && f.Target == target {
			favorites = append(favorites, f)
		}
	}
	return favorites, nil
}

func (s *stubStore) Delete(_ context.Context, id int) error {
	if _, ok := s.favorites[id]; !ok {
		return errors.NotFoundf("favorite %d not found", id)
	}
	delete(s.favorites, id)
	return nil
}

func (s *stubStore) DeleteByUserAndTarget(_ context.Context, userID int, target favorite.Target) error {
	for id, f := range s.favorites {
		if f.UserID == userID && f.Target == target {
			delete(s.favorites, id)
			return nil
		}
	}
	return errors.NotFoundf("no favorite")
}

func newTestMux() *http.ServeMux {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	homeID := 1

	service := favorite.NewService(
		&stubStore{favorites: map[int]favorite.Favorite{}},
		lookup[user.User]{1: {ID: 1, Email: "a@b.com", Password: "hash", IsActive: true}},
		lookup[planet.Planet]{1: {ID: 1, Name: "Tatooine"}},
		lookup[character.Character]{1: {ID: 1, Name: "Luke Skywalker", HomePlanetID: &homeID}},
		logger,
	)
	h := NewFavoriteHandler(service, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/{id}/favorites", h.ListByUser)
	mux.HandleFunc("POST /api/users/{id}/favorites/planets/{planetID}", h.AddPlanet)
	mux.HandleFunc("DELETE /api/users/{id}/favorites/planets/{planetID}", h.RemovePlanet)
	mux.HandleFunc("POST /api/users/{id}/favorites/characters/{characterID}", h.AddCharacter)
	mux.HandleFunc("DELETE /api/users/{id}/favorites/characters/{characterID}", h.RemoveCharacter)
	mux.HandleFunc("GET /api/planets/{id}/favorites", h.ListByPlanet)
	mux.HandleFunc("GET /api/characters/{id}/favorites", h.ListByCharacter)
	mux.HandleFunc("GET /api/favorites/{id}", h.Get)
	mux.HandleFunc("DELETE /api/favorites/{id}", h.Delete)
	return mux
}

func do(mux *http.ServeMux, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func TestAddCharacterFavorite(t *testing.T) {
	mux := newTestMux()

	w := do(mux, http.MethodPost, "/api/users/1/favorites/characters/1")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":1,"user_email":"a@b.com","planet":null,"character":{"id":1,"name":"Luke Skywalker","birth_year":null,"gender":null,"height":null,"skin_color":null,"eye_color":null,"home_planet_id":1}}`, w.Body.String())

	w = do(mux, http.MethodGet, "/api/favorites/1")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(mux, http.MethodGet, "/api/characters/1/favorites")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_email":"a@b.com"`)
}

func TestAddPlanetFavoriteStatusCodes(t *testing.T) {
	mux := newTestMux()

	assert.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/users/1/favorites/planets/1").Code)
	assert.Equal(t, http.StatusConflict, do(mux, http.MethodPost, "/api/users/1/favorites/planets/1").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodPost, "/api/users/1/favorites/planets/5").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodPost, "/api/users/5/favorites/planets/1").Code)
	assert.Equal(t, http.StatusBadRequest, do(mux, http.MethodPost, "/api/users/1/favorites/planets/x").Code)
}

func TestListUserFavorites(t *testing.T) {
	mux := newTestMux()

	w := do(mux, http.MethodGet, "/api/users/1/favorites")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/users/1/favorites/planets/1").Code)

	w = do(mux, http.MethodGet, "/api/users/1/favorites")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"id":1,"user_email":"a@b.com","character":null,"planet":{"id":1,"name":"Tatooine","climate":null,"terrain":null,"population":null}}]`, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/api/users/3/favorites").Code)
}

func TestRemoveFavorites(t *testing.T) {
	mux := newTestMux()

	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/users/1/favorites/planets/1").Code)
	require.Equal(t, http.StatusCreated, do(mux, http.MethodPost, "/api/users/1/favorites/characters/1").Code)

	assert.Equal(t, http.StatusNoContent, do(mux, http.MethodDelete, "/api/users/1/favorites/planets/1").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodDelete, "/api/users/1/favorites/planets/1").Code)
	assert.Equal(t, http.StatusNoContent, do(mux, http.MethodDelete, "/api/favorites/2").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/api/favorites/2").Code)
}
