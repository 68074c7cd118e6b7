package seed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"starwars-catalog/internal/character"
	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type planetStore struct {
	byName map[string]planet.Planet
}

func (s *planetStore) GetByName(_ context.Context, name string, tx *database.Tx) (*planet.Planet, error) {
	if tx == nil {
		return nil, errors.Validation("expected a transaction")
	}
	p, ok := s.byName[name]
	if !ok {
		return nil, errors.NotFoundf("planet %q not found", name)
	}
	return &p, nil
}

func (s *planetStore) Create(_ context.Context, p planet.Planet, _ *database.Tx) (*planet.Planet, error) {
	p.ID = len(s.byName) + 1
	s.byName[p.Name] = p
	return &p, nil
}

type characterStore struct {
	byName map[string]character.Character
}

func (s *characterStore) GetByName(_ context.Context, name string, _ *database.Tx) (*character.Character, error) {
	c, ok := s.byName[name]
	if !ok {
		return nil, errors.NotFoundf("character %q not found", name)
	}
	return &c, nil
}

func (s *characterStore) Create(_ context.Context, c character.Character, _ *database.Tx) (*character.Character, error) {
	c.ID = len(s.byName) + 1
	s.byName[c.Name] = c
	return &c, nil
}

func newTestSeeder(t *testing.T) (*Seeder, sqlmock.Sqlmock, *planetStore, *characterStore) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	planets := &planetStore{byName: map[string]planet.Planet{}}
	characters := &characterStore{byName: map[string]character.Character{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewSeeder(database.New(sqlDB), planets, characters, logger), mock, planets, characters
}

func TestBundledCatalogDecodes(t *testing.T) {
	catalog, err := Bundled()
	require.NoError(t, err)

	assert.NotEmpty(t, catalog.Planets)
	assert.NotEmpty(t, catalog.Characters)
	assert.Equal(t, "Tatooine", catalog.Planets[0].Name)
}

func TestRunLinksHomePlanets(t *testing.T) {
	seeder, mock, planets, characters := newTestSeeder(t)
	mock.ExpectBegin()
	mock.ExpectCommit()

	catalog, err := Bundled()
	require.NoError(t, err)

	result, err := seeder.Run(context.Background(), catalog)
	require.NoError(t, err)

	assert.Equal(t, len(catalog.Planets), result.PlanetsCreated)
	assert.Equal(t, len(catalog.Characters), result.CharactersCreated)

	luke := characters.byName["Luke Skywalker"]
	require.NotNil(t, luke.HomePlanetID)
	assert.Equal(t, planets.byName["Tatooine"].ID, *luke.HomePlanetID)
	assert.Nil(t, characters.byName["Yoda"].HomePlanetID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunSkipsExistingRecords(t *testing.T) {
	seeder, mock, planets, characters := newTestSeeder(t)
	planets.byName["Tatooine"] = planet.Planet{ID: 1, Name: "Tatooine"}
	characters.byName["Luke Skywalker"] = character.Character{ID: 1, Name: "Luke Skywalker"}

	mock.ExpectBegin()
	mock.ExpectCommit()

	tatooine := "Tatooine"
	result, err := seeder.Run(context.Background(), Catalog{
		Planets: []planet.Request{{Name: "Tatooine"}},
		Characters: []characterEntry{
			{Name: "Luke Skywalker", HomePlanet: &tatooine},
			{Name: "Anakin Skywalker", HomePlanet: &tatooine},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, Result{PlanetsCreated: 0, CharactersCreated: 1}, result)
	assert.Equal(t, 1, *characters.byName["Anakin Skywalker"].HomePlanetID)
}

func TestRunRollsBackOnUnknownPlanet(t *testing.T) {
	seeder, mock, _, _ := newTestSeeder(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	hoth := "Hoth"
	_, err := seeder.Run(context.Background(), Catalog{
		Characters: []characterEntry{{Name: "Wampa", HomePlanet: &hoth}},
	})
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
