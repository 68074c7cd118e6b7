package favorite

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"starwars-catalog/internal/character"
	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userMap map[int]user.User

func (m userMap) GetByID(_ context.Context, id int) (*user.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, errors.NotFoundf("user %d not found", id)
	}
	return &u, nil
}

type planetMap map[int]planet.Planet

func (m planetMap) GetByID(_ context.Context, id int) (*planet.Planet, error) {
	p, ok := m[id]
	if !ok {
		return nil, errors.NotFoundf("planet %d not found", id)
	}
	return &p, nil
}

type characterMap map[int]character.Character

func (m characterMap) GetByID(_ context.Context, id int) (*character.Character, error) {
	c, ok := m[id]
	if !ok {
		return nil, errors.NotFoundf("character %d not found", id)
	}
	return &c, nil
}

type memoryStore struct {
	favorites []Favorite
	nextID    int
}

func (m *memoryStore) Create(_ context.Context, f Favorite, _ *database.Tx) (*Favorite, error) {
	m.nextID++
	f.ID = m.nextID
	m.favorites = append(m.favorites, f)
	return &f, nil
}

func (m *memoryStore) GetByID(_ context.Context, id int) (*Favorite, error) {
	for _, f := range m.favorites {
		if f.ID == id {
			return &f, nil
		}
	}
	return nil, errors.NotFoundf("favorite %d not found", id)
}

func (m *memoryStore) FindByUserAndTarget(_ context.Context, userID int, target Target) (*Favorite, error) {
	for _, f := range m.favorites {
		if f.UserID == userID && f.Target == target {
			return &f, nil
		}
	}
	return nil, errors.NotFoundf("no favorite")
}

func (m *memoryStore) ListByUser(_ context.Context, userID int) ([]Favorite, error) {
	favorites := []Favorite{}
	for _, f := range m.favorites {
		if f.UserID == userID {
			favorites = append(favorites, f)
		}
	}
	return favorites, nil
}

func (m *memoryStore) ListByTarget(_ context.Context, target Target) ([]Favorite, error) {
	favorites := []Favorite{}
	for _, f := range m.favorites {
		if f.Target == target {
			favorites = append(favorites, f)
		}
	}
	return favorites, nil
}

func (m *memoryStore) Delete(_ context.Context, id int) error {
	for i, f := range m.favorites {
		if f.ID == id {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("favorite %d not found", id)
}

func (m *memoryStore) DeleteByUserAndTarget(_ context.Context, userID int, target Target) error {
	for i, f := range m.favorites {
		if f.UserID == userID && f.Target == target {
			m.favorites = append(m.favorites[:i], m.favorites[i+1:]...)
			return nil
		}
	}
	return errors.NotFoundf("no favorite")
}

type fixture struct {
	service *Service
	store   *memoryStore
	users   userMap
}

func newFixture() fixture {
	store := &memoryStore{}
	users := userMap{1: *testUser, 2: {ID: 2, Email: "leia@alderaan.org", IsActive: true}}
	planets := planetMap{1: *tatooine}
	characters := characterMap{1: *lukeModel}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return fixture{
		service: NewService(store, users, planets, characters, logger),
		store:   store,
		users:   users,
	}
}

func TestServiceAddCharacter(t *testing.T) {
	fx := newFixture()

	resp, err := fx.service.AddCharacter(context.Background(), 1, 1)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.ID)
	assert.Equal(t, "a@b.com", resp.UserEmail)
	assert.Nil(t, resp.Planet)
	require.NotNil(t, resp.Character)
	assert.Equal(t, "Luke Skywalker", resp.Character.Name)
}

func TestServiceAddPlanetTwiceIsConflict(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	_, err := fx.service.AddPlanet(ctx, 1, 1)
	require.NoError(t, err)

	_, err = fx.service.AddPlanet(ctx, 1, 1)
	assert.Equal(t, errors.ErrorTypeConflict, errors.GetType(err))

	_, err = fx.service.AddPlanet(ctx, 2, 1)
	assert.NoError(t, err)
}

func TestServiceAddMissingReferences(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	_, err := fx.service.AddPlanet(ctx, 9, 1)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))

	_, err = fx.service.AddPlanet(ctx, 1, 9)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))

	_, err = fx.service.AddCharacter(ctx, 1, 9)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))

	_, err = fx.service.AddCharacter(ctx, 1, 0)
	assert.Equal(t, errors.ErrorTypeValidation, errors.GetType(err))

	assert.Empty(t, fx.store.favorites)
}

func TestServiceSerializeAfterUserDeletedFails(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	created, err := fx.service.AddPlanet(ctx, 1, 1)
	require.NoError(t, err)

	delete(fx.users, 1)

	_, err = fx.service.Get(ctx, created.ID)
	require.Error(t, err)
	assert.Equal(t, errors.ErrorTypeIntegrity, errors.GetType(err))
}

func TestServiceSerializeWithoutTarget(t *testing.T) {
	resp, err := newFixture().service.Serialize(context.Background(), Favorite{ID: 8, UserID: 1})
	require.NoError(t, err)
	assert.Nil(t, resp.Planet)
	assert.Nil(t, resp.Character)
}

func TestServiceListings(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	_, err := fx.service.AddPlanet(ctx, 1, 1)
	require.NoError(t, err)
	_, err = fx.service.AddCharacter(ctx, 1, 1)
	require.NoError(t, err)
	_, err = fx.service.AddCharacter(ctx, 2, 1)
	require.NoError(t, err)

	mine, err := fx.service.ListByUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	byPlanet, err := fx.service.ListByPlanet(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byPlanet, 1)

	byCharacter, err := fx.service.ListByCharacter(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byCharacter, 2)

	_, err = fx.service.ListByUser(ctx, 9)
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(err))
}

func TestServiceRemove(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()

	planetFav, err := fx.service.AddPlanet(ctx, 1, 1)
	require.NoError(t, err)
	_, err = fx.service.AddCharacter(ctx, 1, 1)
	require.NoError(t, err)

	require.NoError(t, fx.service.RemoveCharacter(ctx, 1, 1))
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(fx.service.RemoveCharacter(ctx, 1, 1)))

	require.NoError(t, fx.service.Remove(ctx, planetFav.ID))
	assert.Equal(t, errors.ErrorTypeNotFound, errors.GetType(fx.service.RemovePlanet(ctx, 1, 1)))
	assert.Empty(t, fx.store.favorites)
}
