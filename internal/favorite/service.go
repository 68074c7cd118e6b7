package favorite

import (
	"context"
	"log/slog"

	"starwars-catalog/internal/character"
	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/user"
)

type UserLookup interface {
	GetByID(ctx context.Context, id int) (*user.User, error)
}

type PlanetLookup interface {
	GetByID(ctx context.Context, id int) (*planet.Planet, error)
}

type CharacterLookup interface {
	GetByID(ctx context.Context, id int) (*character.Character, error)
}

type Service struct {
	repo       Store
	users      UserLookup
	planets    PlanetLookup
	characters CharacterLookup
	logger     *slog.Logger
}

func NewService(repo Store, users UserLookup, planets PlanetLookup, characters CharacterLookup, logger *slog.Logger) *Service {
	logger.Debug("Initializing favorite service")

	return &Service{
		repo:       repo,
		users:      users,
		planets:    planets,
		characters: characters,
		logger:     logger,
	}
}

// AddPlanet bookmarks a planet for a user and returns the serialized favorite
func (s *Service) AddPlanet(ctx context.Context, userID, planetID int) (Response, error) {
	f, err := NewPlanetFavorite(userID, planetID)
	if err != nil {
		return Response{}, err
	}
	return s.add(ctx, f)
}

// AddCharacter bookmarks a character for a user and returns the serialized favorite
func (s *Service) AddCharacter(ctx context.Context, userID, characterID int) (Response, error) {
	f, err := NewCharacterFavorite(userID, characterID)
	if err != nil {
		return Response{}, err
	}
	return s.add(ctx, f)
}

func (s *Service) add(ctx context.Context, f Favorite) (Response, error) {
	logger := s.logger.With(
		"component", "favorite_service",
		"operation", "add",
		"user_id", f.UserID,
		"target_kind", f.Target.Kind,
		"target_id", f.Target.ID,
	)

	detail, err := s.resolve(ctx, f)
	if err != nil {
		logger.Debug("Favorite references do not resolve", "error", err)
		return Response{}, err
	}

	_, err = s.repo.FindByUserAndTarget(ctx, f.UserID, f.Target)
	switch {
	case err == nil:
		return Response{}, errors.Conflictf("user %d already has %s %d as a favorite", f.UserID, f.Target.Kind, f.Target.ID)
	case !errors.Is(err, errors.ErrorTypeNotFound):
		return Response{}, err
	}

	created, err := s.repo.Create(ctx, f, nil)
	if err != nil {
		return Response{}, err
	}
	detail.Favorite = *created

	logger.Info("Favorite added", "favorite_id", created.ID)
	return detail.Serialize()
}

// resolve loads the records a new favorite points at; a missing one is not found
func (s *Service) resolve(ctx context.Context, f Favorite) (Detail, error) {
	detail := Detail{Favorite: f}

	u, err := s.users.GetByID(ctx, f.UserID)
	if err != nil {
		return Detail{}, err
	}
	detail.User = u

	switch f.Target.Kind {
	case TargetPlanet:
		detail.Planet, err = s.planets.GetByID(ctx, f.Target.ID)
	case TargetCharacter:
		detail.Character, err = s.characters.GetByID(ctx, f.Target.ID)
	}
	if err != nil {
		return Detail{}, err
	}

	return detail, nil
}

// Serialize resolves a stored favorite's references and serializes it.
// A reference that no longer resolves is an integrity error.
func (s *Service) Serialize(ctx context.Context, f Favorite) (Response, error) {
	detail, err := s.resolve(ctx, f)
	if err != nil {
		if errors.Is(err, errors.ErrorTypeNotFound) {
			s.logger.Error("Favorite has a dangling reference",
				"component", "favorite_service",
				"operation", "serialize",
				"favorite_id", f.ID,
				"error", err,
			)
			return Response{}, errors.WrapIntegrity("favorite references a missing record", err)
		}
		return Response{}, err
	}

	return detail.Serialize()
}

func (s *Service) Get(ctx context.Context, id int) (Response, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Response{}, err
	}
	return s.Serialize(ctx, *f)
}

func (s *Service) ListByUser(ctx context.Context, userID int) ([]Response, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	favorites, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.serializeAll(ctx, favorites)
}

// ListByPlanet returns the favorites that bookmark a planet
func (s *Service) ListByPlanet(ctx context.Context, planetID int) ([]Response, error) {
	if _, err := s.planets.GetByID(ctx, planetID); err != nil {
		return nil, err
	}

	favorites, err := s.repo.ListByTarget(ctx, PlanetTarget(planetID))
	if err != nil {
		return nil, err
	}
	return s.serializeAll(ctx, favorites)
}

// ListByCharacter returns the favorites that bookmark a character
func (s *Service) ListByCharacter(ctx context.Context, characterID int) ([]Response, error) {
	if _, err := s.characters.GetByID(ctx, characterID); err != nil {
		return nil, err
	}

	favorites, err := s.repo.ListByTarget(ctx, CharacterTarget(characterID))
	if err != nil {
		return nil, err
	}
	return s.serializeAll(ctx, favorites)
}

func (s *Service) serializeAll(ctx context.Context, favorites []Favorite) ([]Response, error) {
	body := make([]Response, 0, len(favorites))
	for _, f := range favorites {
		resp, err := s.Serialize(ctx, f)
		if err != nil {
			return nil, err
		}
		body = append(body, resp)
	}
	return body, nil
}

func (s *Service) Remove(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) RemovePlanet(ctx context.Context, userID, planetID int) error {
	f, err := NewPlanetFavorite(userID, planetID)
	if err != nil {
		return err
	}
	return s.repo.DeleteByUserAndTarget(ctx, f.UserID, f.Target)
}

func (s *Service) RemoveCharacter(ctx context.Context, userID, characterID int) error {
	f, err := NewCharacterFavorite(userID, characterID)
	if err != nil {
		return err
	}
	return s.repo.DeleteByUserAndTarget(ctx, f.UserID, f.Target)
}
