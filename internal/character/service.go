package character

import (
	"context"
	"log/slog"

	"starwars-catalog/internal/planet"
	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/shared/validation"
)

// PlanetLookup resolves home planet references
type PlanetLookup interface {
	GetByID(ctx context.Context, id int) (*planet.Planet, error)
}

type Service struct {
	repo    Store
	planets PlanetLookup
	logger  *slog.Logger
}

func NewService(repo Store, planets PlanetLookup, logger *slog.Logger) *Service {
	logger.Debug("Initializing character service")

	return &Service{
		repo:    repo,
		planets: planets,
		logger:  logger,
	}
}

func (s *Service) Create(ctx context.Context, req Request) (*Character, error) {
	logger := s.logger.With("component", "character_service", "operation", "create", "name", req.Name)

	if err := s.validate(ctx, req); err != nil {
		logger.Debug("Rejected invalid character", "error", err)
		return nil, err
	}

	c, err := s.repo.Create(ctx, req.toCharacter(0), nil)
	if err != nil {
		return nil, err
	}

	logger.Info("Character created", "character_id", c.ID)
	return c, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*Character, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Character, error) {
	return s.repo.List(ctx)
}

// ListResidents returns the characters whose home planet is planetID
func (s *Service) ListResidents(ctx context.Context, planetID int) ([]Character, error) {
	if _, err := s.planets.GetByID(ctx, planetID); err != nil {
		return nil, err
	}
	return s.repo.ListByHomePlanet(ctx, planetID)
}

func (s *Service) Update(ctx context.Context, id int, req Request) (*Character, error) {
	logger := s.logger.With("component", "character_service", "operation", "update", "character_id", id)

	if err := s.validate(ctx, req); err != nil {
		logger.Debug("Rejected invalid character update", "error", err)
		return nil, err
	}

	return s.repo.Update(ctx, req.toCharacter(id))
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) validate(ctx context.Context, req Request) error {
	if err := validation.Struct(req); err != nil {
		return err
	}

	if req.HomePlanetID == nil {
		return nil
	}

	_, err := s.planets.GetByID(ctx, *req.HomePlanetID)
	if errors.Is(err, errors.ErrorTypeNotFound) {
		return errors.Validationf("home_planet_id %d does not reference an existing planet", *req.HomePlanetID)
	}
	return err
}
