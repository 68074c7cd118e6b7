package planet

import (
	"context"
	"log/slog"

	"starwars-catalog/internal/shared/validation"
)

type Service struct {
	repo   Store
	logger *slog.Logger
}

func NewService(repo Store, logger *slog.Logger) *Service {
	logger.Debug("Initializing planet service")

	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) Create(ctx context.Context, req Request) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "create", "name", req.Name)

	if err := validation.Struct(req); err != nil {
		logger.Debug("Rejected invalid planet", "error", err)
		return nil, err
	}

	planet, err := s.repo.Create(ctx, req.toPlanet(0), nil)
	if err != nil {
		return nil, err
	}

	logger.Info("Planet created", "planet_id", planet.ID)
	return planet, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*Planet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Planet, error) {
	return s.repo.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int, req Request) (*Planet, error) {
	logger := s.logger.With("component", "planet_service", "operation", "update", "planet_id", id)

	if err := validation.Struct(req); err != nil {
		logger.Debug("Rejected invalid planet update", "error", err)
		return nil, err
	}

	return s.repo.Update(ctx, req.toPlanet(id))
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
