package user

import (
	"context"
	stderrors "errors"
	"log/slog"

	"starwars-catalog/internal/shared/errors"
	"starwars-catalog/internal/shared/validation"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo   Store
	logger *slog.Logger
	cost   int
}

func NewService(repo Store, logger *slog.Logger) *Service {
	logger.Debug("Initializing user service")

	return &Service{
		repo:   repo,
		logger: logger,
		cost:   bcrypt.DefaultCost,
	}
}

const maxPasswordBytes = 72

// Create stores a new user with a hashed password. Users are active unless the request says otherwise.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	logger := s.logger.With("component", "user_service", "operation", "create", "email", req.Email)

	if err := validation.Struct(req); err != nil {
		logger.Debug("Rejected invalid user", "error", err)
		return nil, err
	}

	// validator counts runes; bcrypt counts bytes
	if len(req.Password) > maxPasswordBytes {
		logger.Debug("Rejected password over bcrypt limit", "bytes", len(req.Password))
		return nil, errors.Validationf("password must be at most %d bytes", maxPasswordBytes)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		if stderrors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, errors.WrapValidation("password is too long", err)
		}
		logger.Error("Failed to hash password", "error", err)
		return nil, errors.WrapInternal("failed to hash password", err)
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	u, err := s.repo.Create(ctx, User{Email: req.Email, Password: string(hash), IsActive: active}, nil)
	if err != nil {
		return nil, err
	}

	logger.Info("User created", "user", u)
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id int) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *Service) SetActive(ctx context.Context, id int, req ActiveRequest) (*User, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}
	return s.repo.SetActive(ctx, id, *req.IsActive)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
