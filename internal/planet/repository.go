package planet

import (
	"context"
	"fmt"
	"log/slog"

	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"
)

// Store is the persistence contract the planet service depends on
type Store interface {
	Create(ctx context.Context, p Planet, tx *database.Tx) (*Planet, error)
	GetByID(ctx context.Context, id int) (*Planet, error)
	GetByName(ctx context.Context, name string, tx *database.Tx) (*Planet, error)
	List(ctx context.Context) ([]Planet, error)
	Update(ctx context.Context, p Planet) (*Planet, error)
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing planet repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const planetColumns = "id, name, climate, terrain, population"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPlanet(row rowScanner) (*Planet, error) {
	var planet Planet
	err := row.Scan(
		&planet.ID,
		&planet.Name,
		&planet.Climate,
		&planet.Terrain,
		&planet.Population,
	)
	if err != nil {
		return nil, err
	}
	return &planet, nil
}

func (r *Repository) Create(ctx context.Context, p Planet, tx *database.Tx) (*Planet, error) {
	logger := r.logger.With(
		"component", "planet_repository",
		"operation", "create",
		"name", p.Name,
	)
	logger.Debug("Creating planet")

	query := `
		INSERT INTO planets (name, climate, terrain, population)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + planetColumns

	planet, err := scanPlanet(r.db.Executor(tx).QueryRowContext(ctx, query, p.Name, p.Climate, p.Terrain, p.Population))
	if err != nil {
		logger.Error("Failed to create planet", "error", err)
		return nil, database.TranslateError(err, "planet")
	}

	logger.Debug("Planet created successfully", "planet_id", planet.ID)
	return planet, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_by_id", "planet_id", id)
	logger.Debug("Getting planet by ID")

	query := `SELECT ` + planetColumns + ` FROM planets WHERE id = $1`

	planet, err := scanPlanet(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			logger.Debug("No planet found with ID")
			return nil, errors.NotFoundf("planet %d not found", id)
		}
		logger.Error("Failed to get planet", "error", err)
		return nil, database.TranslateError(err, "planet")
	}

	return planet, nil
}

func (r *Repository) GetByName(ctx context.Context, name string, tx *database.Tx) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "get_by_name", "name", name)
	logger.Debug("Getting planet by name")

	query := `SELECT ` + planetColumns + ` FROM planets WHERE name = $1`

	planet, err := scanPlanet(r.db.Executor(tx).QueryRowContext(ctx, query, name))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errors.NotFoundf("planet %q not found", name)
		}
		logger.Error("Failed to get planet", "error", err)
		return nil, database.TranslateError(err, "planet")
	}

	return planet, nil
}

func (r *Repository) List(ctx context.Context) ([]Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "list")
	logger.Debug("Listing planets")

	query := `SELECT ` + planetColumns + ` FROM planets ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("Failed to query planets", "error", err)
		return nil, database.TranslateError(err, "planet")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	planets := []Planet{}
	for rows.Next() {
		planet, err := scanPlanet(rows)
		if err != nil {
			logger.Error("Failed to scan planet row", "error", err)
			return nil, fmt.Errorf("failed to scan planet: %w", err)
		}
		planets = append(planets, *planet)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating planets: %w", err)
	}

	logger.Debug("Planets retrieved", "count", len(planets))
	return planets, nil
}

func (r *Repository) Update(ctx context.Context, p Planet) (*Planet, error) {
	logger := r.logger.With("component", "planet_repository", "operation", "update", "planet_id", p.ID)
	logger.Debug("Updating planet")

	query := `
		UPDATE planets
		SET name = $2, climate = $3, terrain = $4, population = $5
		WHERE id = $1
		RETURNING ` + planetColumns

	planet, err := scanPlanet(r.db.QueryRowContext(ctx, query, p.ID, p.Name, p.Climate, p.Terrain, p.Population))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errors.NotFoundf("planet %d not found", p.ID)
		}
		logger.Error("Failed to update planet", "error", err)
		return nil, database.TranslateError(err, "planet")
	}

	logger.Debug("Planet updated successfully")
	return planet, nil
}

// Delete removes the planet; residents keep existing with a NULL home planet and favorites of it are removed
func (r *Repository) Delete(ctx context.Context, id int) error {
	logger := r.logger.With("component", "planet_repository", "operation", "delete", "planet_id", id)
	logger.Debug("Deleting planet")

	result, err := r.db.ExecContext(ctx, `DELETE FROM planets WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete planet", "error", err)
		return database.TranslateError(err, "planet")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to read affected rows", err)
	}
	if affected == 0 {
		return errors.NotFoundf("planet %d not found", id)
	}

	logger.Info("Planet deleted")
	return nil
}
