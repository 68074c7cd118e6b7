package character

import (
	"context"
	"fmt"
	"log/slog"

	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"
)

// Store is the persistence contract the character service depends on
type Store interface {
	Create(ctx context.Context, c Character, tx *database.Tx) (*Character, error)
	GetByID(ctx context.Context, id int) (*Character, error)
	List(ctx context.Context) ([]Character, error)
	ListByHomePlanet(ctx context.Context, planetID int) ([]Character, error)
	Update(ctx context.Context, c Character) (*Character, error)
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing character repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const characterColumns = "id, name, birth_year, gender, height, skin_color, eye_color, home_planet_id"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCharacter(row rowScanner) (*Character, error) {
	var c Character
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.BirthYear,
		&c.Gender,
		&c.Height,
		&c.SkinColor,
		&c.EyeColor,
		&c.HomePlanetID,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Create(ctx context.Context, c Character, tx *database.Tx) (*Character, error) {
	logger := r.logger.With(
		"component", "character_repository",
		"operation", "create",
		"name", c.Name,
	)
	logger.Debug("Creating character")

	query := `
		INSERT INTO characters (name, birth_year, gender, height, skin_color, eye_color, home_planet_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + characterColumns

	created, err := scanCharacter(r.db.Executor(tx).QueryRowContext(ctx, query,
		c.Name, c.BirthYear, c.Gender, c.Height, c.SkinColor, c.EyeColor, c.HomePlanetID))
	if err != nil {
		logger.Error("Failed to create character", "error", err)
		return nil, database.TranslateError(err, "character")
	}

	logger.Debug("Character created successfully", "character_id", created.ID)
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Character, error) {
	logger := r.logger.With("component", "character_repository", "operation", "get_by_id", "character_id", id)
	logger.Debug("Getting character by ID")

	query := `SELECT ` + characterColumns + ` FROM characters WHERE id = $1`

	c, err := scanCharacter(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if database.IsNoRows(err) {
			logger.Debug("No character found with ID")
			return nil, errors.NotFoundf("character %d not found", id)
		}
		logger.Error("Failed to get character", "error", err)
		return nil, database.TranslateError(err, "character")
	}

	return c, nil
}

func (r *Repository) GetByName(ctx context.Context, name string, tx *database.Tx) (*Character, error) {
	logger := r.logger.With("component", "character_repository", "operation", "get_by_name", "name", name)
	logger.Debug("Getting character by name")

	query := `SELECT ` + characterColumns + ` FROM characters WHERE name = $1`

	c, err := scanCharacter(r.db.Executor(tx).QueryRowContext(ctx, query, name))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errors.NotFoundf("character %q not found", name)
		}
		logger.Error("Failed to get character", "error", err)
		return nil, database.TranslateError(err, "character")
	}

	return c, nil
}

func (r *Repository) List(ctx context.Context) ([]Character, error) {
	return r.query(ctx, "list", `SELECT `+characterColumns+` FROM characters ORDER BY id`)
}

// ListByHomePlanet returns the residents of a planet
func (r *Repository) ListByHomePlanet(ctx context.Context, planetID int) ([]Character, error) {
	return r.query(ctx, "list_by_home_planet",
		`SELECT `+characterColumns+` FROM characters WHERE home_planet_id = $1 ORDER BY id`, planetID)
}

func (r *Repository) query(ctx context.Context, operation, query string, args ...any) ([]Character, error) {
	logger := r.logger.With("component", "character_repository", "operation", operation)
	logger.Debug("Querying characters")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query characters", "error", err)
		return nil, database.TranslateError(err, "character")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	characters := []Character{}
	for rows.Next() {
		c, err := scanCharacter(rows)
		if err != nil {
			logger.Error("Failed to scan character row", "error", err)
			return nil, fmt.Errorf("failed to scan character: %w", err)
		}
		characters = append(characters, *c)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating characters: %w", err)
	}

	logger.Debug("Characters retrieved", "count", len(characters))
	return characters, nil
}

func (r *Repository) Update(ctx context.Context, c Character) (*Character, error) {
	logger := r.logger.With("component", "character_repository", "operation", "update", "character_id", c.ID)
	logger.Debug("Updating character")

	query := `
		UPDATE characters
		SET name = $2, birth_year = $3, gender = $4, height = $5, skin_color = $6, eye_color = $7, home_planet_id = $8
		WHERE id = $1
		RETURNING ` + characterColumns

	updated, err := scanCharacter(r.db.QueryRowContext(ctx, query,
		c.ID, c.Name, c.BirthYear, c.Gender, c.Height, c.SkinColor, c.EyeColor, c.HomePlanetID))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errors.NotFoundf("character %d not found", c.ID)
		}
		logger.Error("Failed to update character", "error", err)
		return nil, database.TranslateError(err, "character")
	}

	logger.Debug("Character updated successfully")
	return updated, nil
}

// Delete removes the character together with the favorites that point at it
func (r *Repository) Delete(ctx context.Context, id int) error {
	logger := r.logger.With("component", "character_repository", "operation", "delete", "character_id", id)
	logger.Debug("Deleting character")

	result, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete character", "error", err)
		return database.TranslateError(err, "character")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to read affected rows", err)
	}
	if affected == 0 {
		return errors.NotFoundf("character %d not found", id)
	}

	logger.Info("Character deleted")
	return nil
}
