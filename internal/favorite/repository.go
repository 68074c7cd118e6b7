package favorite

import (
	"context"
	"fmt"
	"log/slog"

	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"
)

// Store is the persistence contract the favorite service depends on
type Store interface {
	Create(ctx context.Context, f Favorite, tx *database.Tx) (*Favorite, error)
	GetByID(ctx context.Context, id int) (*Favorite, error)
	FindByUserAndTarget(ctx context.Context, userID int, target Target) (*Favorite, error)
	ListByUser(ctx context.Context, userID int) ([]Favorite, error)
	ListByTarget(ctx context.Context, target Target) ([]Favorite, error)
	Delete(ctx context.Context, id int) error
	DeleteByUserAndTarget(ctx context.Context, userID int, target Target) error
}

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing favorite repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const favoriteColumns = "id, user_id, planet_id, character_id"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFavorite(row rowScanner) (*Favorite, error) {
	var (
		f           Favorite
		planetID    *int
		characterID *int
	)
	if err := row.Scan(&f.ID, &f.UserID, &planetID, &characterID); err != nil {
		return nil, err
	}

	target, err := targetFromColumns(planetID, characterID)
	if err != nil {
		return nil, err
	}
	f.Target = target

	return &f, nil
}

// targetColumn returns the column a target is stored in
func targetColumn(target Target) (string, error) {
	switch target.Kind {
	case TargetPlanet:
		return "planet_id", nil
	case TargetCharacter:
		return "character_id", nil
	default:
		return "", errors.Validation("favorite target must be a planet or a character")
	}
}

func (r *Repository) Create(ctx context.Context, f Favorite, tx *database.Tx) (*Favorite, error) {
	logger := r.logger.With(
		"component", "favorite_repository",
		"operation", "create",
		"user_id", f.UserID,
		"target_kind", f.Target.Kind,
		"target_id", f.Target.ID,
	)
	logger.Debug("Creating favorite")

	if _, err := targetColumn(f.Target); err != nil {
		return nil, err
	}

	query := `
		INSERT INTO favorites (user_id, planet_id, character_id)
		VALUES ($1, $2, $3)
		RETURNING ` + favoriteColumns

	created, err := scanFavorite(r.db.Executor(tx).QueryRowContext(ctx, query, f.UserID, f.Target.PlanetID(), f.Target.CharacterID()))
	if err != nil {
		logger.Error("Failed to create favorite", "error", err)
		return nil, database.TranslateError(err, "favorite")
	}

	logger.Info("Favorite created successfully", "favorite_id", created.ID)
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*Favorite, error) {
	logger := r.logger.With("component", "favorite_repository", "operation", "get_by_id", "favorite_id", id)
	logger.Debug("Getting favorite by ID")

	f, err := scanFavorite(r.db.QueryRowContext(ctx, `SELECT `+favoriteColumns+` FROM favorites WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			logger.Debug("No favorite found with ID")
			return nil, errors.NotFoundf("favorite %d not found", id)
		}
		logger.Error("Failed to get favorite", "error", err)
		return nil, database.TranslateError(err, "favorite")
	}

	return f, nil
}

func (r *Repository) FindByUserAndTarget(ctx context.Context, userID int, target Target) (*Favorite, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, err
	}

	logger := r.logger.With("component", "favorite_repository", "operation", "find_by_user_and_target",
		"user_id", userID, "target_kind", target.Kind, "target_id", target.ID)
	logger.Debug("Finding favorite")

	query := fmt.Sprintf(`SELECT %s FROM favorites WHERE user_id = $1 AND %s = $2`, favoriteColumns, column)

	f, err := scanFavorite(r.db.QueryRowContext(ctx, query, userID, target.ID))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errors.NotFoundf("user %d has no favorite %s %d", userID, target.Kind, target.ID)
		}
		logger.Error("Failed to find favorite", "error", err)
		return nil, database.TranslateError(err, "favorite")
	}

	return f, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]Favorite, error) {
	return r.query(ctx, "list_by_user",
		`SELECT `+favoriteColumns+` FROM favorites WHERE user_id = $1 ORDER BY id`, userID)
}

// ListByTarget returns every favorite that points at the given planet or character
func (r *Repository) ListByTarget(ctx context.Context, target Target) ([]Favorite, error) {
	column, err := targetColumn(target)
	if err != nil {
		return nil, err
	}

	return r.query(ctx, "list_by_target",
		fmt.Sprintf(`SELECT %s FROM favorites WHERE %s = $1 ORDER BY id`, favoriteColumns, column), target.ID)
}

func (r *Repository) query(ctx context.Context, operation, query string, args ...any) ([]Favorite, error) {
	logger := r.logger.With("component", "favorite_repository", "operation", operation)
	logger.Debug("Querying favorites")

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to query favorites", "error", err)
		return nil, database.TranslateError(err, "favorite")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	favorites := []Favorite{}
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			logger.Error("Failed to scan favorite row", "error", err)
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, *f)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	logger.Debug("Favorites retrieved", "count", len(favorites))
	return favorites, nil
}

func (r *Repository) Delete(ctx context.Context, id int) error {
	return r.exec(ctx, "delete", errors.NotFoundf("favorite %d not found", id),
		`DELETE FROM favorites WHERE id = $1`, id)
}

func (r *Repository) DeleteByUserAndTarget(ctx context.Context, userID int, target Target) error {
	column, err := targetColumn(target)
	if err != nil {
		return err
	}

	return r.exec(ctx, "delete_by_user_and_target",
		errors.NotFoundf("user %d has no favorite %s %d", userID, target.Kind, target.ID),
		fmt.Sprintf(`DELETE FROM favorites WHERE user_id = $1 AND %s = $2`, column), userID, target.ID)
}

func (r *Repository) exec(ctx context.Context, operation string, notFound error, query string, args ...any) error {
	logger := r.logger.With("component", "favorite_repository", "operation", operation)
	logger.Debug("Deleting favorite")

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("Failed to delete favorite", "error", err)
		return database.TranslateError(err, "favorite")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to read affected rows", err)
	}
	if affected == 0 {
		return notFound
	}

	logger.Info("Favorite deleted")
	return nil
}
