package user

import (
	"context"
	"fmt"
	"log/slog"

	"starwars-catalog/internal/shared/database"
	"starwars-catalog/internal/shared/errors"
)

// Store is the persistence contract the user service depends on
type Store interface {
	Create(ctx context.Context, u User, tx *database.Tx) (*User, error)
	GetByID(ctx context.Context, id int) (*User, error)
	List(ctx context.Context) ([]User, error)
	SetActive(ctx context.Context, id int, active bool) (*User, error)
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	db     *database.DB
	logger *slog.Logger
}

func NewRepository(db *database.DB, logger *slog.Logger) *Repository {
	logger.Debug("Initializing user repository")

	return &Repository{
		db:     db,
		logger: logger,
	}
}

const userColumns = "id, email, password, is_active"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.IsActive); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a user; a duplicate email surfaces as a conflict from the unique constraint
func (r *Repository) Create(ctx context.Context, u User, tx *database.Tx) (*User, error) {
	logger := r.logger.With(
		"component", "user_repository",
		"operation", "create",
		"email", u.Email,
	)
	logger.Info("Creating new user")

	query := `
		INSERT INTO users (email, password, is_active)
		VALUES ($1, $2, $3)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.Executor(tx).QueryRowContext(ctx, query, u.Email, u.Password, u.IsActive))
	if err != nil {
		logger.Error("Failed to create user", "error", err)
		return nil, database.TranslateError(err, "user")
	}

	logger.Info("User created successfully", "user_id", created.ID)
	return created, nil
}

func (r *Repository) GetByID(ctx context.Context, id int) (*User, error) {
	logger := r.logger.With("component", "user_repository", "operation", "get_by_id", "user_id", id)
	logger.Debug("Getting user by ID")

	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		if database.IsNoRows(err) {
			logger.Debug("No user found with ID")
			return nil, errors.NotFoundf("user %d not found", id)
		}
		logger.Error("Database error getting user by ID", "error", err)
		return nil, database.TranslateError(err, "user")
	}

	return u, nil
}

func (r *Repository) List(ctx context.Context) ([]User, error) {
	logger := r.logger.With("component", "user_repository", "operation", "list")
	logger.Debug("Retrieving all users")

	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		logger.Error("Failed to query users", "error", err)
		return nil, database.TranslateError(err, "user")
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Error("Failed to close rows", "error", err)
		}
	}()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			logger.Error("Failed to scan user row", "error", err)
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Error during rows iteration", "error", err)
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	logger.Debug("Users retrieved successfully", "count", len(users))
	return users, nil
}

func (r *Repository) SetActive(ctx context.Context, id int, active bool) (*User, error) {
	logger := r.logger.With("component", "user_repository", "operation", "set_active", "user_id", id, "is_active", active)
	logger.Debug("Updating user active flag")

	query := `UPDATE users SET is_active = $2 WHERE id = $1 RETURNING ` + userColumns

	u, err := scanUser(r.db.QueryRowContext(ctx, query, id, active))
	if err != nil {
		if database.IsNoRows(err) {
			return nil, errors.NotFoundf("user %d not found", id)
		}
		logger.Error("Failed to update user", "error", err)
		return nil, database.TranslateError(err, "user")
	}

	return u, nil
}

// Delete removes the user and, through the foreign key, all of the user's favorites
func (r *Repository) Delete(ctx context.Context, id int) error {
	logger := r.logger.With("component", "user_repository", "operation", "delete", "user_id", id)
	logger.Debug("Deleting user")

	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		logger.Error("Failed to delete user", "error", err)
		return database.TranslateError(err, "user")
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.WrapInternal("failed to read affected rows", err)
	}
	if affected == 0 {
		return errors.NotFoundf("user %d not found", id)
	}

	logger.Info("User deleted")
	return nil
}
