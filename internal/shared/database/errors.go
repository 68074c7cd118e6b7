package database

import (
	"database/sql"
	stderrors "errors"
	"fmt"

	"starwars-catalog/internal/shared/errors"

	"github.com/lib/pq"
)

// PostgreSQL error condition names, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	uniqueViolation     = "unique_violation"
	notNullViolation    = "not_null_violation"
	foreignKeyViolation = "foreign_key_violation"
	checkViolation      = "check_violation"
	stringTruncation    = "string_data_right_truncation"
)

// TranslateError converts driver errors into typed application errors. Constraint
// violations are always surfaced to the caller.
func TranslateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NotFoundf("%s not found", entity)
	}

	var pqErr *pq.Error
	if !stderrors.As(err, &pqErr) {
		return errors.WrapInternal(fmt.Sprintf("%s query failed", entity), err)
	}

	switch pqErr.Code.Name() {
	case uniqueViolation:
		return errors.WrapConflict(fmt.Sprintf("%s already exists (%s)", entity, pqErr.Constraint), err)
	case notNullViolation:
		return errors.WrapValidation(fmt.Sprintf("%s is missing required column %s", entity, pqErr.Column), err)
	case stringTruncation:
		return errors.WrapValidation(fmt.Sprintf("%s has a value longer than its column allows", entity), err)
	case foreignKeyViolation:
		return errors.WrapIntegrity(fmt.Sprintf("%s references a missing record (%s)", entity, pqErr.Constraint), err)
	case checkViolation:
		return errors.WrapIntegrity(fmt.Sprintf("%s violates check %s", entity, pqErr.Constraint), err)
	default:
		return errors.WrapInternal(fmt.Sprintf("%s query failed", entity), err)
	}
}

// IsNoRows reports whether err means the query matched nothing
func IsNoRows(err error) bool {
	return stderrors.Is(err, sql.ErrNoRows)
}
