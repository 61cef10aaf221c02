package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("repository: record not found")
	// ErrUniqueViolation means a write collided with a unique constraint.
	ErrUniqueViolation = errors.New("repository: unique constraint violation")
	// ErrForeignKeyViolation means a write referenced a missing row, or a
	// delete would orphan referencing rows.
	ErrForeignKeyViolation = errors.New("repository: foreign key violation")
)

// ConstraintError reports which constraint rejected a write.
type ConstraintError struct {
	Kind       error
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%v (%s)", e.Kind, e.Constraint)
}

func (e *ConstraintError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// mapPgError converts driver errors into the repository error set.
func mapPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConstraintError{Kind: ErrUniqueViolation, Constraint: pgErr.ConstraintName, Err: err}
		case pgForeignKeyViolation:
			return &ConstraintError{Kind: ErrForeignKeyViolation, Constraint: pgErr.ConstraintName, Err: err}
		}
	}
	return err
}
