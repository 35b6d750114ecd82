package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"plant-irrigation-api/irrigation"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// classify maps driver errors onto the irrigation error taxonomy. Constraint
// violations become Conflict or NotFound; everything else the database could
// not answer becomes Unavailable.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, irrigation.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w: %s", op, irrigation.ErrConflict, pgErr.Detail)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w: %s", op, irrigation.ErrNotFound, pgErr.Detail)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w: %s", op, irrigation.ErrValidation, pgErr.ConstraintName)
		}
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%s: %w: %v", op, irrigation.ErrConflict, liteErr)
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return fmt.Errorf("%s: %w: %v", op, irrigation.ErrNotFound, liteErr)
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return fmt.Errorf("%s: %w: %v", op, irrigation.ErrValidation, liteErr)
		}
	}

	if errors.Is(err, irrigation.ErrNotFound) || errors.Is(err, irrigation.ErrConflict) || errors.Is(err, irrigation.ErrValidation) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Errorf("%s: %w: %w", op, irrigation.ErrUnavailable, err)
}
