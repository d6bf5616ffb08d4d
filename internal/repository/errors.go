package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
)

// isNoRows matches both pgx and database/sql no-row sentinels since the
// DB abstraction can surface either depending on the path.
func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows)
}
