package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConflict reports a store-level uniqueness violation. The per-user
// lock in the rating service prevents this in the common case; when a
// race slips through anyway the constraint is the last line of defense
// and the failure surfaces as a conflict rather than a silent overwrite.
var ErrConflict = errors.New("duplicate record")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
