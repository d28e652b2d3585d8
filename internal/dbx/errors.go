package dbx

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/recordapi/internal/common"
	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// Classify wraps a raw driver error in the matching store sentinel, keeping
// the original error in the chain for operator-side logging.
//
//   - connection failures          -> common.ErrConnectionUnavailable
//   - unique constraint violations -> common.ErrAlreadyExists
//   - anything else                -> common.ErrQueryFailed
//
// Errors that already carry a store sentinel are returned unchanged; nil
// stays nil.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrStore) || errors.Is(err, common.ErrAlreadyExists) {
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("%w: %w", common.ErrConnectionUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return fmt.Errorf("%w: %w", common.ErrAlreadyExists, err)
	}

	return fmt.Errorf("%w: %w", common.ErrQueryFailed, err)
}
