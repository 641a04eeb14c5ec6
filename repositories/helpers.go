package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

func checkAffectedRows(result sql.Result, notFoundError error) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected == 0 {
		return notFoundError
	}
	return nil
}

// describePQError adds the Postgres error code and constraint to err, when
// the driver reported them.
func describePQError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Constraint != "" {
			return fmt.Errorf("%s: postgres %s (%s) on %s: %w", op, pqErr.Code, pqErr.Code.Name(), pqErr.Constraint, err)
		}
		return fmt.Errorf("%s: postgres %s (%s): %w", op, pqErr.Code, pqErr.Code.Name(), err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
