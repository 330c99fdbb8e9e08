package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/league-stats/internal/usecase"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
	pqCheckViolation      = "23514"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// mapWriteError turns constraint violations into usecase.ErrConflict so the
// caller can tell them apart from infrastructure failures.
func mapWriteError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqUniqueViolation, pqForeignKeyViolation, pqCheckViolation:
			return fmt.Errorf("%w: %s: constraint %s", usecase.ErrConflict, op, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func nullableDate(value *time.Time) *time.Time {
	if value == nil || value.IsZero() {
		return nil
	}
	d := value.UTC().Truncate(24 * time.Hour)
	return &d
}

func lockKey(slug string) string {
	return "league:" + slug
}
