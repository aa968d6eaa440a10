package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Run("MatchesWrappedDriverError", func(t *testing.T) {
		// Errors arrive wrapped the way Save wraps them
		driverErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_links_short_code"}
		err := fmt.Errorf("failed to save entity: %w", driverErr)

		assert.True(t, isUniqueViolation(err))
	})

	t.Run("IgnoresOtherSQLStates", func(t *testing.T) {
		driverErr := &pgconn.PgError{Code: "23503"} // foreign key violation
		err := fmt.Errorf("failed to save entity: %w", driverErr)

		assert.False(t, isUniqueViolation(err))
	})

	t.Run("IgnoresPlainErrors", func(t *testing.T) {
		assert.False(t, isUniqueViolation(errors.New("connection reset")))
		assert.False(t, isUniqueViolation(nil))
	})
}
