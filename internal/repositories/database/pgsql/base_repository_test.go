package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/SscSPs/renovation_backoffice/internal/apperrors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestLikePattern(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "tiling", want: "%tiling%"},
		{in: "50%", want: `%50\%%`},
		{in: "wall_1", want: `%wall\_1%`},
		{in: `a\b`, want: `%a\\b%`},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, likePattern(tt.in))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Run("no rows is not found", func(t *testing.T) {
		err := classify(pgx.ErrNoRows, "template t1")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("unique violation is duplicate", func(t *testing.T) {
		err := classify(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "line_items_pkey"}, "insert")
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
		assert.Contains(t, err.Error(), "line_items_pkey")
	})

	t.Run("foreign key violation is not found", func(t *testing.T) {
		err := classify(fmt.Errorf("wrapped: %w", &pgconn.PgError{Code: pgForeignKeyViolation}), "insert")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("anything else is an infrastructure error", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := classify(cause, "query")
		var appErr *apperrors.AppError
		assert.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Code)
		assert.ErrorIs(t, err, cause)
		assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	})
}
