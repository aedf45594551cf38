//go:build unit

package infra

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind []RepositoryErrorKind
		want RepositoryErrorKind
	}{
		{name: "no rows", err: pgx.ErrNoRows, want: KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, want: KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, want: KindForeignKeyViolated},
		{name: "other server error", err: &pgconn.PgError{Code: "42P01"}, want: KindDBFailure},
		{name: "deadline", err: context.DeadlineExceeded, want: KindUnavailable},
		{name: "plain error", err: errors.New("boom"), want: KindDBFailure},
		{name: "explicit kind wins", err: errors.New("boom"), kind: []RepositoryErrorKind{KindNotFound}, want: KindNotFound},
		{name: "classified error keeps kind", err: NewRepoErr(KindUnavailable, "inner", errors.New("eof")), want: KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapRepoErr("op", tt.err, tt.kind...)
			assert.True(t, IsKind(err, tt.want), "got %v", err)
			assert.True(t, errors.Is(err, tt.err))
		})
	}

	assert.NoError(t, WrapRepoErr("op", nil))
}

func TestRepositoryErrorMessage(t *testing.T) {
	err := NewRepoErr(KindNotFound, "class not found", nil)
	assert.Equal(t, "NOT_FOUND: class not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsDuplicateKey(err))
}
