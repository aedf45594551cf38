//go:build e2e

package repository_test

import (
	"testing"

	"course-enrollment/internal/infra/readstore"
	"course-enrollment/internal/infra/repository"
	"course-enrollment/internal/infra/uow"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/internal/usecase/shared"
	"course-enrollment/tests/common/dbtest"
	"course-enrollment/tests/common/storetest"
)

func TestPostgresStore(t *testing.T) {
	storetest.Run(t, func(t *testing.T) shared.Store {
		pool, _ := dbtest.NewPostgresDB(t)
		return repository.NewPostgresStore(uow.NewPostgresUoW(pool))
	})
}

func TestPostgresReports(t *testing.T) {
	storetest.RunReports(t, func(t *testing.T) (shared.Store, queries.EnrollmentReadStore) {
		pool, _ := dbtest.NewPostgresDB(t)
		return repository.NewPostgresStore(uow.NewPostgresUoW(pool)), readstore.NewEnrollmentReadStore(pool)
	})
}
