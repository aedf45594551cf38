package components

import (
	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/infra/mongostore"
	"course-enrollment/internal/infra/readstore"
	"course-enrollment/internal/infra/repository"
	"course-enrollment/internal/infra/uow"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var PostgresPersistenceModule = fx.Module("persistence/postgres",
	fx.Provide(
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			repository.NewPostgresStore,
			fx.As(new(shared.Store)),
		),
		fx.Annotate(
			readstore.NewEnrollmentReadStore,
			fx.As(new(queries.EnrollmentReadStore)),
		),
		fx.Annotate(
			readstore.NewClassReadStore,
			fx.As(new(queries.ClassReadStore)),
		),
		fx.Annotate(
			readstore.NewSelectionReadStore,
			fx.As(new(queries.SelectionReadStore)),
		),
	),
)

var MongoPersistenceModule = fx.Module("persistence/mongo",
	fx.Provide(
		fx.Annotate(
			mongostore.NewStore,
			fx.As(new(shared.Store)),
		),
		fx.Annotate(
			mongostore.NewEnrollmentReadStore,
			fx.As(new(queries.EnrollmentReadStore)),
		),
		fx.Annotate(
			mongostore.NewClassReadStore,
			fx.As(new(queries.ClassReadStore)),
		),
		fx.Annotate(
			mongostore.NewSelectionReadStore,
			fx.As(new(queries.SelectionReadStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
