package bootstrap

import (
	"context"

	"course-enrollment/internal/infra/db"
	"course-enrollment/internal/infra/mongostore"
	"course-enrollment/internal/pkg/config"
	"course-enrollment/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

var MongoModule = fx.Module("mongo",
	fx.Provide(
		NewMongo,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	ctx := context.Background()
	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

func NewMongo(lc fx.Lifecycle, cfg config.Config) (*mongo.Database, error) {
	ctx := context.Background()
	database, cleanup, err := mongostore.Connect(ctx, cfg.Mongo)
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, database); err != nil {
		cleanup()
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return database, nil
}
