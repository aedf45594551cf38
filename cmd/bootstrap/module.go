package bootstrap

import (
	"course-enrollment/cmd/bootstrap/components"
	"course-enrollment/internal/pkg/config"

	"go.uber.org/fx"
)

// Module wires the API server for an already loaded configuration.
func Module(cfg config.Config) fx.Option {
	return fx.Options(
		fx.Supply(cfg),
		LoggerModule,
		JWTModule,
		MetricsModule,
		CacheModule,
		EventsModule,
		StoreModule(cfg.Store.Driver),
		components.UseCaseModule,
		components.HandlerModule,
		ReconcilerModule,
	)
}

// StoreModule selects the backend for the record collections and read models.
func StoreModule(driver string) fx.Option {
	if driver == config.StoreDriverMongo {
		return fx.Options(MongoModule, components.MongoPersistenceModule)
	}
	return fx.Options(DBModule, components.PostgresPersistenceModule)
}
