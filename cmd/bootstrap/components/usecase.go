package components

import (
	"log/slog"

	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/usecase"
	"course-enrollment/internal/usecase/commands"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewSettlementCommands,
		commands.NewClassUseCase,
		commands.NewSelectionUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewEnrollmentQueries,
		queries.NewClassQueries,
		queries.NewSelectionQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewSettlementCommands(
	store shared.Store,
	publisher shared.EventPublisher,
	invalidator shared.ReportInvalidator,
	metrics shared.SettlementMetrics,
	clk clock.Clock,
	logger *slog.Logger,
	cfg config.Config,
) commands.SettlementCommands {
	return commands.NewSettlementUseCase(store, publisher, invalidator, metrics, clk, logger,
		commands.SettlementOptions{Lease: cfg.Settlement.LeaseDuration})
}
