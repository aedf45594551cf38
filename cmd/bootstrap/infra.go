package bootstrap

import (
	"context"
	"log/slog"

	"course-enrollment/internal/infra/cache"
	"course-enrollment/internal/infra/events"
	"course-enrollment/internal/infra/observability"
	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/usecase/queries"
	"course-enrollment/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		NewRegistry,
		func(r *prometheus.Registry) prometheus.Registerer { return r },
		func(r *prometheus.Registry) prometheus.Gatherer { return r },
		fx.Annotate(
			observability.NewSettlementMetrics,
			fx.As(new(shared.SettlementMetrics)),
		),
	),
)

var CacheModule = fx.Module("cache",
	fx.Provide(
		NewReportCache,
	),
)

var EventsModule = fx.Module("events",
	fx.Provide(
		NewEventPublisher,
	),
)

func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

type reportCache interface {
	queries.ReportCache
	shared.ReportInvalidator
}

type ReportCacheResult struct {
	fx.Out

	Cache       queries.ReportCache
	Invalidator shared.ReportInvalidator
}

// NewReportCache uses redis when REDIS_ADDR is set so every replica sees the
// same invalidation; otherwise the cache is per process.
func NewReportCache(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) ReportCacheResult {
	var c reportCache
	if cfg.Redis.Addr != "" {
		client := cache.NewRedisClient(cfg.Redis)
		lc.Append(fx.Hook{
			OnStop: func(_ context.Context) error { return client.Close() },
		})
		c = cache.NewRedisReportCache(client, cfg.Report.CacheTTL)
		logger.Info("report cache: redis", "addr", cfg.Redis.Addr)
	} else {
		c = cache.NewLocalReportCache(cfg.Report.CacheSize, cfg.Report.CacheTTL)
		logger.Info("report cache: in-process")
	}
	return ReportCacheResult{Cache: c, Invalidator: c}
}

func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) shared.EventPublisher {
	if len(cfg.Kafka.Brokers) == 0 {
		logger.Warn("KAFKA_BROKERS not set, settlement events are dropped")
		return events.NoopPublisher{}
	}
	p := events.NewKafkaPublisher(cfg.Kafka)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error { return p.Close() },
	})
	return p
}
