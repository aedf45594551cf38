package main

import (
	"context"
	"log/slog"
	"os"

	"course-enrollment/cmd/bootstrap"
	"course-enrollment/internal/infra/events"
	"course-enrollment/internal/infra/mail"
	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/usecase"

	"go.uber.org/fx"
)

func runConsumer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg config.Config, logger *slog.Logger) {
	consumer := events.NewConsumer(cfg.Kafka, logger)
	notifier := usecase.NewEnrollmentNotifier(mail.NewSender(cfg.Mail), logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("notifier consuming", "topic", cfg.Kafka.SettledTopic, "group", cfg.Kafka.ConsumerGroup)
			go func() {
				defer close(done)
				if err := consumer.Consume(ctx, notifier.HandleEnrollmentSettled); err != nil {
					logger.Error("notifier stopped", "error", err)
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return consumer.Close()
		},
	})
}

func main() {
	cfg, err := config.LoadNotifierConfig()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	app := fx.New(
		fx.Supply(cfg),
		bootstrap.LoggerModule,
		fx.Invoke(runConsumer),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("failed to start notifier", "error", err)
		os.Exit(1)
	}
	sig := <-app.Wait()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("failed to stop notifier", "error", err)
	}
	os.Exit(sig.ExitCode)
}
