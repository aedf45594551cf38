package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/usecase/commands"

	"go.uber.org/fx"
)

var ReconcilerModule = fx.Module("reconciler",
	fx.Invoke(StartReconciler),
)

// StartReconciler periodically resumes settlements whose lease expired.
func StartReconciler(lc fx.Lifecycle, cmds commands.SettlementCommands, cfg config.Config, logger *slog.Logger) {
	interval := cfg.Settlement.ReconcileInterval
	if interval <= 0 {
		logger.Info("settlement reconciler disabled")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						report, err := cmds.Reconcile(ctx, cfg.Settlement.ReconcileBatch)
						if err != nil {
							logger.Warn("settlement reconcile failed", "error", err)
							continue
						}
						if report.Scanned > 0 {
							logger.Info("settlement reconcile finished",
								"scanned", report.Scanned,
								"completed", report.Completed,
								"released", report.Released,
								"failed", report.Failed)
						}
					}
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
			return nil
		},
	})
}
