package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"course-enrollment/cmd/bootstrap"
	"course-enrollment/internal/domain/user"
	"course-enrollment/internal/pkg/clock"
	"course-enrollment/internal/pkg/config"
	"course-enrollment/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var (
	catalogPath string
	dryRun      bool
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load a class catalog into the configured store",
	Long: `Reads a YAML class catalog and submits every class through the
class use case as the catalog's admin. Classes flagged approved are
approved right after creation.`,
	SilenceUsage: true,
	RunE:         runSeed,
}

func init() {
	rootCmd.Flags().StringVarP(&catalogPath, "file", "f", "seed/classes.yaml", "catalog file")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the catalog without writing")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	f, err := os.Open(catalogPath)
	if err != nil {
		return err
	}
	defer f.Close()

	cat, err := decodeCatalog(f)
	if err != nil {
		return err
	}
	if dryRun {
		fmt.Fprintf(cmd.OutOrStdout(), "catalog ok: %d classes\n", len(cat.Classes))
		return nil
	}

	cfg, err := config.LoadSeedConfig()
	if err != nil {
		return err
	}

	var (
		classes commands.ClassCommands
		logger  *slog.Logger
	)
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		bootstrap.LoggerModule,
		bootstrap.StoreModule(cfg.Store.Driver),
		fx.Provide(
			clock.NewRealClock,
			commands.NewClassUseCase,
		),
		fx.Populate(&classes, &logger),
	)
	ctx := cmd.Context()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		if err := app.Stop(context.Background()); err != nil {
			logger.Error("failed to stop seed app", "error", err)
		}
	}()

	created, err := seedClasses(ctx, classes, cat)
	logger.Info("seed finished", "created", created, "total", len(cat.Classes))
	return err
}

func seedClasses(ctx context.Context, classes commands.ClassCommands, cat catalog) (int, error) {
	admin, err := user.NewCaller(uuid.New(), cat.Admin, string(user.RoleAdmin))
	if err != nil {
		return 0, err
	}

	created := 0
	for _, c := range cat.Classes {
		id, err := classes.Create(ctx, admin, c.input())
		if err != nil {
			return created, fmt.Errorf("create %q: %w", c.Name, err)
		}
		created++
		if c.Approved {
			if err := classes.Approve(ctx, admin, id); err != nil {
				return created, fmt.Errorf("approve %q: %w", c.Name, err)
			}
		}
	}
	return created, nil
}
