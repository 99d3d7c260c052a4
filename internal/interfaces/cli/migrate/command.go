package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/creatorhub/creatorhub/internal/infrastructure/database"
	"github.com/creatorhub/creatorhub/internal/infrastructure/migration"
	"github.com/creatorhub/creatorhub/internal/interfaces/cli/bootstrap"
)

func NewCommand(opts *bootstrap.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration tools",
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDown(opts, steps)
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "Number of migrations to roll back")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runUp(opts)
			},
		},
		down,
		&cobra.Command{
			Use:   "status",
			Short: "Show migration status",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runStatus(opts)
			},
		},
	)
	return cmd
}

func runUp(opts *bootstrap.Options) error {
	cfg, log, db, err := opts.InitWithDatabase()
	if err != nil {
		return err
	}
	defer database.Close()

	manager, err := migration.NewManager(&cfg.Database)
	if err != nil {
		return err
	}
	log.Infow("running up migrations", "strategy", manager.Strategy().GetName())
	if err := manager.Migrate(db); err != nil {
		log.Errorw("migration failed", "error", err)
		return err
	}
	log.Infow("migrations completed successfully")
	return nil
}

func gooseFor(opts *bootstrap.Options) (*migration.GooseStrategy, func(), error) {
	cfg, _, _, err := opts.InitWithDatabase()
	if err != nil {
		return nil, nil, err
	}
	manager, err := migration.NewManager(&cfg.Database)
	if err != nil {
		_ = database.Close()
		return nil, nil, err
	}
	g, ok := manager.Strategy().(*migration.GooseStrategy)
	if !ok {
		_ = database.Close()
		return nil, nil, fmt.Errorf("only supported with the goose strategy, got %s", manager.Strategy().GetName())
	}
	return g, func() { _ = database.Close() }, nil
}

func runDown(opts *bootstrap.Options, steps int) error {
	g, closeDB, err := gooseFor(opts)
	if err != nil {
		return err
	}
	defer closeDB()

	if err := g.MigrateDown(database.Get(), steps); err != nil {
		return fmt.Errorf("down migration failed: %w", err)
	}
	return nil
}

func runStatus(opts *bootstrap.Options) error {
	g, closeDB, err := gooseFor(opts)
	if err != nil {
		return err
	}
	defer closeDB()

	return g.Status(database.Get())
}
