// Package bootstrap holds the config, logger and database setup shared by
// every subcommand.
package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/creatorhub/creatorhub/internal/infrastructure/config"
	"github.com/creatorhub/creatorhub/internal/infrastructure/database"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// Options are the persistent flags of the root command.
type Options struct {
	ConfigPath string
	Mode       string
}

// BindFlags registers the shared flags on cmd.
func (o *Options) BindFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.PersistentFlags().StringVarP(&o.Mode, "mode", "m", "", "Server mode override (debug, release, test)")
}

// Init loads configuration and installs the process logger.
func (o *Options) Init() (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(o.ConfigPath, o.Mode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Init(cfg.Logger, cfg.Server.IsDebug()); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, logger.NewLogger(), nil
}

// InitWithDatabase is Init plus an open database. Callers defer database.Close.
func (o *Options) InitWithDatabase() (*config.Config, logger.Interface, *gorm.DB, error) {
	cfg, log, err := o.Init()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return cfg, log, database.Get(), nil
}
