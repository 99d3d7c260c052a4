package migration

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/creatorhub/creatorhub/internal/shared/config"
	"github.com/creatorhub/creatorhub/internal/shared/logger"
)

// Manager picks and runs the strategy matching the database config.
type Manager struct {
	strategy Strategy
	logger   logger.Interface
}

// NewManager uses goose for mysql/postgres unless auto is requested; SQLite
// always auto-migrates.
func NewManager(cfg *config.DatabaseConfig) (*Manager, error) {
	var strategy Strategy
	if cfg.Driver == "sqlite" || cfg.Migration == "auto" {
		strategy = NewAutoMigrateStrategy()
	} else {
		dialect := cfg.Driver
		if dialect == "" {
			dialect = "mysql"
		}
		g, err := NewGooseStrategy(dialect)
		if err != nil {
			return nil, err
		}
		strategy = g
	}
	return &Manager{strategy: strategy, logger: logger.NewLogger().With("component", "migration.manager")}, nil
}

func (m *Manager) Strategy() Strategy {
	return m.strategy
}

func (m *Manager) Migrate(db *gorm.DB) error {
	m.logger.Infow("starting database migration", "strategy", m.strategy.GetName())
	if err := m.strategy.Migrate(db); err != nil {
		return fmt.Errorf("migration failed with strategy %s: %w", m.strategy.GetName(), err)
	}
	return nil
}
