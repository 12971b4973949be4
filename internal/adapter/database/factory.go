package database

import (
	"fmt"

	"github.com/dbshield/dbshield/internal/config"
	"github.com/dbshield/dbshield/internal/domain"
)

// ForTarget returns the dump adapter for a target's database kind.
func ForTarget(cfg *config.TargetConfig, logger Logger) (domain.Dumper, error) {
	switch cfg.Type {
	case "mysql", "mariadb":
		return NewMySQL(cfg, logger), nil
	case "postgresql":
		return NewPostgreSQL(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}
