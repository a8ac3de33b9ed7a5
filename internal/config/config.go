package config

import (
	"fmt"

	"github.com/Skotchmaster/coderr/pkg/config"
	"github.com/Skotchmaster/coderr/pkg/db"
)

type ServiceConfig struct {
	config.Config
}

// Load reads the environment and reports every missing required value at once.
func Load() (ServiceConfig, error) {
	cfg := config.Load()

	var missing config.Missing
	missing.NonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	missing.NonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	if err := missing.Err(); err != nil {
		return ServiceConfig{}, err
	}

	switch cfg.DBDriver {
	case db.DriverPostgres, db.DriverMySQL, db.DriverSQLite:
	default:
		return ServiceConfig{}, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
	if cfg.TokenTTL <= 0 {
		return ServiceConfig{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	return ServiceConfig{Config: cfg}, nil
}
