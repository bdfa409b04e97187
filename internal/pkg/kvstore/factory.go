package kvstore

import (
	"context"
	"fmt"
)

// Config selects and parameterises a backend.
type Config struct {
	Driver      Driver
	SQLitePath  string
	PostgresDSN string
	SpannerDB   string
	Debug       bool
}

// Open constructs the Store named by cfg.Driver.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemory(), nil
	case DriverSQLite:
		return OpenSQLite(cfg.SQLitePath, cfg.Debug)
	case DriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres driver requires a DSN")
		}
		return OpenPostgres(cfg.PostgresDSN, cfg.Debug)
	case DriverSpanner:
		if cfg.SpannerDB == "" {
			return nil, fmt.Errorf("spanner driver requires a database name")
		}
		return OpenSpanner(ctx, cfg.SpannerDB)
	default:
		return nil, fmt.Errorf("unknown kvstore driver %q", cfg.Driver)
	}
}
