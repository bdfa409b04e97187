package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/light-bringer/ordertally-service/internal/config"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

var (
	driver     = flag.String("driver", "", "Store driver to migrate (sqlite, postgres, spanner); defaults to STORE_DRIVER")
	migrateDir = flag.String("migrations", "migrations", "Directory containing Spanner DDL files")
)

func main() {
	flag.Parse()

	if host := os.Getenv("SPANNER_EMULATOR_HOST"); host != "" {
		log.Printf("Using Spanner emulator at %s", host)
	}

	if err := run(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migrations completed successfully!")
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *driver != "" {
		cfg.Store.Driver = kvstore.Driver(*driver)
	}

	switch cfg.Store.Driver {
	case kvstore.DriverSpanner:
		target, err := parseDatabasePath(cfg.Store.SpannerDB)
		if err != nil {
			return err
		}
		return target.migrate(ctx, *migrateDir)
	case kvstore.DriverSQLite, kvstore.DriverPostgres:
		// Opening a SQL store auto-migrates kv_entries.
		log.Printf("Migrating %s store...", cfg.Store.Driver)
		store, err := kvstore.Open(ctx, cfg.Store)
		if err != nil {
			return fmt.Errorf("failed to migrate %s store: %w", cfg.Store.Driver, err)
		}
		return store.Close()
	default:
		return fmt.Errorf("driver %q has no schema to migrate", cfg.Store.Driver)
	}
}
