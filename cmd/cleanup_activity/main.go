package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/light-bringer/ordertally-service/internal/app/catalog/repo"
	"github.com/light-bringer/ordertally-service/internal/config"
	"github.com/light-bringer/ordertally-service/internal/pkg/kvstore"
)

// Deletes are applied in chunks to stay under per-commit mutation limits.
const batchSize = 500

// Options for the activity log cleanup job.
type Options struct {
	RetentionDays int
	DryRun        bool
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	opts := Options{}
	flag.IntVar(&opts.RetentionDays, "retention", int(cfg.ActivityRetention/(24*time.Hour)), "Retention days for activity events")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	ctx := context.Background()

	if err := cleanupActivity(ctx, cfg.Store, opts); err != nil {
		log.Fatalf("Cleanup failed: %v", err)
	}

	log.Println("Cleanup completed successfully")
}

func cleanupActivity(ctx context.Context, storeCfg kvstore.Config, opts Options) error {
	store, err := kvstore.Open(ctx, storeCfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", storeCfg.Driver, err)
	}
	defer store.Close()

	cutoff := time.Now().UTC().AddDate(0, 0, -opts.RetentionDays)

	log.Printf("Starting activity cleanup...")
	log.Printf("  Cutoff: %s (retention: %d days)", cutoff.Format(time.RFC3339), opts.RetentionDays)
	log.Printf("  Dry run: %v", opts.DryRun)

	deleted, err := deleteBefore(ctx, store, cutoff, opts.DryRun)
	if err != nil {
		return err
	}
	if opts.DryRun {
		log.Printf("DRY RUN: Would delete %d events", deleted)
		log.Println("Run without --dry-run to actually delete events")
		return nil
	}
	log.Printf("Successfully deleted %d events", deleted)
	return nil
}

// deleteBefore removes activity events older than cutoff and returns how
// many were (or, in a dry run, would be) deleted.
func deleteBefore(ctx context.Context, store kvstore.Store, cutoff time.Time, dryRun bool) (int, error) {
	ops, err := repo.NewActivityRepo(store).DeleteBeforeOps(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list events: %w", err)
	}
	if len(ops) == 0 || dryRun {
		return len(ops), nil
	}

	for start := 0; start < len(ops); start += batchSize {
		end := min(start+batchSize, len(ops))
		if err := store.Apply(ctx, ops[start:end]); err != nil {
			return start, fmt.Errorf("failed to delete events: %w", err)
		}
	}
	return len(ops), nil
}
