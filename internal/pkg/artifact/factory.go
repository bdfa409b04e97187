package artifact

import (
	"context"
	"fmt"
)

// Config selects and configures a Sink.
type Config struct {
	Driver Driver
	FSRoot string
	S3     S3Config
}

// Open builds the Sink named by cfg.Driver (default fs).
func Open(ctx context.Context, cfg Config) (Sink, error) {
	switch cfg.Driver {
	case "", DriverFilesystem:
		return NewFilesystem(cfg.FSRoot)
	case DriverMemory:
		return NewMemory(), nil
	case DriverS3:
		return NewS3(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown artifact driver %s", cfg.Driver)
	}
}
