// Package artifact stores rendered export documents so they can be fetched
// again after the download that produced them.
package artifact

import (
	"context"
	"errors"
	"time"
)

// Driver identifies a concrete Sink implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"
	DriverMemory     Driver = "memory"
	DriverS3         Driver = "s3"
)

// ErrNotFound is returned by Get for an unknown key.
var ErrNotFound = errors.New("artifact: not found")

// Info describes a stored artifact.
type Info struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Sink is implemented by every artifact backend. Put overwrites.
type Sink interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, []byte, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}
