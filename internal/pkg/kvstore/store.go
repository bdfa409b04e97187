// Package kvstore is the persistence boundary: an opaque string store keyed
// by name, with atomic multi-key batches.
//
// Every key carries a version that increments on each write. A batch op may
// pin the version it expects; if any pinned version moved, the whole batch
// is rejected with ErrVersionConflict and nothing is written.
package kvstore

import (
	"context"
	"errors"
	"time"
)

// Driver identifies a concrete store implementation.
type Driver string

const (
	DriverMemory   Driver = "memory"
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverSpanner  Driver = "spanner"
)

var (
	// ErrNotFound is returned by Get when the key is absent.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrVersionConflict is returned by Apply when a pinned version does not match.
	ErrVersionConflict = errors.New("kvstore: version conflict")
)

// Entry is a stored value with its bookkeeping.
type Entry struct {
	Key       string
	Value     string
	Version   int64
	UpdatedAt time.Time
}

// OpKind selects what an Op does.
type OpKind int

const (
	OpSet OpKind = iota
	OpRemove
)

// Op is one write inside a batch.
type Op struct {
	Kind  OpKind
	Key   string
	Value string

	// When CheckVersion is set the stored version must equal ExpectedVersion.
	// ExpectedVersion 0 means the key must be absent.
	CheckVersion    bool
	ExpectedVersion int64
}

// Set returns an op writing value under key.
func Set(key, value string) Op {
	return Op{Kind: OpSet, Key: key, Value: value}
}

// Remove returns an op deleting key.
func Remove(key string) Op {
	return Op{Kind: OpRemove, Key: key}
}

// IfVersion pins the op to the version the caller read.
func (o Op) IfVersion(version int64) Op {
	o.CheckVersion = true
	o.ExpectedVersion = version
	return o
}

// Store is implemented by every backend.
type Store interface {
	// Get returns the entry for key or ErrNotFound.
	Get(ctx context.Context, key string) (Entry, error)
	// List returns every entry whose key starts with prefix, ordered by key.
	List(ctx context.Context, prefix string) ([]Entry, error)
	// Apply writes all ops atomically.
	Apply(ctx context.Context, ops []Op) error
	Driver() Driver
	Close() error
}

// GetOrEmpty reads key and treats an absent key as an empty value at version 0.
func GetOrEmpty(ctx context.Context, s Store, key string) (Entry, error) {
	e, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return Entry{Key: key}, nil
	}
	return e, err
}

// checkVersion reports whether op may proceed against the current version
// (0 when the key is absent).
func checkVersion(op Op, current int64) bool {
	return !op.CheckVersion || op.ExpectedVersion == current
}
