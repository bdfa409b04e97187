package kvstore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/ordertally-service/internal/models/m_kv"
	"github.com/light-bringer/ordertally-service/internal/pkg/query"
)

// Spanner is a Store backed by the kv_entries table in Cloud Spanner.
// The table is created by cmd/migrate.
type Spanner struct {
	client *spanner.Client
	model  *m_kv.Model
}

// OpenSpanner connects to the database named by db
// (projects/P/instances/I/databases/D). SPANNER_EMULATOR_HOST is honoured
// by the client library.
func OpenSpanner(ctx context.Context, db string) (*Spanner, error) {
	client, err := spanner.NewClient(ctx, db)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}
	return NewSpanner(client), nil
}

// NewSpanner wraps an existing client.
func NewSpanner(client *spanner.Client) *Spanner {
	return &Spanner{client: client, model: m_kv.NewModel()}
}

func (s *Spanner) Get(ctx context.Context, key string) (Entry, error) {
	row, err := s.client.Single().ReadRow(ctx, m_kv.TableName, spanner.Key{key}, m_kv.Columns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("failed to read %q: %w", key, err)
	}

	var data m_kv.Data
	if err := row.ToStruct(&data); err != nil {
		return Entry{}, fmt.Errorf("failed to parse %q: %w", key, err)
	}
	return rowToEntry(data), nil
}

func (s *Spanner) List(ctx context.Context, prefix string) ([]Entry, error) {
	stmt := query.From(m_kv.TableName).
		Select(m_kv.Columns...).
		Where(query.HasPrefix(m_kv.Key, prefix)).
		OrderBy(m_kv.Key, query.Asc).
		Build()

	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]Entry, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list %q: %w", prefix, err)
		}

		var data m_kv.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse row: %w", err)
		}
		out = append(out, rowToEntry(data))
	}
	return out, nil
}

// Apply runs the batch in one read-write transaction. Current versions are
// read inside the transaction so pinned versions are checked under Spanner's
// locks.
func (s *Spanner) Apply(ctx context.Context, ops []Op) error {
	if len(ops) == 0 {
		return nil
	}

	conflict := false
	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		conflict = false
		versions, err := s.readVersions(ctx, txn, ops)
		if err != nil {
			return err
		}

		muts := make([]*spanner.Mutation, 0, len(ops))
		for _, op := range ops {
			current := versions[op.Key]
			if !checkVersion(op, current) {
				conflict = true
				return ErrVersionConflict
			}
			switch op.Kind {
			case OpSet:
				muts = append(muts, s.model.UpsertMut(op.Key, op.Value, current+1))
				versions[op.Key] = current + 1
			case OpRemove:
				muts = append(muts, s.model.DeleteMut(op.Key))
				versions[op.Key] = 0
			}
		}
		return txn.BufferWrite(muts)
	})
	if conflict || errors.Is(err, ErrVersionConflict) {
		return ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to apply batch: %w", err)
	}
	return nil
}

func (s *Spanner) readVersions(ctx context.Context, txn *spanner.ReadWriteTransaction, ops []Op) (map[string]int64, error) {
	keys := make([]spanner.KeySet, 0, len(ops))
	seen := make(map[string]bool, len(ops))
	for _, op := range ops {
		if !seen[op.Key] {
			seen[op.Key] = true
			keys = append(keys, spanner.Key{op.Key})
		}
	}

	versions := make(map[string]int64, len(seen))
	iter := txn.Read(ctx, m_kv.TableName, spanner.KeySets(keys...), []string{m_kv.Key, m_kv.Version})
	defer iter.Stop()
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read versions: %w", err)
		}
		var key string
		var version int64
		if err := row.Columns(&key, &version); err != nil {
			return nil, fmt.Errorf("failed to parse version: %w", err)
		}
		versions[key] = version
	}
	return versions, nil
}

func (s *Spanner) Driver() Driver { return DriverSpanner }

func (s *Spanner) Close() error {
	s.client.Close()
	return nil
}
