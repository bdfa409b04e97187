package kvstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/light-bringer/ordertally-service/internal/models/m_kv"
)

// SQL is a Store backed by a single kv_entries table reached through gorm.
type SQL struct {
	db     *gorm.DB
	driver Driver
}

// OpenSQLite opens (creating if needed) a SQLite database file. The driver
// is CGO-free. Use ":memory:" for a throwaway database.
func OpenSQLite(path string, debug bool) (*SQL, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	// SQLite allows one writer; a single connection also keeps ":memory:" shared.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return newSQL(db, DriverSQLite)
}

// OpenPostgres connects to Postgres using a DSN.
func OpenPostgres(dsn string, debug bool) (*SQL, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return newSQL(db, DriverPostgres)
}

func gormConfig(debug bool) *gorm.Config {
	level := logger.Silent
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger: logger.Default.LogMode(level),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func newSQL(db *gorm.DB, driver Driver) (*SQL, error) {
	s := &SQL{db: db, driver: driver}
	if err := s.Migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Migrate creates or updates the kv_entries table.
func (s *SQL) Migrate() error {
	if err := s.db.AutoMigrate(&m_kv.Data{}); err != nil {
		return fmt.Errorf("failed to migrate %s: %w", m_kv.TableName, err)
	}
	return nil
}

func (s *SQL) Get(ctx context.Context, key string) (Entry, error) {
	var row m_kv.Data
	err := s.db.WithContext(ctx).Where(m_kv.Key+" = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read %q: %w", key, err)
	}
	return rowToEntry(row), nil
}

func (s *SQL) List(ctx context.Context, prefix string) ([]Entry, error) {
	var rows []m_kv.Data
	err := s.db.WithContext(ctx).
		Where(m_kv.Key+" LIKE ?", prefix+"%").
		Order(m_kv.Key).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %q: %w", prefix, err)
	}

	// LIKE treats '_' and '%' as wildcards, so re-check the prefix literally.
	out := make([]Entry, 0, len(rows))
	for _, row := range rows {
		if strings.HasPrefix(row.Key, prefix) {
			out = append(out, rowToEntry(row))
		}
	}
	return out, nil
}

func (s *SQL) Apply(ctx context.Context, ops []Op) error {
	if len(ops) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		for _, op := range ops {
			if err := applySQLOp(tx, op, now); err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, ErrVersionConflict) {
		return ErrVersionConflict
	}
	if err != nil {
		return fmt.Errorf("failed to apply batch: %w", err)
	}
	return nil
}

func applySQLOp(tx *gorm.DB, op Op, now time.Time) error {
	switch op.Kind {
	case OpRemove:
		if op.CheckVersion {
			current, err := currentVersion(tx, op.Key)
			if err != nil {
				return err
			}
			if current != op.ExpectedVersion {
				return ErrVersionConflict
			}
		}
		return tx.Where(m_kv.Key+" = ?", op.Key).Delete(&m_kv.Data{}).Error

	case OpSet:
		if !op.CheckVersion {
			row := m_kv.Data{Key: op.Key, Value: op.Value, Version: 1, UpdatedAt: now}
			return tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: m_kv.Key}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					m_kv.Value:     op.Value,
					m_kv.Version:   gorm.Expr(m_kv.TableName + "." + m_kv.Version + " + 1"),
					m_kv.UpdatedAt: now,
				}),
			}).Create(&row).Error
		}

		if op.ExpectedVersion == 0 {
			// The key must still be absent. A row inserted by a concurrent
			// writer turns the insert into a no-op instead of a unique-key error.
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&m_kv.Data{Key: op.Key, Value: op.Value, Version: 1, UpdatedAt: now})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrVersionConflict
			}
			return nil
		}

		res := tx.Model(&m_kv.Data{}).
			Where(m_kv.Key+" = ? AND "+m_kv.Version+" = ?", op.Key, op.ExpectedVersion).
			Updates(map[string]interface{}{
				m_kv.Value:     op.Value,
				m_kv.Version:   op.ExpectedVersion + 1,
				m_kv.UpdatedAt: now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	}
	return fmt.Errorf("unknown op kind %d", op.Kind)
}

func (s *SQL) Driver() Driver { return s.driver }

func (s *SQL) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func rowToEntry(row m_kv.Data) Entry {
	return Entry{Key: row.Key, Value: row.Value, Version: row.Version, UpdatedAt: row.UpdatedAt}
}

// currentVersion returns the stored version of key, 0 when absent.
func currentVersion(tx *gorm.DB, key string) (int64, error) {
	var row m_kv.Data
	err := tx.Select(m_kv.Version).Where(m_kv.Key+" = ?", key).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return row.Version, nil
}
