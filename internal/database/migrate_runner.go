package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"estately/internal/middleware"

	"gorm.io/gorm"
)

// MigrationLog is one row of migration_logs.
type MigrationLog struct {
	Version   int       `gorm:"primaryKey;autoIncrement:false"`
	Name      string    `gorm:"size:255"`
	AppliedAt time.Time `gorm:"autoCreateTime"`
}

func (MigrationLog) TableName() string {
	return "migration_logs"
}

// MigrationStore records which embedded migrations a database has applied.
// A missing migration_logs table reads as nothing applied.
type MigrationStore interface {
	Applied(ctx context.Context) ([]MigrationLog, error)
	Latest(ctx context.Context) (int, error)
	Apply(ctx context.Context, m Migration) error
	Revert(ctx context.Context, m Migration) error
}

type migrationStore struct {
	db *gorm.DB
}

func NewMigrationStore(db *gorm.DB) MigrationStore {
	return &migrationStore{db: db}
}

func (s *migrationStore) Applied(ctx context.Context) ([]MigrationLog, error) {
	var logs []MigrationLog
	err := s.db.WithContext(ctx).Order("version ASC").Find(&logs).Error
	if isMissingTableError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read migration_logs: %w", err)
	}
	return logs, nil
}

func (s *migrationStore) Latest(ctx context.Context) (int, error) {
	var version int
	err := s.db.WithContext(ctx).Model(&MigrationLog{}).Select("COALESCE(MAX(version), 0)").Scan(&version).Error
	if isMissingTableError(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read latest migration: %w", err)
	}
	return version, nil
}

// Apply runs the up script and logs the version in one transaction.
func (s *migrationStore) Apply(ctx context.Context, m Migration) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.UpScript).Error; err != nil {
			return fmt.Errorf("apply %s: %w", m.String(), err)
		}
		if err := tx.Create(&MigrationLog{Version: m.Version, Name: m.Name}).Error; err != nil {
			return fmt.Errorf("log %s: %w", m.String(), err)
		}
		return nil
	})
}

// Revert runs the down script and drops the log row in one transaction.
func (s *migrationStore) Revert(ctx context.Context, m Migration) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.DownScript).Error; err != nil {
			return fmt.Errorf("revert %s: %w", m.String(), err)
		}
		if err := tx.Where("version = ?", m.Version).Delete(&MigrationLog{}).Error; err != nil {
			return fmt.Errorf("unlog %s: %w", m.String(), err)
		}
		return nil
	})
}

func isMissingTableError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return (strings.Contains(msg, "relation") && strings.Contains(msg, "does not exist")) ||
		strings.Contains(msg, "no such table")
}

const migrationLogsDDL = `
CREATE TABLE IF NOT EXISTS migration_logs (
	version BIGINT PRIMARY KEY,
	name VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// MigrateUp applies every pending embedded migration in version order and
// returns the ones it applied. It refuses to run against a database that has
// versions this build does not ship.
func MigrateUp(ctx context.Context, db *gorm.DB) ([]Migration, error) {
	if err := db.WithContext(ctx).Exec(migrationLogsDDL).Error; err != nil {
		return nil, fmt.Errorf("ensure migration_logs: %w", err)
	}

	store := NewMigrationStore(db)
	applied, err := store.Applied(ctx)
	if err != nil {
		return nil, err
	}
	if unknown := unknownVersions(applied); len(unknown) > 0 {
		return nil, fmt.Errorf("database has migrations this build does not ship: %s (roll back with the newer binary)", strings.Join(unknown, ", "))
	}

	var done []Migration
	for _, m := range pendingMigrations(applied) {
		if err := store.Apply(ctx, m); err != nil {
			return done, err
		}
		middleware.Logger.Info("Migration applied", slog.Int("version", m.Version), slog.String("name", m.Name))
		done = append(done, m)
	}
	return done, nil
}

// MigrateDown reverts the latest applied migration. A non-zero version must
// name that migration; older ones cannot be reverted out of order.
func MigrateDown(ctx context.Context, db *gorm.DB, version int) (*Migration, error) {
	store := NewMigrationStore(db)
	latest, err := store.Latest(ctx)
	if err != nil {
		return nil, err
	}
	if latest == 0 {
		return nil, errors.New("no applied migrations to roll back")
	}
	if version == 0 {
		version = latest
	}
	if version != latest {
		return nil, fmt.Errorf("migration %06d is not the latest applied (%06d)", version, latest)
	}

	m := GetMigrationByVersion(version)
	if m == nil {
		return nil, fmt.Errorf("migration %06d is not shipped with this build", version)
	}
	if err := store.Revert(ctx, *m); err != nil {
		return nil, err
	}
	middleware.Logger.Info("Migration rolled back", slog.Int("version", m.Version), slog.String("name", m.Name))
	return m, nil
}

func pendingMigrations(applied []MigrationLog) []Migration {
	done := make(map[int]bool, len(applied))
	for _, l := range applied {
		done[l.Version] = true
	}
	var pending []Migration
	for _, m := range GetMigrations() {
		if !done[m.Version] {
			pending = append(pending, m)
		}
	}
	return pending
}

// unknownVersions returns the applied versions with no embedded migration, formatted NNNNNN.
func unknownVersions(applied []MigrationLog) []string {
	var unknown []string
	for _, l := range applied {
		if GetMigrationByVersion(l.Version) == nil {
			unknown = append(unknown, fmt.Sprintf("%06d", l.Version))
		}
	}
	return unknown
}
