package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"estately/internal/config"
	"estately/internal/middleware"

	"gorm.io/gorm"
)

// SchemaMode is the DB_SCHEMA_MODE setting.
//
//   - sql: embedded SQL migrations only.
//   - auto: GORM AutoMigrate only. Refused in production and staging unless
//     DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE is set.
//   - hybrid (default): SQL migrations, then outside production any model table
//     still missing is created. Existing tables are never altered, so columns the
//     migrations define (NUMERIC prices, partial indexes) keep their SQL shape.
type SchemaMode string

const (
	SchemaModeHybrid SchemaMode = "hybrid"
	SchemaModeSQL    SchemaMode = "sql"
	SchemaModeAuto   SchemaMode = "auto"
)

// schemaPlan is what ApplySchema does for one configuration.
type schemaPlan struct {
	mode          SchemaMode
	sql           bool
	autoMigrate   bool
	createMissing bool
}

// TableStatus reports whether a model's table exists.
type TableStatus struct {
	Name   string
	Exists bool
}

// SchemaStatus is a read-only view of the database against the embedded schema.
type SchemaStatus struct {
	Mode          SchemaMode
	Environment   string
	RunsSQL       bool
	AutoMigrates  bool
	CreatesTables bool
	Applied       []MigrationLog
	Pending       []Migration
	Tables        []TableStatus
}

// MissingTables lists the model tables that do not exist yet.
func (s *SchemaStatus) MissingTables() []string {
	var missing []string
	for _, t := range s.Tables {
		if !t.Exists {
			missing = append(missing, t.Name)
		}
	}
	return missing
}

func planSchema(cfg *config.Config) (schemaPlan, error) {
	mode := SchemaMode(strings.ToLower(strings.TrimSpace(cfg.DBSchemaMode)))
	if mode == "" {
		mode = SchemaModeHybrid
	}
	env := strings.ToLower(strings.TrimSpace(cfg.Env))
	guarded := env == "production" || env == "prod" || env == "staging" || env == "stage"

	switch mode {
	case SchemaModeSQL:
		return schemaPlan{mode: mode, sql: true}, nil
	case SchemaModeAuto:
		if guarded && !cfg.DBAutoMigrateAllowDestructive {
			return schemaPlan{}, fmt.Errorf("DB_SCHEMA_MODE=auto in %q requires DB_AUTOMIGRATE_ALLOW_DESTRUCTIVE=true", cfg.Env)
		}
		return schemaPlan{mode: mode, autoMigrate: true}, nil
	case SchemaModeHybrid:
		return schemaPlan{mode: mode, sql: true, createMissing: !guarded}, nil
	}
	return schemaPlan{}, fmt.Errorf("unsupported DB_SCHEMA_MODE %q", mode)
}

// ApplySchema brings db up to date according to DB_SCHEMA_MODE.
func ApplySchema(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	plan, err := planSchema(cfg)
	if err != nil {
		return err
	}

	if plan.sql {
		if _, err := MigrateUp(ctx, db); err != nil {
			return fmt.Errorf("run sql migrations: %w", err)
		}
	}

	switch {
	case plan.autoMigrate:
		if cfg.DBAutoMigrateAllowDestructive {
			middleware.Logger.Warn("AutoMigrate may alter columns defined by SQL migrations", slog.String("env", cfg.Env))
		}
		middleware.Logger.Info("Running GORM AutoMigrate", slog.String("env", cfg.Env))
		if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	case plan.createMissing:
		if err := createMissingTables(ctx, db); err != nil {
			return fmt.Errorf("create missing tables: %w", err)
		}
	}
	return nil
}

// createMissingTables creates the tables of models no migration has created.
func createMissingTables(ctx context.Context, db *gorm.DB) error {
	m := db.WithContext(ctx).Migrator()
	for _, model := range PersistentModels() {
		if m.HasTable(model) {
			continue
		}
		name, err := tableName(db, model)
		if err != nil {
			return err
		}
		middleware.Logger.Info("Creating table without a migration", slog.String("table", name))
		if err := m.CreateTable(model); err != nil {
			return fmt.Errorf("create %s: %w", name, err)
		}
	}
	return nil
}

func tableName(db *gorm.DB, model any) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", err
	}
	return stmt.Schema.Table, nil
}

// GetSchemaStatus reports migrations and model tables without changing anything.
func GetSchemaStatus(ctx context.Context, db *gorm.DB, cfg *config.Config) (*SchemaStatus, error) {
	plan, err := planSchema(cfg)
	if err != nil {
		return nil, err
	}

	applied, err := NewMigrationStore(db).Applied(ctx)
	if err != nil {
		return nil, err
	}

	status := &SchemaStatus{
		Mode:          plan.mode,
		Environment:   cfg.Env,
		RunsSQL:       plan.sql,
		AutoMigrates:  plan.autoMigrate,
		CreatesTables: plan.createMissing,
		Applied:       applied,
		Pending:       pendingMigrations(applied),
	}

	m := db.WithContext(ctx).Migrator()
	for _, model := range PersistentModels() {
		name, err := tableName(db, model)
		if err != nil {
			return nil, err
		}
		status.Tables = append(status.Tables, TableStatus{Name: name, Exists: m.HasTable(model)})
	}
	return status, nil
}
