// Copyright (c) 2026 Comiking. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package migration wraps golang-migrate around the catalog schema embedded
// in this binary.
//
// # Architecture
//
// This package belongs to the Infrastructure layer. The SQL files under sql/
// are compiled in through an iofs source, so the API server and the catalogctl
// tool apply exactly the schema they were built with.
package migration

import (
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// pgx5 driver registers "pgx5" scheme for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed sql/*.sql
var files embed.FS

// Migrator applies the embedded catalog migrations to one database.
type Migrator struct {
	migrate *migrate.Migrate
	logger  *slog.Logger
}

// New opens a migrator against dsn.
//
// # Parameters
//   - dsn: A libpq-compatible DSN or postgres:// URL.
//   - logger: Structured logger for migration events.
func New(dsn string, logger *slog.Logger) (*Migrator, error) {
	source, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("migration: failed to open embedded source: %w", err)
	}

	instance, err := migrate.NewWithSourceInstance("iofs", source, convertToPgx5DSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("migration: failed to initialize: %w", err)
	}
	instance.Log = &migrateLogger{logger: logger}

	return &Migrator{migrate: instance, logger: logger}, nil
}

// Close releases the source and database handles.
func (migrator *Migrator) Close() {
	sourceError, dbError := migrator.migrate.Close()
	if sourceError != nil {
		migrator.logger.Error("migration_source_close_failed", slog.Any("error", sourceError))
	}
	if dbError != nil {
		migrator.logger.Error("migration_db_close_failed", slog.Any("error", dbError))
	}
}

// Version returns the applied version. A fresh database reports 0.
func (migrator *Migrator) Version() (uint, bool, error) {
	version, dirty, err := migrator.migrate.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("migration: failed to get current version: %w", err)
	}
	return version, dirty, nil
}

// Up applies all pending migrations. A database already at head is not an error.
func (migrator *Migrator) Up() error {
	currentVersion, isDirty, err := migrator.Version()
	if err != nil {
		return err
	}
	if isDirty {
		return fmt.Errorf("migration: database is in a dirty state at version %d (manual intervention required)", currentVersion)
	}

	migrator.logger.Info("migration_started", slog.Int("current_version", int(currentVersion)))

	if err := migrator.migrate.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			migrator.logger.Info("migration_already_up_to_date")
			return nil
		}
		return fmt.Errorf("migration: up failed: %w", err)
	}

	newVersion, _, _ := migrator.Version()
	migrator.logger.Info("migration_successful",
		slog.Int("from_version", int(currentVersion)),
		slog.Int("to_version", int(newVersion)),
	)

	return nil
}

// Down rolls back every applied migration.
func (migrator *Migrator) Down() error {
	if err := migrator.migrate.Down(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			migrator.logger.Info("migration_nothing_to_revert")
			return nil
		}
		return fmt.Errorf("migration: down failed: %w", err)
	}

	migrator.logger.Info("migration_reverted")
	return nil
}

// RunUp opens a migrator, applies pending migrations and closes it.
func RunUp(dsn string, logger *slog.Logger) error {
	migrator, err := New(dsn, logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Up()
}

// convertToPgx5DSN ensures the DSN uses the pgx5:// scheme required by golang-migrate/v4.
func convertToPgx5DSN(dsn string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if rest, ok := strings.CutPrefix(dsn, prefix); ok {
			return "pgx5://" + rest
		}
	}
	return dsn
}

// migrateLogger adapts golang-migrate's logger interface to slog.
type migrateLogger struct {
	logger *slog.Logger
}

// Printf implements migrate.Logger.
func (l *migrateLogger) Printf(format string, args ...any) {
	l.logger.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

// Verbose implements migrate.Logger.
func (l *migrateLogger) Verbose() bool {
	return false
}
