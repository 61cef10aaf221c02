package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one embedded schema change.
type Migration struct {
	Version string
	Name    string
	SQL     string
}

// MigrationDB is the subset of *pgxpool.Pool used to migrate.
type MigrationDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

const createVersionTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Migrations returns the embedded migrations ordered by version.
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		file := entry.Name()
		version, name, ok := strings.Cut(strings.TrimSuffix(file, ".sql"), "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: name must be <version>_<name>.sql", file)
		}

		body, err := migrationFiles.ReadFile(path.Join("migrations", file))
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, Migration{Version: version, Name: name, SQL: string(body)})
	}
	return migrations, nil
}

// AppliedVersions returns the versions recorded in schema_migrations.
func AppliedVersions(ctx context.Context, db MigrationDB) (map[string]bool, error) {
	if _, err := db.Exec(ctx, createVersionTable); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	rows, err := db.Query(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

// Migrate applies every pending migration, each in its own transaction, and
// returns the ones it applied.
func Migrate(ctx context.Context, db MigrationDB, logger logrus.FieldLogger) ([]Migration, error) {
	migrations, err := Migrations()
	if err != nil {
		return nil, err
	}

	applied, err := AppliedVersions(ctx, db)
	if err != nil {
		return nil, err
	}

	var done []Migration
	for _, m := range migrations {
		if applied[m.Version] {
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return done, fmt.Errorf("migration %s_%s: %w", m.Version, m.Name, err)
		}
		logger.WithFields(logrus.Fields{"version": m.Version, "name": m.Name}).Info("migration applied")
		done = append(done, m)
	}
	return done, nil
}

func apply(ctx context.Context, db MigrationDB, m Migration) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, m.SQL); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", m.Version, m.Name); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}
