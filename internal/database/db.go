package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // Pure Go sqlite driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"diet-planner/internal/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB holds the SQLite handle shared by the food catalog and the plan metrics.
type DB struct {
	SQL *sql.DB
}

// MigrationResult describes the schema state after RunMigrations.
type MigrationResult struct {
	Version uint
	Dirty   bool
	Applied bool
}

// NewDB creates the directory for dbPath, brings the schema up to date and
// opens the connection.
func NewDB(dbPath string, log *logger.Logger) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	res, err := RunMigrations(dbPath)
	if err != nil {
		log.Error("Database migration failed", "path", dbPath, "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	if res.Applied {
		log.Info("Database migrations applied", "path", dbPath, "version", res.Version)
	} else {
		log.Debug("Database schema up to date", "path", dbPath, "version", res.Version)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &DB{SQL: db}, nil
}

func (d *DB) Close() error {
	return d.SQL.Close()
}

// RunMigrations applies the embedded migrations to the SQLite file at
// databasePath and reports the resulting schema version.
func RunMigrations(databasePath string) (MigrationResult, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to create iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+databasePath)
	if err != nil {
		return MigrationResult{}, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	var res MigrationResult
	switch err := m.Up(); {
	case err == nil:
		res.Applied = true
	case errors.Is(err, migrate.ErrNoChange):
	default:
		return MigrationResult{}, fmt.Errorf("failed to apply migrations: %w", err)
	}

	res.Version, res.Dirty, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return MigrationResult{}, fmt.Errorf("failed to read schema version: %w", err)
	}
	return res, nil
}
