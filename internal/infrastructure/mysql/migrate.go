package mysql

import (
	"embed"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"

	"bakerydash/internal/config"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

func newMigrator(cfg config.DatabaseConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("loading migrations: %w", err)
	}

	dc, err := mysql.ParseDSN(DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("parsing dsn: %w", err)
	}
	dc.MultiStatements = true

	m, err := migrate.NewWithSourceInstance("iofs", src, "mysql://"+dc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("initializing migrations: %w", err)
	}
	return m, nil
}

// MigrateUp applies every pending migration.
func MigrateUp(cfg config.DatabaseConfig, logger *zap.Logger) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Info("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("applying migrations: %w", err)
	}

	version, err := appliedVersion(m)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", zap.Uint("version", version))
	return nil
}

type versioner interface {
	Version() (version uint, dirty bool, err error)
}

// appliedVersion returns the current schema version. A dirty schema means a
// migration failed halfway and needs a manual force before running again.
func appliedVersion(v versioner) (uint, error) {
	version, dirty, err := v.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("schema version %d is dirty", version)
	}
	return version, nil
}

// MigrateDown rolls back every applied migration.
func MigrateDown(cfg config.DatabaseConfig, logger *zap.Logger) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("rolling back migrations: %w", err)
	}

	logger.Info("migrations rolled back")
	return nil
}

// Schema returns the statements of the initial migration, split per table.
// Tests use it to create the tables without going through the migrator.
func Schema() ([]string, error) {
	data, err := migrationFiles.ReadFile("migrations/000001_init.up.sql")
	if err != nil {
		return nil, err
	}
	return splitStatements(string(data)), nil
}
