package database

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"go-hospital-encounter/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
)

type Migrator struct {
	m *migrate.Migrate
}

// NewMigrator opens the migration source directory and the target database.
func NewMigrator(cfg config.DBConfig, dir string) (*Migrator, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}

	m, err := migrate.New("file://"+filepath.ToSlash(absDir), MigrationURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	return &Migrator{m: m}, nil
}

// MigrationURL renders the pgx5 connection URL golang-migrate expects.
func MigrationURL(cfg config.DBConfig) string {
	u := url.URL{
		Scheme:   "pgx5",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Up applies every pending migration. An up-to-date schema is not an error.
func (mg *Migrator) Up() error {
	if err := mg.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	mg.logVersion()
	return nil
}

// Down rolls back the given number of steps.
func (mg *Migrator) Down(steps int) error {
	if steps < 1 {
		steps = 1
	}
	if err := mg.m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration down failed: %w", err)
	}
	mg.logVersion()
	return nil
}

func (mg *Migrator) Close() {
	srcErr, dbErr := mg.m.Close()
	if srcErr != nil {
		logrus.Warnf("Failed to close migration source: %+v", srcErr)
	}
	if dbErr != nil {
		logrus.Warnf("Failed to close migration database: %+v", dbErr)
	}
}

func (mg *Migrator) logVersion() {
	version, dirty, err := mg.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logrus.Info("Database has no applied migrations")
		return
	}
	if err != nil {
		logrus.Warnf("Failed to read migration version: %+v", err)
		return
	}
	logrus.WithFields(logrus.Fields{"version": version, "dirty": dirty}).Info("Migration version")
}
