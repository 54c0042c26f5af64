package migrations

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
)

//go:embed sql/*.sql
var files embed.FS

// Runner applies the embedded schema to the database at url.
type Runner struct {
	url string
	log *zap.Logger

	mu sync.Mutex
}

func NewRunner(url string, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{url: url, log: log}
}

func (r *Runner) open() (*migrate.Migrate, error) {
	src, err := iofs.New(files, "sql")
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, r.url)
	if err != nil {
		return nil, fmt.Errorf("init migrate: %w", err)
	}
	return m, nil
}

func (r *Runner) Up() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.open()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	version, dirty, _ := m.Version()
	r.log.Info("✅ Schema is up to date", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func (r *Runner) Down() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, err := r.open()
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Setup is the one-shot repair used when a query reports missing tables.
func (r *Runner) Setup(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.log.Warn("🛠  Schema missing, running setup")
	return r.Up()
}
