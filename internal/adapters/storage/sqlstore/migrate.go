package sqlstore

import (
	"context"
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/pressly/goose/v3"

	"vet-clinic/internal/platform/logger"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate aplica las migraciones pendientes. Es idempotente y segura sobre
// bases creadas antes de usar goose: las tablas se crean con IF NOT EXISTS.
func (s *Store) Migrate(ctx context.Context) error {
	gooseDialect, dir := "sqlite3", "migrations/sqlite"
	if s.dialect == Postgres {
		gooseDialect, dir = "postgres", "migrations/postgres"
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: s.log.With(map[string]any{"component": "migrations"})})
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("sqlstore: goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, s.db, dir); err != nil {
		return fmt.Errorf("sqlstore: migrate: %w", err)
	}
	return nil
}

type gooseLogger struct {
	log logger.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.log.Error(strings.TrimSpace(fmt.Sprintf(format, v...)), nil)
	os.Exit(1)
}
