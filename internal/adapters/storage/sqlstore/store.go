// Package sqlstore implementa los repositorios de clients, pets, visits y el
// journal sobre database/sql. SQLite (modernc) es el backend por defecto;
// Postgres (pgx) se usa con el mismo esquema.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"vet-clinic/internal/platform/logger"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "pgx"
)

// timestampLayout coincide con datetime('now') de SQLite.
const timestampLayout = "2006-01-02 15:04:05"

type Store struct {
	db      *sql.DB
	dialect Dialect
	log     logger.Logger
}

// Open abre la base según driver ("sqlite" o "pgx") y verifica la conexión.
func Open(ctx context.Context, driver, dsn string, log logger.Logger) (*Store, error) {
	if log == nil {
		log = logger.Nop()
	}

	var (
		db  *sql.DB
		err error
	)
	switch Dialect(driver) {
	case SQLite:
		db, err = openSQLite(dsn)
	case Postgres:
		db, err = openPostgres(dsn)
	default:
		return nil, fmt.Errorf("sqlstore: unsupported driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: ping: %w", err)
	}

	log.Debug("database opened", map[string]any{"driver": driver})
	return New(db, Dialect(driver), log), nil
}

// New envuelve una conexión ya abierta. Los tests lo usan con sqlmock.
func New(db *sql.DB, dialect Dialect, log logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{db: db, dialect: dialect, log: log}
}

func openSQLite(dsn string) (*sql.DB, error) {
	dsn, memory, err := sqliteDSN(dsn)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if memory {
		// cada conexión a :memory: es una base distinta
		db.SetMaxOpenConns(1)
	}
	return db, nil
}

func openPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// sqliteDSN convierte una ruta en un DSN de modernc con claves foráneas,
// busy_timeout y transacciones IMMEDIATE. Crea el directorio si falta.
func sqliteDSN(dsn string) (string, bool, error) {
	path, params, _ := strings.Cut(strings.TrimPrefix(strings.TrimSpace(dsn), "file:"), "?")
	if path == "" {
		return "", false, errors.New("sqlstore: empty sqlite path")
	}

	memory := path == ":memory:"
	if !memory {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return "", false, fmt.Errorf("sqlstore: create db dir: %w", err)
		}
	}

	opts := []string{}
	if params != "" {
		opts = append(opts, params)
	}
	if !strings.Contains(params, "foreign_keys") {
		opts = append(opts, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(params, "busy_timeout") {
		opts = append(opts, "_pragma=busy_timeout(5000)")
	}
	if !strings.Contains(params, "_txlock") {
		opts = append(opts, "_txlock=immediate")
	}
	return "file:" + path + "?" + strings.Join(opts, "&"), memory, nil
}

func (s *Store) DB() *sql.DB      { return s.db }
func (s *Store) Dialect() Dialect { return s.dialect }
func (s *Store) Close() error     { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// rebind cambia los placeholders "?" por "$n" en Postgres.
// Las consultas de este paquete no llevan "?" dentro de literales.
func (s *Store) rebind(query string) string {
	if s.dialect != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(timestampLayout)
}

func parseTime(s string) time.Time {
	t, err := time.ParseInLocation(timestampLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullable guarda NULL para textos opcionales vacíos.
func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func rowsAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}
