// Package config arma la configuración del proceso: defaults, luego un
// archivo .env opcional y por último variables de entorno. Los flags de
// la CLI se aplican encima desde cmd/vetclinic.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"vet-clinic/internal/platform/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "pgx"
)

type Config struct {
	Addr string

	DBDriver string
	DBDSN    string

	LogLevel  logger.Level
	LogFormat logger.Format
	AppName   string

	ShutdownTimeout time.Duration
}

func Default() Config {
	return Config{
		Addr:            ":8080",
		DBDriver:        DriverSQLite,
		DBDSN:           "var/vetclinic.sqlite",
		LogLevel:        logger.Info,
		LogFormat:       logger.FormatText,
		AppName:         "vetclinic",
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load lee envFile (si existe) y el entorno. Un envFile vacío o
// inexistente no es error.
func Load(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	cfg := Default()

	if v := env("ADDR"); v != "" {
		cfg.Addr = v
	} else if v := env("PORT"); v != "" {
		cfg.Addr = ":" + v
	}
	if v := env("DB_DRIVER"); v != "" {
		cfg.DBDriver = v
	}
	if v := env("DB_DSN"); v != "" {
		cfg.DBDSN = v
	}
	if v := env("LOG_LEVEL"); v != "" {
		cfg.LogLevel = logger.ParseLevel(v)
	}
	if v := env("LOG_FORMAT"); v != "" {
		cfg.LogFormat = logger.ParseFormat(v)
	}
	if v := env("APP_NAME"); v != "" {
		cfg.AppName = v
	}
	if v := env("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
		}
		cfg.ShutdownTimeout = d
	}

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}
	if strings.TrimSpace(c.DBDSN) == "" {
		return errors.New("DB_DSN is empty")
	}
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("listen address is empty")
	}
	return nil
}

func (c Config) Logger() logger.Logger {
	return logger.New(logger.Options{
		Level:  c.LogLevel,
		Format: c.LogFormat,
		App:    c.AppName,
	})
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
