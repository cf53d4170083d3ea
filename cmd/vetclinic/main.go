package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vet-clinic/internal/adapters/storage/sqlstore"
	"vet-clinic/internal/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/router"
)

var (
	envFile  string
	dbDSN    string
	dbDriver string
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "vetclinic",
		Short:         "Veterinary clinic records: clients, pets, visits and the visit journal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "database DSN or sqlite path (overrides DB_DSN)")
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "sqlite or pgx (overrides DB_DRIVER)")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(normalizeCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	if dbDSN != "" {
		cfg.DBDSN = dbDSN
	}
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	return cfg, cfg.Validate()
}

// openStore abre la base y aplica migraciones; todos los comandos la usan igual.
func openStore(ctx context.Context, cfg config.Config, log logger.Logger) (*sqlstore.Store, error) {
	s, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DBDSN, log)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			log := cfg.Logger()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := openStore(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer store.Close()

			h, err := router.NewRouter(router.Options{Store: store, Logger: log})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:         cfg.Addr,
				Handler:      h,
				ReadTimeout:  5 * time.Second,
				WriteTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting server", map[string]any{"addr": cfg.Addr, "driver": cfg.DBDriver})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info("shutting down", map[string]any{"timeout": cfg.ShutdownTimeout.String()})
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides ADDR/PORT)")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg, cfg.Logger())
			if err != nil {
				return err
			}
			defer store.Close()

			fmt.Println("migrations applied")
			return nil
		},
	}
}

func normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize-visit-dates",
		Short: "Rewrite legacy DD-MM-YYYY visit dates as YYYY-MM-DD",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			store, err := openStore(cmd.Context(), cfg, cfg.Logger())
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := store.NormalizeLegacyVisitDates(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("normalized %d visit dates\n", n)
			return nil
		},
	}
}
