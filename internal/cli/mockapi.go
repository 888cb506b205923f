package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/saravenpi/outreach/internal/logging"
	"github.com/saravenpi/outreach/internal/mockapi"
)

const defaultMockSecret = "outreach-dev-secret"

func newMockAPICmd() *cobra.Command {
	var (
		addr     string
		dbPath   string
		tokenTTL time.Duration
		noSeed   bool
	)

	cmd := &cobra.Command{
		Use:   "mock-api",
		Short: "Run a local stand-in for the platform API",
		Long: `mock-api serves the platform endpoints the console uses from a SQLite
database. Unless --no-seed is given it creates a demo account
(` + mockapi.DemoEmail + ` / ` + mockapi.DemoPassword + `) with a few conversations.
The token signing secret is read from OUTREACH_MOCK_SECRET.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.closeLog()

			logger := logging.New(cmd.ErrOrStderr(), e.cfg.LogLevel).With("component", "mockapi")

			if dbPath == "" {
				dbPath = filepath.Join(e.cfg.HomeDir, "mockapi.db")
			}
			if dbPath != ":memory:" {
				if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
					return fmt.Errorf("failed to create database directory: %w", err)
				}
			}

			repo, err := mockapi.OpenRepo(dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if !noSeed {
				if err := mockapi.Seed(ctx, repo); err != nil {
					return fmt.Errorf("failed to seed database: %w", err)
				}
			}

			secret := os.Getenv("OUTREACH_MOCK_SECRET")
			if secret == "" {
				secret = defaultMockSecret
				logger.Warn("OUTREACH_MOCK_SECRET not set, using the development secret")
			}

			srv := mockapi.NewServer(repo, mockapi.NewTokens(secret, tokenTTL), mockapi.WithLogger(logger))
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("listening", "addr", addr, "db", dbPath)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path, or :memory: (default is $HOME/.outreach/mockapi.db)")
	cmd.Flags().DurationVar(&tokenTTL, "token-ttl", 24*time.Hour, "lifetime of issued tokens")
	cmd.Flags().BoolVar(&noSeed, "no-seed", false, "do not create the demo account")
	return cmd
}
