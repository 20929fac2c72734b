package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/flowgrid/flowgrid/internal/server"
	"github.com/flowgrid/flowgrid/pkg/config"
	"github.com/flowgrid/flowgrid/pkg/store"
)

// serveCommand creates the serve command for running the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		inMemory bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP service",
		Long: `Run the layout HTTP service.

The service exposes ad-hoc layout computation (POST /v1/layout) and CRUD for
stored workflows (/v1/workflows). Workflows are persisted in MongoDB when a
mongo URL is configured; otherwise, or with --memory, an in-memory store is
used and workflows do not survive restarts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, inMemory, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&inMemory, "memory", false, "use the in-memory workflow store")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable layout and artifact caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, inMemory, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if addr == "" {
		addr = cfg.Server.Addr
	}

	st, err := newStore(ctx, cfg.Server, inMemory)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = st.Close(shutdownCtx)
	}()

	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	svc := server.New(st, runner, c.Logger)

	srv := &http.Server{
		Addr:              addr,
		Handler:           svc.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newStore picks the workflow store backend: MongoDB when configured, the
// in-memory store otherwise.
func newStore(ctx context.Context, cfg config.ServerConfig, inMemory bool) (store.Store, error) {
	if inMemory || cfg.MongoURL == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, cfg.MongoURL, cfg.Database)
}
