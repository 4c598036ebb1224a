package cli

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/archscope/archscope/internal/server"
	"github.com/archscope/archscope/pkg/cache"
	"github.com/archscope/archscope/pkg/store"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the archscope HTTP API.

The server exposes the analysis endpoints under /api/v1 and a liveness
probe at /healthz. The cache backend, report archive, and listen address
come from the config file; --listen overrides the address.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = c.Config.Server.Listen
			}
			return c.runServe(cmd.Context(), listen)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, :8080)")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen string) error {
	cch, err := c.serverCache(ctx)
	if err != nil {
		return err
	}
	defer cch.Close()

	st, err := c.serverStore(ctx)
	if err != nil {
		return err
	}
	if st != nil {
		defer st.Close(context.Background())
	}

	srv := server.New(server.Options{
		Cache:  cch,
		Store:  st,
		Logger: c.Logger,
		TTL:    c.Config.Cache.TTL(),
	})

	httpSrv := &http.Server{
		Addr:              listen,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", listen)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// serverCache builds the cache backend the config names. Serve mode treats
// an unreachable Redis as fatal rather than silently degrading.
func (c *CLI) serverCache(ctx context.Context) (cache.Cache, error) {
	switch c.Config.Cache.Backend {
	case "redis":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
	case "none":
		return cache.NewNullCache(), nil
	default:
		return c.newCache(false), nil
	}
}

// serverStore builds the report archive when one is configured.
func (c *CLI) serverStore(ctx context.Context) (store.ReportStore, error) {
	if c.Config.Mongo.URI == "" {
		return nil, nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{
		URI:        c.Config.Mongo.URI,
		Database:   c.Config.Mongo.Database,
		Collection: c.Config.Mongo.Collection,
	})
}
