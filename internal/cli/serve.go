package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/sestools/sescribe/internal/server"
	"github.com/sestools/sescribe/pkg/cache"
	"github.com/sestools/sescribe/pkg/pipeline"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	noCache   bool
}

// newServeCmd creates the serve command, which exposes the conversion
// pipeline over HTTP.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Long: `Run an HTTP server exposing the conversion pipeline.

Results are cached by input content hash. The default backend is a file
cache under the user cache directory; --redis switches to a shared Redis
backend for multi-instance deployments.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared cache (e.g. localhost:6379)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable result caching")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	backend, err := newCacheBackend(ctx, opts)
	if err != nil {
		return err
	}
	defer backend.Close()

	runner := pipeline.NewRunner(backend, logger)
	return server.New(runner, logger).ListenAndServe(ctx, opts.addr)
}

// newCacheBackend picks the cache backend from the serve flags:
// --no-cache wins, then --redis, then the default file cache.
func newCacheBackend(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	logger := loggerFromContext(ctx)

	if opts.noCache {
		logger.Debug("Caching disabled")
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		logger.Infof("Using Redis cache at %s", opts.redisAddr)
		return cache.NewRedisCache(ctx, opts.redisAddr)
	}

	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	logger.Debugf("Using file cache at %s", dir)
	return cache.NewFileCache(dir)
}
