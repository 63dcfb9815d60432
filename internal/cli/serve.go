package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waterfall/internal/api"
	"github.com/matzehuels/waterfall/pkg/cache"
	"github.com/matzehuels/waterfall/pkg/observability"
	"github.com/matzehuels/waterfall/pkg/pipeline"
	"github.com/matzehuels/waterfall/pkg/store"
)

// serveConfig holds the backends chosen on the command line. Empty
// addresses select the in-process defaults.
type serveConfig struct {
	addr string

	redisAddr     string
	redisPassword string
	redisDB       int

	mongoURI string
	mongoDB  string
	storeDir string

	cacheSize int
	storeSize int
}

// serveCommand creates the serve command that runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	cfg := serveConfig{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the layout HTTP API",
		Long: `Run the layout HTTP API.

Layouts are cached in memory unless --redis-addr is set, and stored in
memory unless --mongo-uri or --store-dir is set. The server shuts down
gracefully on interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&cfg.redisAddr, "redis-addr", "", "Redis address for the layout cache")
	cmd.Flags().StringVar(&cfg.redisPassword, "redis-password", "", "Redis password")
	cmd.Flags().IntVar(&cfg.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&cfg.mongoURI, "mongo-uri", "", "MongoDB URI for stored layouts")
	cmd.Flags().StringVar(&cfg.mongoDB, "mongo-db", store.DefaultMongoDatabase, "MongoDB database name")
	cmd.Flags().StringVar(&cfg.storeDir, "store-dir", "", "directory for stored layouts")
	cmd.Flags().IntVar(&cfg.cacheSize, "cache-size", cache.DefaultMemoryEntries, "in-memory cache entries")
	cmd.Flags().IntVar(&cfg.storeSize, "store-size", store.DefaultMemoryRecords, "in-memory store records")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg serveConfig) error {
	logger := loggerFromContext(ctx)

	hooks := observability.NewLogHooks(logger)
	observability.SetLayoutHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	lc, err := newServerCache(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	runner := pipeline.NewRunner(lc, cache.NewScopedKeyer(cache.NewDefaultKeyer(), "api:"), logger)
	defer runner.Close()

	st, err := newServerStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	printInfo("Listening on %s", StyleLink.Render(cfg.addr))
	printDetail("cache: %s · store: %s", cacheBackend(cfg), storeBackend(cfg))

	return api.New(runner, st, logger).ListenAndServe(ctx, cfg.addr)
}

func newServerCache(ctx context.Context, cfg serveConfig) (cache.Cache, error) {
	if cfg.redisAddr != "" {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.redisAddr,
			Password: cfg.redisPassword,
			DB:       cfg.redisDB,
			Prefix:   appName + ":",
		})
	}
	return cache.NewMemoryCache(cfg.cacheSize)
}

func newServerStore(ctx context.Context, cfg serveConfig) (store.Store, error) {
	switch {
	case cfg.mongoURI != "":
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.mongoURI,
			Database: cfg.mongoDB,
			Timeout:  10 * time.Second,
		})
	case cfg.storeDir != "":
		return store.NewFileStore(cfg.storeDir)
	default:
		return store.NewMemoryStore(cfg.storeSize)
	}
}

func cacheBackend(cfg serveConfig) string {
	if cfg.redisAddr != "" {
		return "redis " + cfg.redisAddr
	}
	return "memory"
}

func storeBackend(cfg serveConfig) string {
	switch {
	case cfg.mongoURI != "":
		return "mongo " + cfg.mongoDB
	case cfg.storeDir != "":
		return "file " + cfg.storeDir
	default:
		return "memory"
	}
}
