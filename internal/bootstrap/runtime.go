// Package bootstrap establishes shared runtime dependencies for the
// server and CLI commands.
package bootstrap

import (
	"context"
	"fmt"
	"log"

	"newshub/internal/cache"
	"newshub/internal/config"
	"newshub/internal/database"
	"newshub/internal/observability"
	"newshub/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// EnsureCategories upserts the built-in category rows after connecting.
	EnsureCategories bool
}

// Runtime holds the shared process-level dependencies.
type Runtime struct {
	DB    *gorm.DB
	Redis *redis.Client
	// ShutdownTracing flushes pending spans. Always non-nil.
	ShutdownTracing func(context.Context) error
}

// InitRuntime connects to the database and Redis, starts the tracer, and
// optionally seeds the built-in categories.
func InitRuntime(cfg *config.Config, opts Options) (*Runtime, error) {
	shutdownTracing, err := observability.InitTracing(observability.TracingConfig{
		ServiceName:    "newshub-api",
		ServiceVersion: "1.0.0",
		Environment:    cfg.Env,
		Enabled:        cfg.TracingEnabled,
		Exporter:       cfg.TracingExporter,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SamplerRatio:   1.0,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing init failed: %w", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// May leave a nil client behind when Redis is unreachable; the server
	// degrades to uncached operation.
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.EnsureCategories {
		if err := seed.Categories(db); err != nil {
			return nil, fmt.Errorf("failed to seed built-in categories: %w", err)
		}
		log.Println("built-in categories ensured")
	}

	return &Runtime{DB: db, Redis: r, ShutdownTracing: shutdownTracing}, nil
}

// Close releases runtime resources not owned by the server.
func (r *Runtime) Close(ctx context.Context) {
	if r.ShutdownTracing != nil {
		if err := r.ShutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown error: %v", err)
		}
	}
}
