package ingest

import (
	"context"
	"log/slog"
	"time"

	"newshub/internal/middleware"
	"newshub/internal/observability"
	"newshub/internal/repository"
)

// Poller periodically fetches every configured feed and upserts the
// articles. Existing rows are never overwritten, so reader counters survive
// re-ingestion.
type Poller struct {
	fetcher  *Fetcher
	newsRepo repository.NewsRepository
	sources  []string
	interval time.Duration
}

// NewPoller creates a Poller over the given feed URLs.
func NewPoller(fetcher *Fetcher, newsRepo repository.NewsRepository, sources []string, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Poller{
		fetcher:  fetcher,
		newsRepo: newsRepo,
		sources:  sources,
		interval: interval,
	}
}

// Run polls every source once immediately and then on each tick until the
// context is cancelled.
func (p *Poller) Run(ctx context.Context) {
	if len(p.sources) == 0 {
		return
	}

	p.pollAll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pollAll(ctx)
		}
	}
}

func (p *Poller) pollAll(ctx context.Context) {
	for _, source := range p.sources {
		if ctx.Err() != nil {
			return
		}
		p.PollSource(ctx, source)
	}
}

// PollSource fetches one feed and stores its new articles. A failing source
// is counted and skipped; it never stops the other sources.
func (p *Poller) PollSource(ctx context.Context, source string) {
	items, err := p.fetcher.Fetch(ctx, source)
	if err != nil {
		observability.FeedFetchErrors.WithLabelValues(source).Inc()
		middleware.Logger.WarnContext(ctx, "feed fetch failed",
			slog.String("source", source),
			slog.String("error", err.Error()))
		return
	}

	inserted := 0
	for _, item := range items {
		created, err := p.newsRepo.UpsertBySlug(ctx, item)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "feed item upsert failed",
				slog.String("source", source),
				slog.String("slug", item.Slug),
				slog.String("error", err.Error()))
			continue
		}
		if created {
			inserted++
			observability.FeedItemsIngested.WithLabelValues(source).Inc()
		}
	}

	middleware.Logger.InfoContext(ctx, "feed polled",
		slog.String("source", source),
		slog.Int("items", len(items)),
		slog.Int("inserted", inserted))
}
