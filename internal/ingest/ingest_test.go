package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newshub/internal/models"
	"newshub/internal/repository"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Example Wire</title>
    <link>https://example.com</link>
    <item>
      <title>Markets Rally After Rate Cut</title>
      <link>https://example.com/markets-rally</link>
      <guid>example-wire-1001</guid>
      <description>Stocks climbed on the news.</description>
      <category>Business</category>
      <pubDate>Mon, 24 Aug 2026 09:00:00 GMT</pubDate>
    </item>
    <item>
      <title>New Telescope Spots Distant Galaxy</title>
      <link>https://example.com/telescope</link>
      <guid>example-wire-1002</guid>
      <description>Astronomers report a record find.</description>
      <category>Science</category>
      <pubDate>Mon, 24 Aug 2026 10:30:00 GMT</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://example.com/untitled</link>
    </item>
  </channel>
</rss>`

func newFixtureServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()
	srv := newFixtureServer(t)

	items, err := NewFetcher().Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 2, "the untitled item is dropped")

	first := items[0]
	assert.Equal(t, "Markets Rally After Rate Cut", first.Title)
	assert.Equal(t, models.CategoryBusiness, first.Category)
	assert.Equal(t, models.NewsStatusPublished, first.Status)
	assert.Equal(t, "https://example.com/markets-rally", first.SourceURL)
	assert.Contains(t, first.Slug, "markets-rally-after-rate-cut-")
	require.NotNil(t, first.PublishedAt)
	assert.Equal(t, 2026, first.PublishedAt.Year())

	assert.Equal(t, models.CategoryScience, items[1].Category)
}

func TestItemSlug_Stable(t *testing.T) {
	t.Parallel()

	item := &gofeed.Item{Title: "Some Headline", GUID: "guid-1", Link: "https://example.com/a"}
	again := &gofeed.Item{Title: "Some Headline", GUID: "guid-1", Link: "https://example.com/b"}
	other := &gofeed.Item{Title: "Some Headline", GUID: "guid-2"}

	assert.Equal(t, itemSlug(item), itemSlug(again), "GUID wins over link")
	assert.NotEqual(t, itemSlug(item), itemSlug(other))
}

func TestCategoryFor_Fallback(t *testing.T) {
	t.Parallel()
	item := &gofeed.Item{Categories: []string{"Knitting", "Puzzles"}}
	assert.Equal(t, models.CategoryWorld, categoryFor(item))
}

func TestEstimateReadingTime(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, estimateReadingTime("", ""))
	assert.Equal(t, 1, estimateReadingTime("a few words only", ""))
	assert.Equal(t, 1, estimateReadingTime("", "summary used when content empty"))
}

// upsertRecorder is a stub for repository.NewsRepository that records upserts.
type upsertRecorder struct {
	repository.NewsRepository
	seen map[string]bool
}

func (r *upsertRecorder) UpsertBySlug(_ context.Context, news *models.News) (bool, error) {
	if r.seen[news.Slug] {
		return false, nil
	}
	r.seen[news.Slug] = true
	return true, nil
}

func TestPoller_PollSource_Idempotent(t *testing.T) {
	t.Parallel()
	srv := newFixtureServer(t)

	repo := &upsertRecorder{seen: map[string]bool{}}
	poller := NewPoller(NewFetcher(), repo, []string{srv.URL}, time.Hour)

	ctx := context.Background()
	poller.PollSource(ctx, srv.URL)
	assert.Len(t, repo.seen, 2)

	// A second poll maps to the same slugs and inserts nothing new
	poller.PollSource(ctx, srv.URL)
	assert.Len(t, repo.seen, 2)
}

func TestPoller_PollSource_FetchErrorIsSwallowed(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	repo := &upsertRecorder{seen: map[string]bool{}}
	poller := NewPoller(NewFetcher(), repo, []string{srv.URL}, time.Hour)
	poller.PollSource(context.Background(), srv.URL)
	assert.Empty(t, repo.seen)
}
