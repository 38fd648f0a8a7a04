// Package ingest pulls articles from external RSS and Atom feeds into the
// news store.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"newshub/internal/models"
	"newshub/internal/validation"

	"github.com/mmcdole/gofeed"
)

// Fetcher downloads and parses one feed URL into article rows.
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a Fetcher. gofeed detects RSS and Atom transparently.
func NewFetcher() *Fetcher {
	return &Fetcher{parser: gofeed.NewParser()}
}

// Fetch parses the feed at url and maps every item to a News row ready for
// slug-keyed upsert.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]*models.News, error) {
	feed, err := f.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", url, err)
	}

	items := make([]*models.News, 0, len(feed.Items))
	for _, item := range feed.Items {
		news := itemToNews(item, feed.Title)
		if news != nil {
			items = append(items, news)
		}
	}
	return items, nil
}

// itemToNews converts one feed item. Items without a title or link are
// dropped. The slug combines the slugified title with a short digest of the
// item identity so re-ingestion maps to the same row.
func itemToNews(item *gofeed.Item, feedTitle string) *models.News {
	if item.Title == "" || item.Link == "" {
		return nil
	}

	var publishedAt *time.Time
	switch {
	case item.PublishedParsed != nil:
		publishedAt = item.PublishedParsed
	case item.UpdatedParsed != nil:
		publishedAt = item.UpdatedParsed
	default:
		now := time.Now().UTC()
		publishedAt = &now
	}

	author := feedTitle
	if item.Author != nil && item.Author.Name != "" {
		author = item.Author.Name
	}

	image := ""
	if item.Image != nil {
		image = item.Image.URL
	}

	return &models.News{
		Slug:           itemSlug(item),
		Title:          item.Title,
		Summary:        item.Description,
		Content:        item.Content,
		Category:       categoryFor(item),
		Tags:           item.Categories,
		Author:         author,
		SourceURL:      item.Link,
		FeaturedImage:  image,
		ThumbnailImage: image,
		ReadingTime:    estimateReadingTime(item.Content, item.Description),
		Status:         models.NewsStatusPublished,
		PublishedAt:    publishedAt,
	}
}

// itemSlug derives a stable slug from the item title and its identity. GUID
// wins over link because publishers rewrite links more often than GUIDs.
func itemSlug(item *gofeed.Item) string {
	identity := item.GUID
	if identity == "" {
		identity = item.Link
	}
	sum := sha256.Sum256([]byte(identity))
	digest := hex.EncodeToString(sum[:4])

	base := validation.Slugify(item.Title)
	if len(base) > 60 {
		base = strings.Trim(base[:60], "-")
	}
	if base == "" {
		return digest
	}
	return base + "-" + digest
}

// categoryKeywords maps feed-provided category labels onto the fixed
// category set.
var categoryKeywords = map[string]string{
	"tech":          models.CategoryTechnology,
	"technology":    models.CategoryTechnology,
	"business":      models.CategoryBusiness,
	"economy":       models.CategoryBusiness,
	"finance":       models.CategoryBusiness,
	"sport":         models.CategorySports,
	"sports":        models.CategorySports,
	"entertainment": models.CategoryEntertainment,
	"culture":       models.CategoryEntertainment,
	"health":        models.CategoryHealth,
	"science":       models.CategoryScience,
	"politics":      models.CategoryPolitics,
	"world":         models.CategoryWorld,
	"international": models.CategoryWorld,
	"local":         models.CategoryLocal,
}

func categoryFor(item *gofeed.Item) string {
	for _, label := range item.Categories {
		if mapped, ok := categoryKeywords[strings.ToLower(strings.TrimSpace(label))]; ok {
			return mapped
		}
	}
	return models.CategoryWorld
}

// estimateReadingTime assumes roughly 200 words per minute.
func estimateReadingTime(content, summary string) int {
	text := content
	if text == "" {
		text = summary
	}
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	minutes := (words + 199) / 200
	return minutes
}
