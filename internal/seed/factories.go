// Package seed provides helpers to create demo and test data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"newshub/internal/models"
	"newshub/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedOptions control factory behavior.
type SeedOptions struct {
	// DryRun skips all DB writes and assigns synthetic IDs instead.
	DryRun bool
	// SkipBcrypt stores a plain placeholder password for fast dev seeding.
	SkipBcrypt bool
	// MaxDays spreads article timestamps over this many days back.
	MaxDays int
	// BatchSize controls chunking for batch inserts.
	BatchSize int
}

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts SeedOptions
	rng  *rand.Rand
	// synthetic ID counter when running in DryRun mode
	nextID uint
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts SeedOptions) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	//nolint:gosec // weak randomness is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Factory{db: db, opts: opts, rng: rng, nextID: 1000}
}

// CreateUser constructs and persists a sample `models.User`.
// Optional override functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	username := fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))
	user := &models.User{
		Username:    username,
		Email:       gofakeit.Email(),
		DisplayName: gofakeit.Name(),
		AvatarURL:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		IsActive:    true,
		Preferences: models.UserPreferences{
			Categories:        f.pickCategories(),
			PushNotifications: f.rng.Float32() < 0.7,
			DarkMode:          f.rng.Float32() < 0.5,
			Language:          "en",
		},
	}

	if f.opts.SkipBcrypt {
		user.PasswordHash = "password123"
	} else {
		hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		user.PasswordHash = string(hashed)
	}

	for _, override := range overrides {
		override(user)
	}

	if f.opts.DryRun {
		f.nextID++
		user.ID = f.nextID
		log.Printf("[dry-run] CreateUser: %s <%s>", user.Username, user.Email)
		return user, nil
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildArticle constructs a published article in the given category but does
// not persist it. Useful for batching.
func (f *Factory) BuildArticle(category string, overrides ...func(*models.News)) *models.News {
	title := gofakeit.Sentence(f.rng.Intn(6) + 4)
	content := gofakeit.Paragraph(3, 5, 12, "\n\n")

	slug := validation.Slugify(title)
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}

	news := &models.News{
		Slug:          fmt.Sprintf("%s-%04d", slug, f.rng.Intn(10000)),
		Title:         title,
		Summary:       gofakeit.Sentence(12),
		Content:       content,
		Category:      category,
		Tags:          f.pickTags(category),
		Author:        gofakeit.Name(),
		SourceURL:     gofakeit.URL(),
		FeaturedImage: fmt.Sprintf("https://picsum.photos/seed/%s/1200/630", gofakeit.UUID()),
		ReadingTime:   f.rng.Intn(10) + 1,
		ViewCount:     f.rng.Intn(5000),
		ShareCount:    f.rng.Intn(200),
		Status:        models.NewsStatusPublished,
		Meta:          models.NewsMeta{MobileOptimized: true},
	}
	news.ThumbnailImage = news.FeaturedImage + "?w=320"

	// realistic created_at spread
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	age := time.Duration(f.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(f.rng.Intn(24))*time.Hour +
		time.Duration(f.rng.Intn(60))*time.Minute
	published := time.Now().Add(-age)
	news.CreatedAt = published
	news.PublishedAt = &published

	for _, override := range overrides {
		override(news)
	}
	return news
}

// CreateArticlesBatch persists multiple articles in chunked batch inserts.
func (f *Factory) CreateArticlesBatch(articles []*models.News) error {
	if f.opts.DryRun {
		for _, a := range articles {
			f.nextID++
			a.ID = f.nextID
		}
		log.Printf("[dry-run] CreateArticlesBatch: %d articles (no DB write)", len(articles))
		return nil
	}
	return f.db.CreateInBatches(&articles, f.opts.BatchSize).Error
}

// CreateComment constructs and persists a sample comment on the provided
// article authored by the provided user.
func (f *Factory) CreateComment(user *models.User, news *models.News, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		Content: gofakeit.Sentence(f.rng.Intn(12) + 4),
		UserID:  user.ID,
		NewsID:  news.ID,
	}

	for _, override := range overrides {
		override(comment)
	}

	if f.opts.DryRun {
		f.nextID++
		comment.ID = f.nextID
		return comment, nil
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateInteraction persists an engagement row from `user` on `news`.
func (f *Factory) CreateInteraction(user *models.User, news *models.News, kind models.InteractionType) error {
	if f.opts.DryRun {
		return nil
	}
	interaction := &models.Interaction{
		UserID: user.ID,
		NewsID: news.ID,
		Type:   kind,
	}
	return f.db.Create(interaction).Error
}

func (f *Factory) pickCategories() []string {
	count := f.rng.Intn(3) + 1
	picked := make([]string, 0, count)
	for _, i := range f.rng.Perm(len(models.KnownCategories))[:count] {
		picked = append(picked, models.KnownCategories[i])
	}
	return picked
}

func (f *Factory) pickTags(category string) []string {
	tags := []string{category}
	for i := 0; i < f.rng.Intn(3); i++ {
		tags = append(tags, gofakeit.BuzzWord())
	}
	return tags
}
