package seed

import (
	_ "embed"
	"fmt"
	"log"
	"sort"

	"newshub/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed categories.yml
var categoriesYAML []byte

// Options configuration for the seeder.
type Options struct {
	NumUsers    int
	NumArticles int
	// CommentsPerArticle is the upper bound of comments generated per article.
	CommentsPerArticle int
	ShouldClean        bool
	SeedOptions
}

// categoryWeights is the relative share of seeded articles per category.
// Weights do not need to sum to anything particular.
var categoryWeights = map[string]int{
	models.CategoryTechnology:    4,
	models.CategoryBusiness:      3,
	models.CategoryWorld:         3,
	models.CategorySports:        2,
	models.CategoryPolitics:      2,
	models.CategoryEntertainment: 2,
	models.CategoryHealth:        1,
	models.CategoryScience:       1,
	models.CategoryLocal:         1,
}

type categoryFixture struct {
	Categories []struct {
		Name        string `yaml:"name"`
		DisplayName string `yaml:"display_name"`
		Description string `yaml:"description"`
		Icon        string `yaml:"icon"`
		Color       string `yaml:"color"`
	} `yaml:"categories"`
}

// Categories upserts the built-in category rows from the embedded fixture.
// It is safe to run on every boot.
func Categories(db *gorm.DB) error {
	var fixture categoryFixture
	if err := yaml.Unmarshal(categoriesYAML, &fixture); err != nil {
		return fmt.Errorf("parse category fixture: %w", err)
	}

	for i, c := range fixture.Categories {
		row := models.Category{
			Name:        c.Name,
			DisplayName: c.DisplayName,
			Description: c.Description,
			Icon:        c.Icon,
			Color:       c.Color,
			SortOrder:   i + 1,
			IsActive:    true,
		}
		err := db.Where(models.Category{Name: c.Name}).
			Assign(row).
			FirstOrCreate(&models.Category{}).Error
		if err != nil {
			return fmt.Errorf("upsert category %q: %w", c.Name, err)
		}
	}
	return nil
}

// distributeArticles splits total across categories proportionally to
// weights. The returned counts always sum to total; rounding remainders go
// to the heaviest categories first.
func distributeArticles(total int, weights map[string]int) map[string]int {
	counts := make(map[string]int, len(weights))
	if total <= 0 || len(weights) == 0 {
		return counts
	}

	weightSum := 0
	for _, w := range weights {
		weightSum += w
	}
	if weightSum <= 0 {
		return counts
	}

	assigned := 0
	for _, name := range models.KnownCategories {
		w, ok := weights[name]
		if !ok {
			continue
		}
		n := total * w / weightSum
		counts[name] = n
		assigned += n
	}

	// hand out the rounding remainder in descending weight order
	order := make([]string, 0, len(weights))
	for _, name := range models.KnownCategories {
		if _, ok := weights[name]; ok {
			order = append(order, name)
		}
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})
	for i := 0; assigned < total; i = (i + 1) % len(order) {
		counts[order[i]]++
		assigned++
	}
	return counts
}

// Seed populates the database with demo data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Seeding database with %d users and %d articles...", opts.NumUsers, opts.NumArticles)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	if err := Categories(db); err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	f := NewFactory(db, opts.SeedOptions)

	users, err := createUsers(f, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	articles, err := createArticles(f, opts.NumArticles)
	if err != nil {
		return fmt.Errorf("failed to create articles: %w", err)
	}
	log.Printf("created %d articles", len(articles))

	if len(users) > 0 {
		if err := createEngagement(f, users, articles, opts.CommentsPerArticle); err != nil {
			return fmt.Errorf("failed to create engagement: %w", err)
		}
	}

	log.Println("Database seeding completed")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	if db.Dialector.Name() == "postgres" {
		sql := `TRUNCATE TABLE comments, user_interactions, news, categories, users RESTART IDENTITY CASCADE;`
		return db.Exec(sql).Error
	}
	for _, table := range []string{"comments", "user_interactions", "news", "categories", "users"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(f *Factory, count int) ([]*models.User, error) {
	users := make([]*models.User, 0, count)

	// Always include a fixed demo account so the mobile app has a known login.
	if count > 0 {
		demo, err := f.CreateUser(func(u *models.User) {
			u.Username = "demo_reader"
			u.Email = "demo@example.com"
			u.DisplayName = "Demo Reader"
		})
		if err == nil {
			users = append(users, demo)
		}
	}

	for i := len(users); i < count; i++ {
		user, err := f.CreateUser()
		if err != nil {
			log.Printf("failed to create user %d: %v", i, err)
			continue
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("created %d users...", i)
		}
	}
	return users, nil
}

func createArticles(f *Factory, count int) ([]*models.News, error) {
	counts := distributeArticles(count, categoryWeights)

	articles := make([]*models.News, 0, count)
	for _, category := range models.KnownCategories {
		for i := 0; i < counts[category]; i++ {
			articles = append(articles, f.BuildArticle(category))
		}
	}

	if err := f.CreateArticlesBatch(articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// createEngagement adds comments and like/favorite interactions, keeping the
// denormalized article counters in sync with the rows it writes.
func createEngagement(f *Factory, users []*models.User, articles []*models.News, commentsPerArticle int) error {
	if commentsPerArticle <= 0 {
		commentsPerArticle = 5
	}

	for _, article := range articles {
		likes := 0
		for _, user := range users {
			if f.rng.Float32() < 0.3 {
				if err := f.CreateInteraction(user, article, models.InteractionLike); err != nil {
					continue
				}
				likes++
			}
			if f.rng.Float32() < 0.1 {
				_ = f.CreateInteraction(user, article, models.InteractionFavorite)
			}
		}

		comments := f.rng.Intn(commentsPerArticle + 1)
		written := 0
		for i := 0; i < comments; i++ {
			author := users[f.rng.Intn(len(users))]
			if _, err := f.CreateComment(author, article); err == nil {
				written++
			}
		}

		if f.opts.DryRun {
			continue
		}
		err := f.db.Model(&models.News{}).Where("id = ?", article.ID).
			Updates(map[string]any{"like_count": likes, "comment_count": written}).Error
		if err != nil {
			return err
		}
	}
	return nil
}
