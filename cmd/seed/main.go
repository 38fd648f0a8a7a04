// Command main runs the database seeder for NewsHub.
package main

import (
	"flag"
	"log"

	"newshub/internal/bootstrap"
	"newshub/internal/config"
	"newshub/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numArticles := flag.Int("articles", 200, "Number of articles to create")
	comments := flag.Int("comments", 5, "Maximum comments per article")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("fast", false, "Skip bcrypt hashing for faster seeding")
	maxDays := flag.Int("max-days", 90, "Spread article timestamps over this many days")
	flag.Parse()

	log.Println("NewsHub Database Seeder")
	log.Printf("Target: %d users, %d articles, clean=%v\n", *numUsers, *numArticles, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	rt, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		log.Fatalf("Failed to initialize runtime: %v", err)
	}

	opts := seed.Options{
		NumUsers:           *numUsers,
		NumArticles:        *numArticles,
		CommentsPerArticle: *comments,
		ShouldClean:        *shouldClean,
		SeedOptions: seed.SeedOptions{
			SkipBcrypt: *skipBcrypt,
			MaxDays:    *maxDays,
		},
	}
	if err := seed.Seed(rt.DB, opts); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done! The database is populated with demo data.")
	log.Println("All seeded users have the password: password123")
}
