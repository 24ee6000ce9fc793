// Command seed populates the development database with sample data.
package main

import (
	"flag"
	"log"

	"resonate/internal/config"
	"resonate/internal/database"
	"resonate/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	users := flag.Int("users", 20, "number of users to create")
	reviews := flag.Int("reviews", 40, "number of reviews to create")
	clean := flag.Bool("clean", false, "truncate existing data first")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.Env == "production" || cfg.Env == "prod" {
		log.Fatal("Refusing to seed a production database")
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:    *users,
		NumReviews:  *reviews,
		ShouldClean: *clean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
	log.Println("Seeding complete")
}
