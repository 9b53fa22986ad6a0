package main

import (
	"log"
	"os"
	"time"

	"ai-roadmap-be/internal/model"
	"ai-roadmap-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Seeds a demo catalog so a fresh environment has content to embed and
// suggest against. Safe to run repeatedly.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	ownerStr := os.Getenv("SEED_OWNER_ID")
	owner, err := uuid.Parse(ownerStr)
	if err != nil {
		log.Fatal("Error: SEED_OWNER_ID must be a valid UUID")
	}

	log.Println("Seeding demo catalog...")

	courses := []model.Course{
		{Title: "Go from Zero", Subtitle: "The complete beginner path", Description: "Syntax, tooling, modules, testing and the standard library.", Category: "programming", Level: "beginner"},
		{Title: "Concurrent Go", Subtitle: "Goroutines and channels in practice", Description: "Worker pools, pipelines, cancellation and race detection.", Category: "programming", Level: "intermediate"},
		{Title: "PostgreSQL for Developers", Subtitle: "Schema design to query tuning", Description: "Indexes, transactions, JSONB and the vector extension.", Category: "databases", Level: "intermediate"},
	}

	videos := []model.Video{
		{Title: "Intro to Embeddings", Subtitle: "What vectors actually encode", Description: "A visual walkthrough of semantic similarity.", Category: "machine-learning", Level: "beginner", DurationSec: 900},
		{Title: "Building a REST API in Go", Subtitle: "From router to deployment", Description: "Handlers, middleware, validation and error envelopes.", Category: "programming", Level: "beginner", DurationSec: 1800},
	}

	for _, c := range courses {
		var existing model.Course
		if err := db.Where("title = ? AND owner_id = ?", c.Title, owner).First(&existing).Error; err == nil {
			log.Printf("Course '%s' already exists, skipping...", c.Title)
			continue
		}

		c.Id = uuid.New()
		c.OwnerId = owner
		c.Published = true
		c.Approved = true
		c.CreatedAt = time.Now()
		if err := db.Create(&c).Error; err != nil {
			log.Printf("Warn: Failed to seed course '%s': %v", c.Title, err)
			continue
		}
		log.Printf("Seeded course '%s'", c.Title)
	}

	for _, v := range videos {
		var existing model.Video
		if err := db.Where("title = ? AND owner_id = ?", v.Title, owner).First(&existing).Error; err == nil {
			log.Printf("Video '%s' already exists, skipping...", v.Title)
			continue
		}

		v.Id = uuid.New()
		v.OwnerId = owner
		v.Published = true
		v.Approved = true
		v.CreatedAt = time.Now()
		if err := db.Create(&v).Error; err != nil {
			log.Printf("Warn: Failed to seed video '%s': %v", v.Title, err)
			continue
		}
		log.Printf("Seeded video '%s'", v.Title)
	}

	log.Println("Seeding done. Run cmd/reembed to index the catalog.")
}
