package main

import (
	"context"
	"log"

	"ai-roadmap-be/internal/config"
	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/unitofwork"
	"ai-roadmap-be/internal/service"
	"ai-roadmap-be/pkg/database"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/vectorindex"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Re-embeds the whole catalog synchronously. Useful after switching the
// embedding model or rebuilding the vector index.
func main() {
	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Unable to connect to GORM DB: %v", err)
	}

	var provider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		provider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel, cfg.Ai.RequestTimeout)
	} else {
		provider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini, cfg.Ai.RequestTimeout)
	}

	var indexClient vectorindex.Client
	if cfg.Ai.VectorBackend == "pinecone" {
		indexClient = vectorindex.NewPineconeClient(cfg.Keys.Pinecone, cfg.Keys.PineconeHost, cfg.Ai.RequestTimeout)
	} else {
		indexClient = vectorindex.NewPostgresClient(db)
	}

	uowFactory := unitofwork.NewRepositoryFactory(db)
	embeddingService := service.NewEmbeddingService(uowFactory, provider, indexClient, cfg.Ai.EmbeddingDimension, nil)

	ctx := context.Background()
	uow := uowFactory.NewUnitOfWork(ctx)

	ok := color.New(color.FgGreen)
	fail := color.New(color.FgRed)
	skip := color.New(color.FgYellow)

	processed, failed := 0, 0

	run := func(kind entity.EntityKind, id, owner uuid.UUID, title string) {
		if err := embeddingService.ProcessEntity(ctx, kind, id, owner); err != nil {
			fail.Printf("FAIL  %-8s %s (%s): %v\n", kind, title, id, err)
			failed++
			return
		}
		ok.Printf("OK    %-8s %s\n", kind, title)
		processed++
	}

	courses, err := uow.CourseRepository().FindAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list courses: %v", err)
	}
	for _, c := range courses {
		run(entity.KindCourse, c.Id, c.OwnerId, c.Title)
	}

	videos, err := uow.VideoRepository().FindAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list videos: %v", err)
	}
	for _, v := range videos {
		run(entity.KindVideo, v.Id, v.OwnerId, v.Title)
	}

	roadmaps, err := uow.RoadmapRepository().FindAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list roadmaps: %v", err)
	}
	for _, r := range roadmaps {
		run(entity.KindRoadmap, r.Id, r.OwnerId, r.Title)
	}

	if failed == 0 && processed == 0 {
		skip.Println("Nothing to embed.")
		return
	}
	log.Printf("Done: %d embedded, %d failed", processed, failed)
}
