package unitofwork

import (
	"context"

	"ai-roadmap-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CourseRepository() contract.CourseRepository
	VideoRepository() contract.VideoRepository
	RoadmapRepository() contract.RoadmapRepository
	EmbeddingStatusRepository() contract.EmbeddingStatusRepository
}
