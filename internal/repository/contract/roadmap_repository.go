package contract

import (
	"context"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/specification"

	"github.com/google/uuid"
)

type RoadmapRepository interface {
	Create(ctx context.Context, roadmap *entity.Roadmap) error
	Update(ctx context.Context, roadmap *entity.Roadmap) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Roadmap, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Roadmap, error)
}
