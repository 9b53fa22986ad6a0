package contract

import (
	"context"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/specification"

	"github.com/google/uuid"
)

type VideoRepository interface {
	Create(ctx context.Context, video *entity.Video) error
	Update(ctx context.Context, video *entity.Video) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Video, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Video, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
