package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/specification"
	"ai-roadmap-be/internal/repository/unitofwork"
	"ai-roadmap-be/pkg/apperrors"
	"ai-roadmap-be/pkg/events"
	pktNats "ai-roadmap-be/pkg/nats"

	"github.com/google/uuid"
)

type IVideoService interface {
	Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateVideoRequest) (*dto.CreateVideoResponse, error)
	Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.VideoResponse, error)
	List(ctx context.Context, ownerId uuid.UUID) ([]*dto.VideoResponse, error)
	Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateVideoRequest) (*dto.UpdateVideoResponse, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error
}

type videoService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewVideoService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) IVideoService {
	return &videoService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (v *videoService) Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateVideoRequest) (*dto.CreateVideoResponse, error) {
	uow := v.uowFactory.NewUnitOfWork(ctx)
	video := entity.Video{
		Id:          uuid.New(),
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Url:         req.Url,
		DurationSec: req.DurationSec,
		Published:   req.Published,
		OwnerId:     ownerId,
		CreatedAt:   time.Now(),
	}

	if err := uow.VideoRepository().Create(ctx, &video); err != nil {
		return nil, err
	}

	if err := v.queueEmbedding(ctx, video.Id, ownerId); err != nil {
		return nil, err
	}

	if v.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeVideoCreated,
			Data: map[string]interface{}{
				"title":    video.Title,
				"video_id": video.Id,
				"user_id":  ownerId,
			},
			OccurredAt: time.Now(),
		}
		if err := v.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish VIDEO_CREATED event: %v\n", err)
		}
	}

	return &dto.CreateVideoResponse{Id: video.Id}, nil
}

func (v *videoService) Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.VideoResponse, error) {
	uow := v.uowFactory.NewUnitOfWork(ctx)
	video, err := uow.VideoRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, &apperrors.NotFoundError{Resource: "video"}
	}

	return toVideoResponse(video), nil
}

func (v *videoService) List(ctx context.Context, ownerId uuid.UUID) ([]*dto.VideoResponse, error) {
	uow := v.uowFactory.NewUnitOfWork(ctx)
	videos, err := uow.VideoRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: ownerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.VideoResponse, 0, len(videos))
	for _, video := range videos {
		res = append(res, toVideoResponse(video))
	}
	return res, nil
}

func (v *videoService) Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateVideoRequest) (*dto.UpdateVideoResponse, error) {
	uow := v.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, &apperrors.NotFoundError{Resource: "video"}
	}

	now := time.Now()
	video.Title = req.Title
	video.Subtitle = req.Subtitle
	video.Description = req.Description
	video.Category = req.Category
	video.Level = req.Level
	video.Url = req.Url
	video.DurationSec = req.DurationSec
	video.Published = req.Published
	video.UpdatedAt = &now

	if err := uow.VideoRepository().Update(ctx, video); err != nil {
		return nil, err
	}

	if err := v.queueEmbedding(ctx, video.Id, ownerId); err != nil {
		return nil, err
	}

	return &dto.UpdateVideoResponse{Id: video.Id}, nil
}

func (v *videoService) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	uow := v.uowFactory.NewUnitOfWork(ctx)

	video, err := uow.VideoRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return err
	}
	if video == nil {
		return &apperrors.NotFoundError{Resource: "video"}
	}

	if err := uow.VideoRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.EmbeddingStatusRepository().DeleteByEntity(ctx, id)
}

func (v *videoService) queueEmbedding(ctx context.Context, videoId, ownerId uuid.UUID) error {
	payload := dto.PublishEmbedMessage{
		EntityId:   videoId,
		OwnerId:    ownerId,
		EntityKind: entity.KindVideo,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return v.publisherService.Publish(ctx, payloadJson)
}

func toVideoResponse(video *entity.Video) *dto.VideoResponse {
	return &dto.VideoResponse{
		Id:          video.Id,
		Title:       video.Title,
		Subtitle:    video.Subtitle,
		Description: video.Description,
		Category:    video.Category,
		Level:       video.Level,
		Url:         video.Url,
		DurationSec: video.DurationSec,
		Published:   video.Published,
		Approved:    video.Approved,
		CreatedAt:   video.CreatedAt,
		UpdatedAt:   video.UpdatedAt,
	}
}
