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

type ICourseService interface {
	Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error)
	Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.CourseResponse, error)
	List(ctx context.Context, ownerId uuid.UUID) ([]*dto.CourseResponse, error)
	Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateCourseRequest) (*dto.UpdateCourseResponse, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error
}

type courseService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
}

func NewCourseService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
) ICourseService {
	return &courseService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
	}
}

func (c *courseService) Create(ctx context.Context, ownerId uuid.UUID, req *dto.CreateCourseRequest) (*dto.CreateCourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	course := entity.Course{
		Id:          uuid.New(),
		Title:       req.Title,
		Subtitle:    req.Subtitle,
		Description: req.Description,
		Category:    req.Category,
		Level:       req.Level,
		Price:       req.Price,
		Published:   req.Published,
		OwnerId:     ownerId,
		CreatedAt:   time.Now(),
	}

	if err := uow.CourseRepository().Create(ctx, &course); err != nil {
		return nil, err
	}

	if err := c.queueEmbedding(ctx, course.Id, ownerId); err != nil {
		return nil, err
	}

	if c.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeCourseCreated,
			Data: map[string]interface{}{
				"title":     course.Title,
				"course_id": course.Id,
				"user_id":   ownerId,
			},
			OccurredAt: time.Now(),
		}
		// Log but don't fail the request, notification is auxiliary
		if err := c.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish COURSE_CREATED event: %v\n", err)
		}
	}

	return &dto.CreateCourseResponse{Id: course.Id}, nil
}

func (c *courseService) Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, &apperrors.NotFoundError{Resource: "course"}
	}

	return toCourseResponse(course), nil
}

func (c *courseService) List(ctx context.Context, ownerId uuid.UUID) ([]*dto.CourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)
	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: ownerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		res = append(res, toCourseResponse(course))
	}
	return res, nil
}

func (c *courseService) Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateCourseRequest) (*dto.UpdateCourseResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, &apperrors.NotFoundError{Resource: "course"}
	}

	now := time.Now()
	course.Title = req.Title
	course.Subtitle = req.Subtitle
	course.Description = req.Description
	course.Category = req.Category
	course.Level = req.Level
	course.Price = req.Price
	course.Published = req.Published
	course.UpdatedAt = &now

	if err := uow.CourseRepository().Update(ctx, course); err != nil {
		return nil, err
	}

	if err := c.queueEmbedding(ctx, course.Id, ownerId); err != nil {
		return nil, err
	}

	return &dto.UpdateCourseResponse{Id: course.Id}, nil
}

func (c *courseService) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return err
	}
	if course == nil {
		return &apperrors.NotFoundError{Resource: "course"}
	}

	if err := uow.CourseRepository().Delete(ctx, id); err != nil {
		return err
	}

	// The lifecycle record goes with the course.
	return uow.EmbeddingStatusRepository().DeleteByEntity(ctx, id)
}

func (c *courseService) queueEmbedding(ctx context.Context, courseId, ownerId uuid.UUID) error {
	payload := dto.PublishEmbedMessage{
		EntityId:   courseId,
		OwnerId:    ownerId,
		EntityKind: entity.KindCourse,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, payloadJson)
}

func toCourseResponse(course *entity.Course) *dto.CourseResponse {
	return &dto.CourseResponse{
		Id:          course.Id,
		Title:       course.Title,
		Subtitle:    course.Subtitle,
		Description: course.Description,
		Category:    course.Category,
		Level:       course.Level,
		Price:       course.Price,
		Published:   course.Published,
		Approved:    course.Approved,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
}
