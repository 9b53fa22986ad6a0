package controller

import (
	"encoding/json"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/pkg/serverutils"
	"ai-roadmap-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IEmbeddingController interface {
	RegisterRoutes(r fiber.Router)
	Status(ctx *fiber.Ctx) error
	Reembed(ctx *fiber.Ctx) error
}

type embeddingController struct {
	embeddingService service.IEmbeddingService
	publisherService service.IPublisherService
}

func NewEmbeddingController(embeddingService service.IEmbeddingService, publisherService service.IPublisherService) IEmbeddingController {
	return &embeddingController{
		embeddingService: embeddingService,
		publisherService: publisherService,
	}
}

func (c *embeddingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/embedding/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("status/:id", c.Status)
	h.Post("reembed", c.Reembed)
}

func (c *embeddingController) Status(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid entity id"))
	}

	res, err := c.embeddingService.Status(ctx.Context(), id, ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success read embedding status", res))
}

// Reembed queues one entity for re-embedding. The work itself runs on the
// consumer, so the response only acknowledges the enqueue.
func (c *embeddingController) Reembed(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	var req dto.ReembedRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	payload, err := json.Marshal(dto.PublishEmbedMessage{
		EntityId:   req.EntityId,
		OwnerId:    ownerId,
		EntityKind: entity.EntityKind(req.Kind),
	})
	if err != nil {
		return err
	}

	if err := c.publisherService.Publish(ctx.Context(), payload); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success queue re-embedding", dto.ReembedResponse{
		EntityId: req.EntityId,
		Queued:   true,
	}))
}
