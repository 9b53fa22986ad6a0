package controller

import (
	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/pkg/serverutils"
	"ai-roadmap-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IVideoController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type videoController struct {
	videoService service.IVideoService
}

func NewVideoController(videoService service.IVideoService) IVideoController {
	return &videoController{
		videoService: videoService,
	}
}

func (c *videoController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/video/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *videoController) Create(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	var req dto.CreateVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.videoService.Create(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create video", res))
}

func (c *videoController) Show(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.videoService.Show(ctx.Context(), ownerId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show video", res))
}

func (c *videoController) List(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	res, err := c.videoService.List(ctx.Context(), ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list videos", res))
}

func (c *videoController) Update(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateVideoRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.videoService.Update(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update video", res))
}

func (c *videoController) Delete(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.videoService.Delete(ctx.Context(), ownerId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete video", nil))
}
