package controller

import (
	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/pkg/serverutils"
	"ai-roadmap-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IRoadmapController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type roadmapController struct {
	roadmapService service.IRoadmapService
}

func NewRoadmapController(roadmapService service.IRoadmapService) IRoadmapController {
	return &roadmapController{
		roadmapService: roadmapService,
	}
}

func (c *roadmapController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/roadmap/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("generate", c.Generate)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *roadmapController) Generate(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	var req dto.GenerateRoadmapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.roadmapService.Generate(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate roadmap", res))
}

func (c *roadmapController) Show(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.roadmapService.Show(ctx.Context(), ownerId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show roadmap", res))
}

func (c *roadmapController) List(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	res, err := c.roadmapService.List(ctx.Context(), ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list roadmaps", res))
}

func (c *roadmapController) Update(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateRoadmapRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.roadmapService.Update(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update roadmap", res))
}

func (c *roadmapController) Delete(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.roadmapService.Delete(ctx.Context(), ownerId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete roadmap", nil))
}
