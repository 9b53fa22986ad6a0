package controller

import (
	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/pkg/serverutils"
	"ai-roadmap-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISuggestionController interface {
	RegisterRoutes(r fiber.Router)
	Suggest(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
}

type suggestionController struct {
	suggestionService service.ISuggestionService
}

func NewSuggestionController(suggestionService service.ISuggestionService) ISuggestionController {
	return &suggestionController{
		suggestionService: suggestionService,
	}
}

func (c *suggestionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/suggestion/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("query", c.Suggest)
	h.Put("status", c.UpdateStatus)
}

func (c *suggestionController) Suggest(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	var req dto.SuggestionQueryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.suggestionService.Suggest(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success query suggestions", res))
}

func (c *suggestionController) UpdateStatus(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	var req dto.UpdateSuggestionStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.suggestionService.UpdateStatus(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update suggestion status", res))
}
