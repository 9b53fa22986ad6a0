package controller

import (
	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/pkg/serverutils"
	"ai-roadmap-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICourseController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type courseController struct {
	courseService service.ICourseService
}

func NewCourseController(courseService service.ICourseService) ICourseController {
	return &courseController{
		courseService: courseService,
	}
}

func (c *courseController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/course/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *courseController) Create(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	var req dto.CreateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.courseService.Create(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create course", res))
}

func (c *courseController) Show(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	res, err := c.courseService.Show(ctx.Context(), ownerId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show course", res))
}

func (c *courseController) List(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	res, err := c.courseService.List(ctx.Context(), ownerId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list courses", res))
}

func (c *courseController) Update(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	var req dto.UpdateCourseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	req.Id = id

	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, err.Error()))
	}

	res, err := c.courseService.Update(ctx.Context(), ownerId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update course", res))
}

func (c *courseController) Delete(ctx *fiber.Ctx) error {
	ownerId := ownerIdFromLocals(ctx)

	id, _ := uuid.Parse(ctx.Params("id"))

	if err := c.courseService.Delete(ctx.Context(), ownerId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete course", nil))
}

// ownerIdFromLocals reads the authenticated user id the jwt middleware stored.
func ownerIdFromLocals(ctx *fiber.Ctx) uuid.UUID {
	ownerIdStr, _ := ctx.Locals("user_id").(string)
	ownerId, _ := uuid.Parse(ownerIdStr)
	return ownerId
}
