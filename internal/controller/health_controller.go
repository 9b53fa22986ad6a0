package controller

import (
	"ai-roadmap-be/internal/pkg/serverutils"
	"ai-roadmap-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IHealthController interface {
	RegisterRoutes(r fiber.Router)
	Check(ctx *fiber.Ctx) error
}

type healthController struct {
	healthService service.IHealthService
}

func NewHealthController(healthService service.IHealthService) IHealthController {
	return &healthController{
		healthService: healthService,
	}
}

// No auth here: load balancers and uptime probes hit this endpoint.
func (c *healthController) RegisterRoutes(r fiber.Router) {
	r.Get("/health", c.Check)
}

func (c *healthController) Check(ctx *fiber.Ctx) error {
	res := c.healthService.Check(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Health report", res))
}
