package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"ai-roadmap-be/pkg/apperrors"
)

// ErrorHandlerMiddleware converts errors bubbled out of handlers into the
// shared response envelope. Retryable backend failures map to 503 so callers
// know a retry is worthwhile.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		switch {
		case apperrors.IsValidation(err):
			return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse(400, err.Error()))
		case apperrors.IsNotFound(err):
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse(404, err.Error()))
		case apperrors.IsRetryable(err):
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse(503, err.Error()))
		default:
			if fiberErr, ok := err.(*fiber.Error); ok {
				return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
		}
	}
}
