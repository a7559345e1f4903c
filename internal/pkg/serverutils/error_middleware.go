package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"subhub-be/internal/pkg/apperror"
	"subhub-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware translates errors escaping the controllers into the
// response envelope. AppErrors keep their status and code; anything else is a
// 500 with the detail kept server side.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			log.Warn("http", "Controlled error", map[string]interface{}{
				"code":       appErr.Code,
				"message":    appErr.Message,
				"statusCode": appErr.StatusCode,
				"path":       ctx.Path(),
			})
			return ctx.Status(appErr.StatusCode).JSON(ErrorResponse(appErr.Code, appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse("NOT_FOUND", "Route not found"))
		}

		log.Error("http", "Unhandled error", map[string]interface{}{
			"message": err.Error(),
			"path":    ctx.Path(),
		})
		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("INTERNAL_SERVER_ERROR", "An unexpected error occurred"))
	}
}

// NotFoundHandler answers unmatched routes.
func NotFoundHandler(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse("NOT_FOUND", "Route not found"))
}
