package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse is the uniform JSON error body.
func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}

// ErrorHandlerMiddleware is the outermost safety net: any error a handler
// lets escape becomes a 500 JSON body instead of an unhandled fault.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse("Server error: " + err.Error()))
	}
}
