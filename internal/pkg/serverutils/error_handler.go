package serverutils

import (
	"errors"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps domain errors onto HTTP status codes
func StatusFor(err error) (int, string) {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code, fiberErr.Message
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return fiber.StatusBadRequest, validationErr.Error()
	}

	switch {
	case errors.Is(err, entity.ErrNotFound), errors.Is(err, entity.ErrCodeNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, entity.ErrInsufficientCredit),
		errors.Is(err, entity.ErrPlanInUse),
		errors.Is(err, entity.ErrSalonLocked),
		errors.Is(err, entity.ErrInvalidTransition),
		errors.Is(err, entity.ErrWithdrawalNotAllowed),
		errors.Is(err, entity.ErrAlreadyRegistered),
		errors.Is(err, entity.ErrConcurrentUpdate):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, entity.ErrWrongSalon),
		errors.Is(err, entity.ErrSalonNotApproved),
		errors.Is(err, entity.ErrForbidden):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, entity.ErrInvalidInput):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, entity.ErrInvalidPlan):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, entity.ErrTooManyAttempts):
		return fiber.StatusTooManyRequests, err.Error()
	}

	return fiber.StatusInternalServerError, "internal server error"
}

// ErrorHandlerMiddleware turns handler errors into the JSON envelope
func ErrorHandlerMiddleware(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code, message := StatusFor(err)
		if code >= fiber.StatusInternalServerError {
			log.Error("HTTP", "Unhandled error", map[string]interface{}{
				"error":  err.Error(),
				"method": ctx.Method(),
				"path":   ctx.Path(),
			})
		}
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
