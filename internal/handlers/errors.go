package handlers

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/example/livemarket/internal/services"
)

// ErrorHandler renders every error as a JSON body. Expected failures carry
// their own status code; anything else is logged and returned as a generic
// 500 so internals never leak to clients.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
	}

	log.Printf("unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// serviceError translates sentinel errors from the services layer into
// fiber errors. Anything unrecognized is returned as-is and becomes a 500.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmailAlreadyRegistered):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrResendCooldown):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrPendingApproval):
		return fiber.NewError(fiber.StatusForbidden,
			"Your account is pending approval. You will receive an email once approved.")
	case errors.Is(err, services.ErrAlreadyVerified),
		errors.Is(err, services.ErrNoCodeIssued),
		errors.Is(err, services.ErrCodeExpired),
		errors.Is(err, services.ErrCodeMismatch),
		errors.Is(err, services.ErrNotVerified),
		errors.Is(err, services.ErrTermsNotAccepted),
		errors.Is(err, services.ErrSignatureRequired),
		errors.Is(err, services.ErrDocumentRequired),
		errors.Is(err, services.ErrCompletionFailed),
		errors.Is(err, services.ErrTokenAlreadyUsed),
		errors.Is(err, services.ErrTokenExpired),
		errors.Is(err, services.ErrCodeNotVerified):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
