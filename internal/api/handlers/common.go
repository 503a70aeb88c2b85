package handlers

import (
	"errors"

	"budget-ledger/internal/service"
	"budget-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errNoSession = errors.New("no session in request context")

func getSession(c *fiber.Ctx) (service.Session, error) {
	session, ok := c.Locals(middleware.SessionKey).(service.Session)
	if !ok {
		return service.Session{}, errNoSession
	}
	return session, nil
}

// handle resolves the caller's ledger handle, writing the error response
// itself when it cannot.
func handle(c *fiber.Ctx, ledger *service.LedgerService, logger *zap.Logger) (*service.Handle, error) {
	session, err := getSession(c)
	if err != nil {
		return nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}
	h, err := ledger.Handle(session)
	if err != nil {
		return nil, writeError(c, err, logger)
	}
	return h, nil
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}

// writeError maps ledger errors onto HTTP responses.
func writeError(c *fiber.Ctx, err error, logger *zap.Logger) error {
	var (
		validation *service.ValidationError
		mismatch   *service.AllocationMismatchError
		duplicate  *service.DuplicateAccountIDError
	)

	switch {
	case errors.As(err, &mismatch):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":      err.Error(),
			"expected":   mismatch.Expected,
			"actual":     mismatch.Actual,
			"difference": mismatch.Difference(),
		})
	case errors.As(err, &duplicate):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":      err.Error(),
			"account_id": duplicate.AccountID,
		})
	case errors.As(err, &validation):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validation.Message,
			"field": validation.Field,
		})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrAlreadyDecided),
		errors.Is(err, service.ErrBudgetArchived),
		errors.Is(err, service.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrMutationInFlight):
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, service.ErrPersistenceUnavailable):
		logger.Error("Storage unavailable", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Storage is temporarily unavailable, please retry",
		})
	}

	logger.Error("Unexpected ledger error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal server error",
	})
}
