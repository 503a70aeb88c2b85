package middleware

import (
	"strings"

	"budget-ledger/internal/service"
	"budget-ledger/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// SessionKey is the fiber.Ctx locals key holding the caller's service.Session.
const SessionKey = "session"

// AuthMiddleware validates the bearer token and stores the caller's session.
// Joint tokens without an organization fall back to sharedOrgID.
func AuthMiddleware(jwtManager *auth.JWTManager, sharedOrgID string, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Get("Authorization")
		if token == "" {
			logger.Warn("Missing authorization token")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization token required",
			})
		}

		token = strings.TrimPrefix(token, "Bearer ")

		claims, err := jwtManager.ValidateToken(token)
		if err != nil {
			logger.Warn("Invalid token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		session := service.Session{
			UserID:         claims.UserID,
			Email:          claims.Email,
			Role:           service.Role(claims.Role),
			AccountType:    service.AccountType(claims.AccountType),
			OrganizationID: claims.OrganizationID,
		}
		if session.AccountType == service.AccountTypeJoint && session.OrganizationID == "" {
			session.OrganizationID = sharedOrgID
		}
		if session.AccountType == service.AccountTypePersonal {
			session.OrganizationID = ""
		}

		c.Locals(SessionKey, session)

		return c.Next()
	}
}
