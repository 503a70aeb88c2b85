package api

import (
	"budget-ledger/internal/api/handlers"
	"budget-ledger/internal/docs"
	"budget-ledger/pkg/auth"
	"budget-ledger/pkg/config"
	"budget-ledger/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by SetupRouter.
type Handlers struct {
	Budget   *handlers.BudgetHandler
	Spending *handlers.SpendingHandler
	Summary  *handlers.SummaryHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	sharedOrgID string,
	server config.ServerConfig,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  server.ReadTimeout,
		WriteTimeout: server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // registers the swagger document
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, sharedOrgID, appLogger))

	budgets := protected.Group("/budgets")
	budgets.Post("", h.Budget.CreateBudget)
	budgets.Get("", h.Budget.ListBudgets)
	budgets.Post("/preview", h.Budget.PreviewAllocation)
	budgets.Get("/archived", h.Budget.ArchivedBudgets)
	budgets.Get("/:id", h.Budget.GetBudget)
	budgets.Post("/:id/archive", h.Budget.ArchiveBudget)
	budgets.Get("/:id/accounts/:accountId/history", h.Budget.AccountHistory)

	protected.Get("/accounts", h.Budget.SpendingAccounts)
	protected.Post("/spending", h.Spending.LogSpending)

	requests := protected.Group("/requests")
	requests.Post("", h.Spending.SubmitRequest)
	requests.Get("/pending", h.Spending.PendingRequests)
	requests.Post("/:id/decision", h.Spending.DecideRequest)

	protected.Get("/summary", h.Summary.Summary)

	return app
}
