package handlers

import (
	"budget-ledger/internal/dto"
	"budget-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SpendingHandler struct {
	ledger *service.LedgerService
	logger *zap.Logger
}

func NewSpendingHandler(ledger *service.LedgerService, logger *zap.Logger) *SpendingHandler {
	return &SpendingHandler{
		ledger: ledger,
		logger: logger,
	}
}

// LogSpending godoc
// @Summary Log spending
// @Description Record spending that applies to the account balance immediately
// @Tags spending
// @Accept json
// @Produce json
// @Param request body dto.SpendingRequest true "Spending"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /spending [post]
func (h *SpendingHandler) LogSpending(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	var req dto.SpendingRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	tx, err := ledger.LogSpending(c.Context(), req.ToInput())
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(tx))
}

// SubmitRequest godoc
// @Summary Submit a spending request
// @Description Record a pending request; balances change only after approval
// @Tags requests
// @Accept json
// @Produce json
// @Param request body dto.SpendingRequest true "Spending request"
// @Security Bearer
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests [post]
func (h *SpendingHandler) SubmitRequest(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	var req dto.SpendingRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	tx, err := ledger.SubmitRequest(c.Context(), req.ToInput())
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewTransactionResponse(tx))
}

// PendingRequests godoc
// @Summary Pending requests
// @Description Requests awaiting an admin decision
// @Tags requests
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.PendingRequestsResponse
// @Failure 403 {object} map[string]string
// @Router /requests/pending [get]
func (h *SpendingHandler) PendingRequests(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	txs, err := ledger.PendingRequests(c.Context())
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.PendingRequestsResponse{
		Count:    len(txs),
		Requests: dto.NewTransactionList(txs),
	})
}

// DecideRequest godoc
// @Summary Decide a request
// @Description Approve or reject a pending request. Approval applies the amount to the account.
// @Tags requests
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param request body dto.DecisionRequest true "Decision"
// @Security Bearer
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /requests/{id}/decision [post]
func (h *SpendingHandler) DecideRequest(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	var req dto.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	tx, err := ledger.DecideRequest(c.Context(), c.Params("id"), service.Decision(req.Decision))
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewTransactionResponse(tx))
}
