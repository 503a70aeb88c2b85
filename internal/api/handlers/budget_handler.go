package handlers

import (
	"budget-ledger/internal/dto"
	"budget-ledger/internal/models"
	"budget-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type BudgetHandler struct {
	ledger *service.LedgerService
	logger *zap.Logger
}

func NewBudgetHandler(ledger *service.LedgerService, logger *zap.Logger) *BudgetHandler {
	return &BudgetHandler{
		ledger: ledger,
		logger: logger,
	}
}

// CreateBudget godoc
// @Summary Create a budget
// @Description Create a budget split into named accounts. Allocations must add up to the total (within 0.01) unless the permissive policy is used.
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequest true "Budget"
// @Security Bearer
// @Success 201 {object} dto.CreateBudgetResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]interface{}
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	var req dto.CreateBudgetRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	res, err := ledger.CreateBudget(c.Context(), req.ToInput())
	if err != nil {
		return writeError(c, err, h.logger)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewCreateBudgetResponse(res))
}

// PreviewAllocation godoc
// @Summary Preview an allocation
// @Description Sum allocations against a total without saving anything
// @Tags budgets
// @Accept json
// @Produce json
// @Param request body dto.PreviewAllocationRequest true "Allocation draft"
// @Security Bearer
// @Success 200 {object} dto.AllocationPreviewResponse
// @Failure 400 {object} map[string]string
// @Router /budgets/preview [post]
func (h *BudgetHandler) PreviewAllocation(c *fiber.Ctx) error {
	var req dto.PreviewAllocationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}

	preview := service.PreviewAllocation(req.TotalAmount, req.ToAllocations())
	return c.JSON(dto.NewAllocationPreviewResponse(preview))
}

// ListBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Param status query string false "active, archived or all" default(active)
// @Security Bearer
// @Success 200 {array} dto.BudgetResponse
// @Failure 400 {object} map[string]string
// @Router /budgets [get]
func (h *BudgetHandler) ListBudgets(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	status := models.BudgetStatus(c.Query("status", string(models.BudgetStatusActive)))
	if status == "all" {
		status = ""
	}

	budgets, err := ledger.ListBudgets(c.Context(), status)
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewBudgetList(budgets))
}

// ArchivedBudgets godoc
// @Summary Budget history
// @Description List archived budgets
// @Tags budgets
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.BudgetResponse
// @Router /budgets/archived [get]
func (h *BudgetHandler) ArchivedBudgets(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	budgets, err := ledger.ArchivedBudgets(c.Context())
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewBudgetList(budgets))
}

// GetBudget godoc
// @Summary Get a budget
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	budget, err := ledger.GetBudget(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewBudgetResponse(budget))
}

// ArchiveBudget godoc
// @Summary Archive a budget
// @Description Move an active budget to history. Archived budgets leave summaries and accept no new spending.
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Security Bearer
// @Success 200 {object} dto.BudgetResponse
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /budgets/{id}/archive [post]
func (h *BudgetHandler) ArchiveBudget(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	budget, err := ledger.Archive(c.Context(), c.Params("id"))
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewBudgetResponse(budget))
}

// AccountHistory godoc
// @Summary Account history
// @Description Applied spending on one account (logged entries and approved requests), newest first
// @Tags budgets
// @Produce json
// @Param id path string true "Budget ID"
// @Param accountId path string true "Account ID"
// @Security Bearer
// @Success 200 {array} dto.TransactionResponse
// @Failure 404 {object} map[string]string
// @Router /budgets/{id}/accounts/{accountId}/history [get]
func (h *BudgetHandler) AccountHistory(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	txs, err := ledger.AccountHistory(c.Context(), c.Params("id"), c.Params("accountId"))
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewTransactionList(txs))
}

// SpendingAccounts godoc
// @Summary Spending accounts
// @Description Accounts of active budgets that can receive spending
// @Tags budgets
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.AccountOptionResponse
// @Router /accounts [get]
func (h *BudgetHandler) SpendingAccounts(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	options, err := ledger.SpendingAccounts(c.Context())
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewAccountOptions(options))
}
