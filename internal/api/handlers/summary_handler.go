package handlers

import (
	"strings"

	"budget-ledger/internal/dto"
	"budget-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SummaryHandler struct {
	ledger   *service.LedgerService
	currency string
	logger   *zap.Logger
}

func NewSummaryHandler(ledger *service.LedgerService, currency string, logger *zap.Logger) *SummaryHandler {
	return &SummaryHandler{
		ledger:   ledger,
		currency: currency,
		logger:   logger,
	}
}

// Summary godoc
// @Summary Balance summary
// @Description Totals and per-account balances over active budgets
// @Tags summary
// @Produce json
// @Param budget_id query string false "Comma-separated budget IDs to include"
// @Security Bearer
// @Success 200 {object} dto.SummaryResponse
// @Router /summary [get]
func (h *SummaryHandler) Summary(c *fiber.Ctx) error {
	ledger, err := handle(c, h.ledger, h.logger)
	if ledger == nil {
		return err
	}

	var ids []string
	for _, id := range strings.Split(c.Query("budget_id"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	summary, err := ledger.Summarize(c.Context(), ids...)
	if err != nil {
		return writeError(c, err, h.logger)
	}
	return c.JSON(dto.NewSummaryResponse(summary, h.currency))
}
