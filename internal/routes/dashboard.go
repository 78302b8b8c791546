package routes

import (
	"Finboard/internal/contracts"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetDashboard(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	data, err := h.DashboardService.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, data)
}

func (h *Handler) GetAccount(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	account, err := h.DashboardService.Account(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, account)
}

// GetTransactions returns the five most recent expenses.
func (h *Handler) GetTransactions(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	expenses, err := h.ExpenseService.LatestFive(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, contracts.NewExpenseListResponse(expenses))
}
