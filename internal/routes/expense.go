package routes

import (
	"net/http"

	"Finboard/internal/contracts"
	"Finboard/internal/domain/expense"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateExpense(c *gin.Context) {
	var body contracts.ExpenseCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.ExpenseService.AddExpense(c.Request.Context(), &expense.CreateRequest{
		UserId:   userID,
		Category: body.Category,
		Amount:   *body.Amount,
		Date:     body.Date,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "expense recorded", contracts.NewExpenseAddedResponse(result))
}

func (h *Handler) LatestExpenses(c *gin.Context) {
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

func (h *Handler) ExpensePage(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	page, err := h.DashboardService.GetExpensePage(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, page)
}
