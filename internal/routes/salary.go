package routes

import (
	"net/http"

	"Finboard/internal/contracts"
	"Finboard/internal/domain/salary"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateSalary(c *gin.Context) {
	var body contracts.SalaryCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	result, err := h.SalaryService.AddSalary(c.Request.Context(), &salary.CreateRequest{
		UserId: userID,
		Amount: *body.Amount,
		Date:   body.Date,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "salary recorded", contracts.NewSalaryAddedResponse(result))
}

func (h *Handler) LastSalary(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	last, err := h.SalaryService.LastSalary(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, contracts.NewSalaryResponse(last))
}
