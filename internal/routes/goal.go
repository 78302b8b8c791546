package routes

import (
	"net/http"

	"Finboard/internal/contracts"
	"Finboard/internal/domain/goal"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateGoal(c *gin.Context) {
	var body contracts.GoalCreateRequest
	if !h.bindJSON(c, &body) {
		return
	}

	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goals, err := h.GoalService.AddGoal(c.Request.Context(), &goal.CreateRequest{
		UserId:               userID,
		GoalName:             body.GoalName,
		TargetAmount:         *body.TargetAmount,
		TimeDuration:         *body.TimeDuration,
		PercentageAllocation: *body.PercentageAllocation,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusCreated, "goal created", contracts.GoalListResponse{GoalData: goals})
}

func (h *Handler) ListGoals(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goals, err := h.GoalService.ListProgress(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondOK(c, contracts.GoalListResponse{GoalData: goals})
}

func (h *Handler) RedeemGoal(c *gin.Context) {
	userID, err := h.GetUserIDFromContext(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	goalID, err := parseID("id", c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	goals, err := h.GoalService.RedeemGoal(c.Request.Context(), userID, goalID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.respondSuccess(c, http.StatusOK, "goal redeemed", contracts.GoalListResponse{GoalData: goals})
}
