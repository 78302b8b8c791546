package contracts

import "Finboard/internal/domain/calculations"

type GoalCreateRequest struct {
	GoalName             string   `json:"goalName" binding:"required"`
	TargetAmount         *float64 `json:"targetAmount" binding:"required"`
	TimeDuration         *int     `json:"timeDuration" binding:"required"`
	PercentageAllocation *float64 `json:"percentageAllocation" binding:"required"`
}

type GoalListResponse struct {
	GoalData []calculations.GoalStatus `json:"goalData"`
}
