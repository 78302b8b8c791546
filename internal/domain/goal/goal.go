package goal

import (
	"time"

	"Finboard/internal/domain/calculations"

	"github.com/oklog/ulid/v2"
)

type Goal struct {
	Id                   ulid.ULID `json:"id"`
	UserId               ulid.ULID `json:"userId"`
	GoalName             string    `json:"goalName"`
	TargetAmount         float64   `json:"targetAmount"`
	TimeDuration         int       `json:"timeDuration"`
	PercentageAllocation float64   `json:"percentageAllocation"`
	CreatedAt            time.Time `json:"createdAt"`
}

type CreateRequest struct {
	UserId               ulid.ULID
	GoalName             string
	TargetAmount         float64
	TimeDuration         int
	PercentageAllocation float64
}

// RedeemCategoryPrefix marks expenses booked when a met goal is redeemed.
const RedeemCategoryPrefix = "Goal: "

func (g *Goal) toInput() calculations.GoalInput {
	return calculations.GoalInput{
		ID:                   g.Id.String(),
		GoalName:             g.GoalName,
		TargetAmount:         g.TargetAmount,
		TimeDuration:         g.TimeDuration,
		PercentageAllocation: g.PercentageAllocation,
	}
}
