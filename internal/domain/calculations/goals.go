package calculations

import (
	"fmt"

	appErrors "Finboard/internal/errors"
)

const GoalMetMessage = "Congratulations, Goal met!!"

type GoalInput struct {
	ID                   string
	GoalName             string
	TargetAmount         float64
	TimeDuration         int
	PercentageAllocation float64
}

type GoalStatus struct {
	GoalID               string  `json:"goalId"`
	GoalName             string  `json:"goalName"`
	Target               float64 `json:"target"`
	TimeDuration         int     `json:"timeDuration"`
	PercentageAllocation float64 `json:"percentageAllocation"`
	Saved                float64 `json:"saved"`
	Remaining            float64 `json:"remaining"`
	ProgressPercentage   float64 `json:"progressPercentage"`
	Message              string  `json:"message"`
	Met                  bool    `json:"met"`
}

// GoalProgress derives each goal's saved amount from its share of the balance.
func GoalProgress(goals []GoalInput, balance float64) ([]GoalStatus, error) {
	statuses := make([]GoalStatus, 0, len(goals))
	for _, g := range goals {
		status, err := progressOf(g, balance)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func progressOf(g GoalInput, balance float64) (GoalStatus, error) {
	if g.TargetAmount <= 0 {
		return GoalStatus{}, appErrors.NewValidationError("targetAmount", "must be greater than 0")
	}
	if g.TimeDuration <= 0 {
		return GoalStatus{}, appErrors.NewValidationError("timeDuration", "must be greater than 0")
	}

	status := GoalStatus{
		GoalID:               g.ID,
		GoalName:             g.GoalName,
		Target:               g.TargetAmount,
		TimeDuration:         g.TimeDuration,
		PercentageAllocation: g.PercentageAllocation,
	}

	saved := Round2(balance * g.PercentageAllocation / 100)
	if saved >= g.TargetAmount {
		status.ProgressPercentage = 100
		status.Remaining = 0
		status.Saved = g.TargetAmount
		status.Message = GoalMetMessage
		status.Met = true
		return status, nil
	}

	status.Saved = saved
	status.ProgressPercentage = Round2(saved / g.TargetAmount * 100)
	status.Remaining = Round2(g.TargetAmount - saved)
	monthly := Round2(g.TargetAmount / float64(g.TimeDuration))
	status.Message = fmt.Sprintf("Save at least $%.2f per month to reach your goal!", monthly)
	return status, nil
}
