package goal

import (
	"context"
	"math"
	"strings"

	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/shared"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
)

type Service struct {
	shared.BaseService
	Repository  Repository
	Balances    shared.BalanceStore
	Allocations shared.AllocationStore
	Tx          shared.TxRunner
	// Expenses is wired after construction; the expense service depends on this one.
	Expenses ExpenseRecorder
}

func NewService(
	repo Repository,
	balances shared.BalanceStore,
	allocations shared.AllocationStore,
	tx shared.TxRunner,
	userChecker *shared.UserCheckerService,
) *Service {
	return &Service{
		BaseService: shared.BaseService{UserChecker: userChecker},
		Repository:  repo,
		Balances:    balances,
		Allocations: allocations,
		Tx:          tx,
	}
}

// AddGoal reserves the allocation and inserts the goal atomically, then returns the
// recomputed progress of every goal the user has.
func (s *Service) AddGoal(ctx context.Context, req *CreateRequest) ([]calculations.GoalStatus, error) {
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}
	if err := s.EnsureUserExists(ctx, req.UserId); err != nil {
		return nil, err
	}

	entity := &Goal{
		Id:                   pkg.GenerateULIDObject(),
		UserId:               req.UserId,
		GoalName:             strings.TrimSpace(req.GoalName),
		TargetAmount:         calculations.Round2(req.TargetAmount),
		TimeDuration:         req.TimeDuration,
		PercentageAllocation: req.PercentageAllocation,
		CreatedAt:            pkg.SetTimestamps(),
	}

	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.Allocations.AddGoalAllocation(ctx, req.UserId, req.PercentageAllocation); err != nil {
			return err
		}
		return s.Repository.Create(ctx, entity)
	})
	if err != nil {
		return nil, err
	}

	return s.ListProgress(ctx, req.UserId)
}

func (s *Service) ListGoals(ctx context.Context, userID ulid.ULID) ([]*Goal, error) {
	return s.Repository.GetByUserID(ctx, userID)
}

func (s *Service) ListProgress(ctx context.Context, userID ulid.ULID) ([]calculations.GoalStatus, error) {
	balance, err := s.Balances.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.Repository.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Progress(goals, balance.Current)
}

// Progress computes goal progress for an already loaded set of goals.
func Progress(goals []*Goal, balance float64) ([]calculations.GoalStatus, error) {
	inputs := make([]calculations.GoalInput, 0, len(goals))
	for _, g := range goals {
		inputs = append(inputs, g.toInput())
	}
	return calculations.GoalProgress(inputs, balance)
}

// RedeemGoal spends a met goal: its target is booked as a "Goal: <name>" expense, the goal
// is removed and its allocation released. Unmet goals are rejected without side effects.
func (s *Service) RedeemGoal(ctx context.Context, userID, goalID ulid.ULID) ([]calculations.GoalStatus, error) {
	if s.Expenses == nil {
		return nil, appErrors.ErrInternalServer
	}

	err := s.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		balance, err := s.Balances.LockBalance(ctx, userID)
		if err != nil {
			return err
		}
		entity, err := s.Repository.GetByIDAndUser(ctx, goalID, userID)
		if err != nil {
			return err
		}

		statuses, err := Progress([]*Goal{entity}, balance.Current)
		if err != nil {
			return err
		}
		if !statuses[0].Met {
			return appErrors.NewValidationError("goal", "has not been met yet and cannot be redeemed")
		}

		category := RedeemCategoryPrefix + entity.GoalName
		if err := s.Expenses.RecordExpense(ctx, userID, category, entity.TargetAmount, pkg.Today()); err != nil {
			return err
		}
		if err := s.Repository.Delete(ctx, entity.Id, userID); err != nil {
			return err
		}
		return s.Allocations.AddGoalAllocation(ctx, userID, -entity.PercentageAllocation)
	})
	if err != nil {
		return nil, err
	}

	return s.ListProgress(ctx, userID)
}

func validateCreateRequest(req *CreateRequest) error {
	if strings.TrimSpace(req.GoalName) == "" {
		return appErrors.NewMissingFieldError("goalName")
	}
	if req.TargetAmount <= 0 || math.IsNaN(req.TargetAmount) || math.IsInf(req.TargetAmount, 0) {
		return appErrors.NewValidationError("targetAmount", "must be greater than 0")
	}
	if req.TimeDuration <= 0 {
		return appErrors.NewValidationError("timeDuration", "must be at least 1 month")
	}
	if req.PercentageAllocation <= 0 || req.PercentageAllocation > 100 || math.IsNaN(req.PercentageAllocation) {
		return appErrors.NewValidationError("percentageAllocation", "must be greater than 0 and at most 100")
	}
	return nil
}
