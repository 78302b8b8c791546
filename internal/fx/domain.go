package fx

import (
	"Finboard/config"
	"Finboard/internal/domain/auth"
	"Finboard/internal/domain/dashboard"
	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/goal"
	"Finboard/internal/domain/report"
	"Finboard/internal/domain/salary"
	"Finboard/internal/domain/shared"
	"Finboard/internal/domain/user"
	"Finboard/internal/infrastructure"
	"Finboard/internal/logger"

	"go.uber.org/fx"
)

// DomainModule provides every domain service.
var DomainModule = fx.Module("domain",
	fx.Provide(
		newUserService,
		newUserCheckerService,
		newOAuthProvider,
		auth.NewService,
		newGoalService,
		newExpenseService,
		newSalaryService,
		newDashboardService,
		newReportService,
	),
	fx.Invoke(
		connectGoalExpenses,
	),
)

// connectGoalExpenses closes the goal -> expense loop once both services exist.
func connectGoalExpenses(goalSvc *goal.Service, expenseSvc *expense.Service) {
	goalSvc.Expenses = expenseSvc
}

func newUserService(repo *infrastructure.UserRepository) *user.Service {
	return user.NewService(repo)
}

func newUserCheckerService(repo *infrastructure.UserRepository) *shared.UserCheckerService {
	return shared.NewUserCheckerService(repo)
}

func newOAuthProvider(cfg *config.Config) auth.OAuthProvider {
	if !cfg.GoogleOAuth.Enabled {
		logger.Info().Msg("google_oauth_disabled")
		return nil
	}

	provider, err := auth.NewGoogleOAuthProvider(cfg.GoogleOAuth)
	if err != nil {
		logger.Warn().Err(err).Msg("google_oauth_misconfigured")
		return nil
	}

	clientIDPreview := cfg.GoogleOAuth.ClientID
	if len(clientIDPreview) > 20 {
		clientIDPreview = clientIDPreview[:20] + "..."
	}
	logger.Info().
		Str("client_id_preview", clientIDPreview).
		Msg("google_oauth_enabled")
	return provider
}

func newGoalService(
	repo *infrastructure.GoalRepository,
	users *infrastructure.UserRepository,
	tx *infrastructure.TxManager,
	userChecker *shared.UserCheckerService,
) *goal.Service {
	return goal.NewService(repo, users, users, tx, userChecker)
}

func newExpenseService(
	repo *infrastructure.ExpenseRepository,
	users *infrastructure.UserRepository,
	tx *infrastructure.TxManager,
	goalSvc *goal.Service,
	userChecker *shared.UserCheckerService,
) *expense.Service {
	return expense.NewService(repo, users, tx, goalSvc, userChecker)
}

func newSalaryService(
	repo *infrastructure.SalaryRepository,
	users *infrastructure.UserRepository,
	tx *infrastructure.TxManager,
	goalSvc *goal.Service,
	expenseSvc *expense.Service,
	userChecker *shared.UserCheckerService,
) *salary.Service {
	return salary.NewService(repo, users, tx, goalSvc, expenseSvc, userChecker)
}

func newDashboardService(
	userSvc *user.Service,
	users *infrastructure.UserRepository,
	goalSvc *goal.Service,
	expenseSvc *expense.Service,
	salarySvc *salary.Service,
	reports *infrastructure.ShareReportRepository,
) *dashboard.Service {
	return dashboard.NewService(userSvc, users, goalSvc, expenseSvc, salarySvc, reports)
}

func newReportService(
	repo *infrastructure.ShareReportRepository,
	userSvc *user.Service,
	dashboardSvc *dashboard.Service,
	publisher report.Publisher,
) *report.Service {
	return report.NewService(repo, userSvc, dashboardSvc, publisher)
}
