package fx

import (
	"Finboard/internal/domain/auth"
	"Finboard/internal/domain/dashboard"
	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/goal"
	"Finboard/internal/domain/report"
	"Finboard/internal/domain/salary"
	"Finboard/internal/domain/user"
	"Finboard/internal/middleware"
	"Finboard/internal/routes"

	"go.uber.org/fx"
)

var RoutesModule = fx.Module("routes",
	fx.Provide(
		newHandler,
	),
)

func newHandler(
	userSvc *user.Service,
	authSvc *auth.Service,
	jwtSvc *middleware.JwtService,
	goalSvc *goal.Service,
	expenseSvc *expense.Service,
	salarySvc *salary.Service,
	dashboardSvc *dashboard.Service,
	reportSvc *report.Service,
) *routes.Handler {
	return &routes.Handler{
		UserService:      userSvc,
		AuthService:      authSvc,
		JwtService:       jwtSvc,
		GoalService:      goalSvc,
		ExpenseService:   expenseSvc,
		SalaryService:    salarySvc,
		DashboardService: dashboardSvc,
		ReportService:    reportSvc,
	}
}
