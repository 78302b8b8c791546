package routes

import (
	"Finboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Register mounts the public and authenticated API under /api.
func Register(router gin.IRouter, h *Handler, publicLimiter, userLimiter *middleware.RateLimiter) {
	public := router.Group("/api")
	public.Use(middleware.RateLimit(publicLimiter))
	{
		public.GET("/health", h.Health)
		public.POST("/auth/register", h.Registration)
		public.POST("/auth/login", h.Authenticate)
		public.POST("/auth/google", h.GoogleAuth)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(h.JwtService))
	private.Use(middleware.RateLimitByUser(userLimiter))
	{
		dashboard := private.Group("/dashboard")
		{
			dashboard.GET("", h.GetDashboard)
			dashboard.GET("/account", h.GetAccount)
			dashboard.GET("/transactions", h.GetTransactions)
		}

		users := private.Group("/users")
		{
			users.GET("/search", h.SearchUsers)
			users.PATCH("/me", h.UpdateUserName)
			users.PATCH("/me/password", h.UpdateUserPassword)
		}

		goals := private.Group("/goals")
		{
			goals.GET("", h.ListGoals)
			goals.POST("", h.CreateGoal)
			goals.POST("/:id/redeem", h.RedeemGoal)
		}

		expenses := private.Group("/expenses")
		{
			expenses.POST("", h.CreateExpense)
			expenses.GET("/latest", h.LatestExpenses)
			expenses.GET("/page", h.ExpensePage)
		}

		salaries := private.Group("/salaries")
		{
			salaries.POST("", h.CreateSalary)
			salaries.GET("/last", h.LastSalary)
		}

		reports := private.Group("/reports")
		{
			reports.POST("/share", h.ShareReport)
			reports.POST("/read", h.MarkReportRead)
			reports.GET("/count", h.ReportNumber)
			reports.GET("/unread", h.UnreadReports)
			reports.GET("/unread/count", h.UnreadReportCount)
			reports.GET("/senders", h.ReportSenders)
			reports.GET("/:id", h.GetReport)
		}
	}
}
