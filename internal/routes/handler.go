package routes

import (
	"net/http"

	"Finboard/internal/contracts"
	"Finboard/internal/domain/auth"
	"Finboard/internal/domain/dashboard"
	"Finboard/internal/domain/expense"
	"Finboard/internal/domain/goal"
	"Finboard/internal/domain/report"
	"Finboard/internal/domain/salary"
	"Finboard/internal/domain/user"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/logger"
	"Finboard/internal/middleware"
	"Finboard/internal/pkg"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

type Handler struct {
	UserService      *user.Service
	AuthService      *auth.Service
	JwtService       *middleware.JwtService
	GoalService      *goal.Service
	ExpenseService   *expense.Service
	SalaryService    *salary.Service
	DashboardService *dashboard.Service
	ReportService    *report.Service
}

func (h *Handler) GetUserIDFromContext(c *gin.Context) (ulid.ULID, error) {
	userIDStr, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}

	s, ok := userIDStr.(string)
	if !ok {
		return ulid.ULID{}, appErrors.ErrUnauthorized
	}
	userID, err := pkg.ParseULID(s)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithError(err)
	}

	return userID, nil
}

// parseID reads a ULID from a path parameter or query value.
func parseID(field, value string) (ulid.ULID, error) {
	if value == "" {
		return ulid.ULID{}, appErrors.NewMissingFieldError(field)
	}
	id, err := pkg.ParseULID(value)
	if err != nil {
		return ulid.ULID{}, appErrors.NewValidationError(field, "is not a valid id")
	}
	return id, nil
}

func (h *Handler) bindJSON(c *gin.Context, body interface{}) bool {
	if err := c.ShouldBindJSON(body); err != nil {
		h.respondError(c, appErrors.ParseValidationErrors(err))
		return false
	}
	return true
}

func (h *Handler) respondSuccess(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, contracts.Success(status, message, data))
}

func (h *Handler) respondOK(c *gin.Context, data interface{}) {
	h.respondSuccess(c, http.StatusOK, "", data)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	event := logger.Warn()
	if appErr.IsSystem() {
		event = logger.Error()
	}
	event = event.Str("code", appErr.Code).Str("path", c.FullPath())
	if appErr.Err != nil {
		event = event.Err(appErr.Err)
	}
	event.Msg("request_error")
	c.JSON(appErr.StatusCode, contracts.Failure(appErr))
}
