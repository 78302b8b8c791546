package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

const SystemErrorMessage = "a system error occurred"

var (
	ErrNotFound           = NewAppError("NOT_FOUND", "resource not found", http.StatusNotFound)
	ErrUnauthorized       = NewAppError("UNAUTHORIZED", "unauthorized", http.StatusUnauthorized)
	ErrBadRequest         = NewAppError("BAD_REQUEST", "invalid request", http.StatusBadRequest)
	ErrInvalidInput       = NewAppError("INVALID_INPUT", "invalid input", http.StatusBadRequest)
	ErrInternalServer     = NewAppError("SYSTEM_ERROR", SystemErrorMessage, http.StatusInternalServerError)
	ErrInvalidCredentials = NewAppError("INVALID_CREDENTIALS", "incorrect password", http.StatusUnauthorized)
	ErrDuplicateUser      = NewAppError("DUPLICATE_USER", "username already exists", http.StatusBadRequest)
	ErrUserNotFound       = NewAppError("USER_NOT_FOUND", "user not found", http.StatusNotFound)
	ErrGoalNotFound       = NewAppError("GOAL_NOT_FOUND", "goal not found", http.StatusNotFound)
	ErrReportNotFound     = NewAppError("REPORT_NOT_FOUND", "report not found", http.StatusNotFound)
	ErrSalaryNotFound     = NewAppError("SALARY_NOT_FOUND", "no salary recorded", http.StatusNotFound)
	ErrTooManyRequests    = NewAppError("RATE_LIMIT_EXCEEDED", "too many requests, try again in a few minutes", http.StatusTooManyRequests)
)

type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Details    map[string]interface{}
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s - %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so clones produced by WithError/WithDetails still match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	clone := e.clone()
	if details == nil {
		clone.Details = make(map[string]interface{})
		return clone
	}
	clone.Details = make(map[string]interface{}, len(details))
	for k, v := range details {
		clone.Details[k] = v
	}
	return clone
}

func (e *AppError) WithError(err error) *AppError {
	clone := e.clone()
	clone.Err = err
	return clone
}

func (e *AppError) WithMessage(message string) *AppError {
	clone := e.clone()
	clone.Message = message
	return clone
}

// IsSystem reports whether the error is a server side failure whose detail must stay in the logs.
func (e *AppError) IsSystem() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

func NewAppError(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    make(map[string]interface{}),
	}
}

func WrapError(err error, code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Err:        err,
		Details:    make(map[string]interface{}),
	}
}

func (e *AppError) clone() *AppError {
	if e == nil {
		return nil
	}
	clone := *e
	if e.Details != nil {
		clone.Details = make(map[string]interface{}, len(e.Details))
		for k, v := range e.Details {
			clone.Details[k] = v
		}
	} else {
		clone.Details = make(map[string]interface{})
	}
	return &clone
}

func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func FromError(err error) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}

	if errors.Is(err, context.Canceled) {
		return WrapError(err, "REQUEST_CANCELED", "request canceled by client", http.StatusRequestTimeout)
	}

	return ErrInternalServer.WithError(err)
}

func NewAuthError(code, message string) *AppError {
	return NewAppError(code, message, http.StatusUnauthorized)
}

// NewMissingFieldError reports a required field that was absent or blank.
func NewMissingFieldError(field string) *AppError {
	return &AppError{
		Code:       "MISSING_FIELD",
		Message:    fmt.Sprintf("%s is required", field),
		StatusCode: http.StatusBadRequest,
		Details:    map[string]interface{}{"field": field},
	}
}

func NewValidationError(field, message string) *AppError {
	return &AppError{
		Code:       "INVALID_INPUT",
		Message:    fmt.Sprintf("%s %s", field, message),
		StatusCode: http.StatusBadRequest,
		Details:    map[string]interface{}{"field": field},
	}
}

func NewAllocationExceededError(current, requested float64) *AppError {
	remaining := 100 - current
	if remaining < 0 {
		remaining = 0
	}
	return &AppError{
		Code:       "ALLOCATION_EXCEEDED",
		Message:    fmt.Sprintf("goal allocation exceeds 100%%, you can allocate at most %.2f%% more", remaining),
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"current":   current,
			"requested": requested,
			"remaining": remaining,
		},
	}
}

func NewDatabaseError(err error) *AppError {
	return WrapError(err, "DATABASE_ERROR", SystemErrorMessage, http.StatusInternalServerError)
}

func NewNotFoundError(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
		Details: map[string]interface{}{
			"resource": resource,
		},
	}
}

func ParseValidationErrors(err error) *AppError {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrBadRequest.WithError(err)
	}

	fieldErrors := make([]map[string]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fieldErrors = append(fieldErrors, map[string]string{
			"field":   lowerFirst(fieldErr.Field()),
			"message": translateValidationError(fieldErr),
		})
	}

	code, message := "INVALID_INPUT", "request validation failed"
	if len(validationErrors) > 0 && validationErrors[0].Tag() == "required" {
		code = "MISSING_FIELD"
		message = fmt.Sprintf("%s is required", lowerFirst(validationErrors[0].Field()))
	}

	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
		Details: map[string]interface{}{
			"fields": fieldErrors,
		},
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

func translateValidationError(fe validator.FieldError) string {
	field := lowerFirst(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, lowerFirst(fe.Param()))
	case "datetime":
		return fmt.Sprintf("%s must be a date formatted as %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed the %q check", field, fe.Tag())
	}
}
