package contracts

import (
	"net/http"

	appErrors "Finboard/internal/errors"
)

const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)

// Envelope wraps every response body. StatusCode mirrors the HTTP status.
type Envelope struct {
	Status     string                 `json:"status"`
	StatusCode int                    `json:"statusCode"`
	Message    string                 `json:"message,omitempty"`
	Data       interface{}            `json:"data,omitempty"`
	Error      string                 `json:"error,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

func Success(statusCode int, message string, data interface{}) Envelope {
	return Envelope{
		Status:     StatusSuccess,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// Failure renders an application error. System errors never expose their cause.
func Failure(appErr *appErrors.AppError) Envelope {
	env := Envelope{
		Status:     StatusFailed,
		StatusCode: appErr.StatusCode,
		Message:    appErr.Message,
		Error:      appErr.Code,
	}
	if appErr.StatusCode == 0 {
		env.StatusCode = http.StatusInternalServerError
	}
	if appErr.IsSystem() {
		env.Message = appErrors.SystemErrorMessage
		return env
	}
	if len(appErr.Details) > 0 {
		env.Details = appErr.Details
	}
	return env
}
