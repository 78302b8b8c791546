package contracts

import (
	"time"

	"github.com/oklog/ulid/v2"
)

type ShareReportRequest struct {
	RecipientID string `json:"recipientID" binding:"required"`
}

type MarkReportReadRequest struct {
	ReportID string `json:"reportId" binding:"required"`
}

type ShareReportResponse struct {
	ReportId   string    `json:"reportId"`
	ReceiverId string    `json:"receiverId"`
	SharedDate time.Time `json:"sharedDate"`
}

type ReportCountResponse struct {
	ReportCount int64 `json:"reportCount"`
}

type ReportNumberResponse struct {
	ReportNumber int64 `json:"reportNumber"`
}

type UnreadReportsResponse struct {
	UnreadReportIds []ulid.ULID `json:"unreadReportIds"`
}
