package report

import (
	"time"

	"Finboard/internal/domain/dashboard"

	"github.com/oklog/ulid/v2"
)

// ShareReport is an immutable snapshot sent from one user to another. Only ReadFlag
// changes after creation, and only from false to true.
type ShareReport struct {
	Id              ulid.ULID `json:"id"`
	SenderId        ulid.ULID `json:"senderId"`
	SenderFirstName string    `json:"senderFirstName"`
	SenderLastName  string    `json:"senderLastName"`
	ReceiverId      ulid.ULID `json:"receiverId"`
	Data            string    `json:"-"`
	SharedDate      time.Time `json:"sharedDate"`
	ReadFlag        bool      `json:"readFlag"`
}

type SenderInfo struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Snapshot is what gets serialized into ShareReport.Data.
type Snapshot struct {
	SenderInfo    SenderInfo             `json:"senderInfo"`
	DashboardData *dashboard.Dashboard   `json:"dashboardData"`
	ExpenseData   *dashboard.ExpensePage `json:"expenseData"`
}

// SenderDetail is one row of the received reports list.
type SenderDetail struct {
	ReportId   ulid.ULID `json:"reportId"`
	SenderId   ulid.ULID `json:"senderId"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	SharedDate time.Time `json:"sharedDate"`
	ReadFlag   bool      `json:"readFlag"`
}

// Report is a received report with its snapshot decoded.
type Report struct {
	Id         ulid.ULID `json:"id"`
	SenderId   ulid.ULID `json:"senderId"`
	SharedDate time.Time `json:"sharedDate"`
	ReadFlag   bool      `json:"readFlag"`
	Snapshot
}

// SharedEvent is published after a report has been stored.
type SharedEvent struct {
	ReportId        ulid.ULID
	SenderId        ulid.ULID
	ReceiverId      ulid.ULID
	SenderFirstName string
	SenderLastName  string
	SharedDate      time.Time
}
