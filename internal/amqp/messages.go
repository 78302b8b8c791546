package amqp

import (
	"encoding/json"
	"time"

	"Finboard/internal/domain/report"
)

// ReportSharedMessage announces that a report was delivered to a receiver.
// It carries ids and sender names only; the snapshot stays in the database.
type ReportSharedMessage struct {
	ReportID        string    `json:"reportId"`
	SenderID        string    `json:"senderId"`
	ReceiverID      string    `json:"receiverId"`
	SenderFirstName string    `json:"senderFirstName"`
	SenderLastName  string    `json:"senderLastName"`
	SharedDate      time.Time `json:"sharedDate"`
}

func NewReportSharedMessage(event report.SharedEvent) *ReportSharedMessage {
	return &ReportSharedMessage{
		ReportID:        event.ReportId.String(),
		SenderID:        event.SenderId.String(),
		ReceiverID:      event.ReceiverId.String(),
		SenderFirstName: event.SenderFirstName,
		SenderLastName:  event.SenderLastName,
		SharedDate:      event.SharedDate,
	}
}

func (m *ReportSharedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ReportSharedMessageFromJSON(data []byte) (*ReportSharedMessage, error) {
	var msg ReportSharedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
