package report

import (
	"context"
	"encoding/json"

	"Finboard/internal/domain/dashboard"
	"Finboard/internal/domain/user"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/logger"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
)

// DashboardSource provides the views a shared report captures.
type DashboardSource interface {
	GetDashboard(ctx context.Context, userID ulid.ULID) (*dashboard.Dashboard, error)
	GetExpensePage(ctx context.Context, userID ulid.ULID) (*dashboard.ExpensePage, error)
}

type Service struct {
	Repository Repository
	Users      *user.Service
	Dashboards DashboardSource
	// Publisher is optional; nil disables report-shared events.
	Publisher Publisher
}

func NewService(repo Repository, users *user.Service, dashboards DashboardSource, publisher Publisher) *Service {
	return &Service{
		Repository: repo,
		Users:      users,
		Dashboards: dashboards,
		Publisher:  publisher,
	}
}

// Share snapshots the sender's dashboard and expense page and delivers it to the
// recipient as an unread report.
func (s *Service) Share(ctx context.Context, senderID, recipientID ulid.ULID) (*ShareReport, error) {
	if pkg.IsEmptyULID(recipientID) {
		return nil, appErrors.NewMissingFieldError("recipientID")
	}
	if senderID == recipientID {
		return nil, appErrors.NewValidationError("recipientID", "must be another user")
	}

	sender, err := s.Users.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	if err := s.Users.Exists(ctx, recipientID); err != nil {
		return nil, err
	}

	dashboardData, err := s.Dashboards.GetDashboard(ctx, senderID)
	if err != nil {
		return nil, err
	}
	expenseData, err := s.Dashboards.GetExpensePage(ctx, senderID)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(Snapshot{
		SenderInfo:    SenderInfo{FirstName: sender.FirstName, LastName: sender.LastName},
		DashboardData: dashboardData,
		ExpenseData:   expenseData,
	})
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	entity := &ShareReport{
		Id:              pkg.GenerateULIDObject(),
		SenderId:        senderID,
		SenderFirstName: sender.FirstName,
		SenderLastName:  sender.LastName,
		ReceiverId:      recipientID,
		Data:            string(data),
		SharedDate:      pkg.SetTimestamps(),
	}
	if err := s.Repository.Create(ctx, entity); err != nil {
		return nil, err
	}

	logger.Info().
		Str("report_id", entity.Id.String()).
		Str("sender_id", senderID.String()).
		Str("receiver_id", recipientID.String()).
		Msg("report_shared")

	s.publish(ctx, entity)
	return entity, nil
}

func (s *Service) publish(ctx context.Context, r *ShareReport) {
	if s.Publisher == nil {
		return
	}
	err := s.Publisher.PublishReportShared(ctx, SharedEvent{
		ReportId:        r.Id,
		SenderId:        r.SenderId,
		ReceiverId:      r.ReceiverId,
		SenderFirstName: r.SenderFirstName,
		SenderLastName:  r.SenderLastName,
		SharedDate:      r.SharedDate,
	})
	if err != nil {
		logger.Warn().
			Err(err).
			Str("report_id", r.Id.String()).
			Msg("report_shared_publish_failed")
	}
}

func (s *Service) UnreadCount(ctx context.Context, receiverID ulid.ULID) (int64, error) {
	return s.Repository.CountUnread(ctx, receiverID)
}

// ReportNumber is the total number of reports the user has received.
func (s *Service) ReportNumber(ctx context.Context, receiverID ulid.ULID) (int64, error) {
	return s.Repository.CountByReceiver(ctx, receiverID)
}

func (s *Service) UnreadIDs(ctx context.Context, receiverID ulid.ULID) ([]ulid.ULID, error) {
	ids, err := s.Repository.GetUnreadIDs(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []ulid.ULID{}
	}
	return ids, nil
}

func (s *Service) SenderDetails(ctx context.Context, receiverID ulid.ULID) ([]SenderDetail, error) {
	details, err := s.Repository.GetSenderDetails(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	if details == nil {
		details = []SenderDetail{}
	}
	return details, nil
}

// GetReport returns a received report. The report must match sender and receiver.
func (s *Service) GetReport(ctx context.Context, receiverID, senderID, reportID ulid.ULID) (*Report, error) {
	if pkg.IsEmptyULID(reportID) {
		return nil, appErrors.NewMissingFieldError("reportId")
	}
	if pkg.IsEmptyULID(senderID) {
		return nil, appErrors.NewMissingFieldError("senderId")
	}

	stored, err := s.Repository.GetForReceiver(ctx, reportID, senderID, receiverID)
	if err != nil {
		return nil, err
	}

	out := &Report{
		Id:         stored.Id,
		SenderId:   stored.SenderId,
		SharedDate: stored.SharedDate,
		ReadFlag:   stored.ReadFlag,
	}
	if err := json.Unmarshal([]byte(stored.Data), &out.Snapshot); err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return out, nil
}

// MarkAsRead flags the report as read and returns the remaining unread count.
func (s *Service) MarkAsRead(ctx context.Context, receiverID, reportID ulid.ULID) (int64, error) {
	if pkg.IsEmptyULID(reportID) {
		return 0, appErrors.NewMissingFieldError("reportId")
	}
	if err := s.Repository.MarkAsRead(ctx, reportID, receiverID); err != nil {
		return 0, err
	}
	return s.Repository.CountUnread(ctx, receiverID)
}
