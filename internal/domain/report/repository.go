package report

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, report *ShareReport) error
	// CountByReceiver counts every report received, read or not.
	CountByReceiver(ctx context.Context, receiverID ulid.ULID) (int64, error)
	CountUnread(ctx context.Context, receiverID ulid.ULID) (int64, error)
	GetUnreadIDs(ctx context.Context, receiverID ulid.ULID) ([]ulid.ULID, error)
	GetSenderDetails(ctx context.Context, receiverID ulid.ULID) ([]SenderDetail, error)
	GetForReceiver(ctx context.Context, reportID, senderID, receiverID ulid.ULID) (*ShareReport, error)
	// MarkAsRead flips an unread report; a report that is already read is NotFound.
	MarkAsRead(ctx context.Context, reportID, receiverID ulid.ULID) error
}

type Publisher interface {
	PublishReportShared(ctx context.Context, event SharedEvent) error
}
