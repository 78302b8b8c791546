package infrastructure

import (
	"context"
	"errors"
	"time"

	"Finboard/internal/domain/report"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ShareReportRepository struct {
	DB *gorm.DB
}

func NewShareReportRepository(db *gorm.DB) *ShareReportRepository {
	return &ShareReportRepository{DB: db}
}

type shareReportDB struct {
	Id              string    `gorm:"type:varchar(26);primaryKey"`
	SenderId        string    `gorm:"type:varchar(26);index;not null"`
	SenderFirstName string    `gorm:"type:varchar(100);not null"`
	SenderLastName  string    `gorm:"type:varchar(100);not null"`
	ReceiverId      string    `gorm:"type:varchar(26);index:idx_share_reports_receiver_read,priority:1;not null"`
	Data            string    `gorm:"type:text;not null"`
	SharedDate      time.Time `gorm:"not null"`
	ReadFlag        bool      `gorm:"index:idx_share_reports_receiver_read,priority:2;not null;default:false"`
	Sender          *userDB   `gorm:"foreignKey:SenderId;references:Id;constraint:OnDelete:CASCADE"`
	Receiver        *userDB   `gorm:"foreignKey:ReceiverId;references:Id;constraint:OnDelete:CASCADE"`
}

func (shareReportDB) TableName() string {
	return "share_reports"
}

func toDomainShareReport(rdb *shareReportDB) (*report.ShareReport, error) {
	id, err := pkg.ParseULID(rdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	sender, err := pkg.ParseULID(rdb.SenderId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	receiver, err := pkg.ParseULID(rdb.ReceiverId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &report.ShareReport{
		Id:              id,
		SenderId:        sender,
		SenderFirstName: rdb.SenderFirstName,
		SenderLastName:  rdb.SenderLastName,
		ReceiverId:      receiver,
		Data:            rdb.Data,
		SharedDate:      rdb.SharedDate,
		ReadFlag:        rdb.ReadFlag,
	}, nil
}

func toDBShareReport(r *report.ShareReport) *shareReportDB {
	return &shareReportDB{
		Id:              r.Id.String(),
		SenderId:        r.SenderId.String(),
		SenderFirstName: r.SenderFirstName,
		SenderLastName:  r.SenderLastName,
		ReceiverId:      r.ReceiverId.String(),
		Data:            r.Data,
		SharedDate:      r.SharedDate,
		ReadFlag:        r.ReadFlag,
	}
}

func (r *ShareReportRepository) Create(ctx context.Context, sr *report.ShareReport) error {
	if err := conn(ctx, r.DB).Create(toDBShareReport(sr)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *ShareReportRepository) CountByReceiver(ctx context.Context, receiverID ulid.ULID) (int64, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&shareReportDB{}).
		Where("receiver_id = ?", receiverID.String()).
		Count(&count).Error
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}

func (r *ShareReportRepository) CountUnread(ctx context.Context, receiverID ulid.ULID) (int64, error) {
	var count int64
	err := conn(ctx, r.DB).Model(&shareReportDB{}).
		Where("receiver_id = ? AND read_flag = ?", receiverID.String(), false).
		Count(&count).Error
	if err != nil {
		return 0, appErrors.NewDatabaseError(err)
	}
	return count, nil
}

func (r *ShareReportRepository) GetUnreadIDs(ctx context.Context, receiverID ulid.ULID) ([]ulid.ULID, error) {
	var raw []string
	err := conn(ctx, r.DB).Model(&shareReportDB{}).
		Where("receiver_id = ? AND read_flag = ?", receiverID.String(), false).
		Order("shared_date DESC").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	ids := make([]ulid.ULID, 0, len(raw))
	for _, s := range raw {
		id, err := pkg.ParseULID(s)
		if err != nil {
			return nil, appErrors.ErrInternalServer.WithError(err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *ShareReportRepository) GetSenderDetails(ctx context.Context, receiverID ulid.ULID) ([]report.SenderDetail, error) {
	var rows []shareReportDB
	err := conn(ctx, r.DB).
		Select("id", "sender_id", "sender_first_name", "sender_last_name", "shared_date", "read_flag", "receiver_id").
		Where("receiver_id = ?", receiverID.String()).
		Order("shared_date DESC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	details := make([]report.SenderDetail, 0, len(rows))
	for i := range rows {
		sr, err := toDomainShareReport(&rows[i])
		if err != nil {
			return nil, err
		}
		details = append(details, report.SenderDetail{
			ReportId:   sr.Id,
			SenderId:   sr.SenderId,
			FirstName:  sr.SenderFirstName,
			LastName:   sr.SenderLastName,
			SharedDate: sr.SharedDate,
			ReadFlag:   sr.ReadFlag,
		})
	}
	return details, nil
}

func (r *ShareReportRepository) GetForReceiver(ctx context.Context, reportID, senderID, receiverID ulid.ULID) (*report.ShareReport, error) {
	var rdb shareReportDB
	err := conn(ctx, r.DB).
		Where("id = ? AND sender_id = ? AND receiver_id = ?", reportID.String(), senderID.String(), receiverID.String()).
		First(&rdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrReportNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainShareReport(&rdb)
}

func (r *ShareReportRepository) MarkAsRead(ctx context.Context, reportID, receiverID ulid.ULID) error {
	result := conn(ctx, r.DB).Model(&shareReportDB{}).
		Where("id = ? AND receiver_id = ? AND read_flag = ?", reportID.String(), receiverID.String(), false).
		Update("read_flag", true)
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrReportNotFound
	}
	return nil
}
