package infrastructure

import (
	"context"
	"errors"
	"time"

	"Finboard/internal/domain/goal"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type GoalRepository struct {
	DB *gorm.DB
}

func NewGoalRepository(db *gorm.DB) *GoalRepository {
	return &GoalRepository{DB: db}
}

type goalDB struct {
	Id                   string    `gorm:"type:varchar(26);primaryKey"`
	UserId               string    `gorm:"type:varchar(26);index;not null"`
	GoalName             string    `gorm:"type:varchar(100);not null"`
	TargetAmount         float64   `gorm:"not null"`
	TimeDuration         int       `gorm:"not null"`
	PercentageAllocation float64   `gorm:"not null"`
	CreatedAt            time.Time `gorm:"not null"`
	User                 *userDB   `gorm:"foreignKey:UserId;references:Id;constraint:OnDelete:CASCADE"`
}

func (goalDB) TableName() string {
	return "goals"
}

func toDomainGoal(gdb *goalDB) (*goal.Goal, error) {
	id, err := pkg.ParseULID(gdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	uid, err := pkg.ParseULID(gdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &goal.Goal{
		Id:                   id,
		UserId:               uid,
		GoalName:             gdb.GoalName,
		TargetAmount:         gdb.TargetAmount,
		TimeDuration:         gdb.TimeDuration,
		PercentageAllocation: gdb.PercentageAllocation,
		CreatedAt:            gdb.CreatedAt,
	}, nil
}

func toDBGoal(g *goal.Goal) *goalDB {
	return &goalDB{
		Id:                   g.Id.String(),
		UserId:               g.UserId.String(),
		GoalName:             g.GoalName,
		TargetAmount:         g.TargetAmount,
		TimeDuration:         g.TimeDuration,
		PercentageAllocation: g.PercentageAllocation,
		CreatedAt:            g.CreatedAt,
	}
}

func (r *GoalRepository) Create(ctx context.Context, g *goal.Goal) error {
	if err := conn(ctx, r.DB).Create(toDBGoal(g)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *GoalRepository) GetByUserID(ctx context.Context, userID ulid.ULID) ([]*goal.Goal, error) {
	var rows []goalDB
	if err := conn(ctx, r.DB).Where("user_id = ?", userID.String()).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	goals := make([]*goal.Goal, 0, len(rows))
	for i := range rows {
		g, err := toDomainGoal(&rows[i])
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, nil
}

func (r *GoalRepository) GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*goal.Goal, error) {
	var gdb goalDB
	err := conn(ctx, r.DB).Where("id = ? AND user_id = ?", id.String(), userID.String()).First(&gdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrGoalNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainGoal(&gdb)
}

func (r *GoalRepository) Delete(ctx context.Context, id, userID ulid.ULID) error {
	result := conn(ctx, r.DB).Where("id = ? AND user_id = ?", id.String(), userID.String()).Delete(&goalDB{})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrGoalNotFound
	}
	return nil
}
