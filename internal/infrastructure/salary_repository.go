package infrastructure

import (
	"context"
	"errors"
	"time"

	"Finboard/internal/domain/salary"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type SalaryRepository struct {
	DB *gorm.DB
}

func NewSalaryRepository(db *gorm.DB) *SalaryRepository {
	return &SalaryRepository{DB: db}
}

type salaryDB struct {
	Id         string    `gorm:"type:varchar(26);primaryKey"`
	UserId     string    `gorm:"type:varchar(26);index:idx_salaries_user_date,priority:1;not null"`
	Amount     float64   `gorm:"not null"`
	SalaryDate time.Time `gorm:"index:idx_salaries_user_date,priority:2;not null"`
	CreatedAt  time.Time `gorm:"not null"`
	User       *userDB   `gorm:"foreignKey:UserId;references:Id;constraint:OnDelete:CASCADE"`
}

func (salaryDB) TableName() string {
	return "salaries"
}

func toDomainSalary(sdb *salaryDB) (*salary.Salary, error) {
	id, err := pkg.ParseULID(sdb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	uid, err := pkg.ParseULID(sdb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &salary.Salary{
		Id:         id,
		UserId:     uid,
		Amount:     sdb.Amount,
		SalaryDate: sdb.SalaryDate.UTC(),
		CreatedAt:  sdb.CreatedAt,
	}, nil
}

func toDBSalary(s *salary.Salary) *salaryDB {
	return &salaryDB{
		Id:         s.Id.String(),
		UserId:     s.UserId.String(),
		Amount:     s.Amount,
		SalaryDate: s.SalaryDate,
		CreatedAt:  s.CreatedAt,
	}
}

func (r *SalaryRepository) Create(ctx context.Context, s *salary.Salary) error {
	if err := conn(ctx, r.DB).Create(toDBSalary(s)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *SalaryRepository) GetByUserInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*salary.Salary, error) {
	var rows []salaryDB
	err := conn(ctx, r.DB).
		Where("user_id = ? AND salary_date >= ? AND salary_date < ?", userID.String(), from, to).
		Order("salary_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	salaries := make([]*salary.Salary, 0, len(rows))
	for i := range rows {
		s, err := toDomainSalary(&rows[i])
		if err != nil {
			return nil, err
		}
		salaries = append(salaries, s)
	}
	return salaries, nil
}

func (r *SalaryRepository) GetLast(ctx context.Context, userID ulid.ULID) (*salary.Salary, error) {
	var sdb salaryDB
	err := conn(ctx, r.DB).
		Where("user_id = ?", userID.String()).
		Order("salary_date DESC").
		Order("created_at DESC").
		First(&sdb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrSalaryNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainSalary(&sdb)
}
