package infrastructure

import (
	"context"
	"time"

	"Finboard/internal/domain/expense"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
)

type ExpenseRepository struct {
	DB *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

type expenseDB struct {
	Id            string    `gorm:"type:varchar(26);primaryKey"`
	UserId        string    `gorm:"type:varchar(26);index:idx_expenses_user_date,priority:1;not null"`
	Category      string    `gorm:"type:varchar(100);not null"`
	Amount        float64   `gorm:"not null"`
	Date          time.Time `gorm:"index:idx_expenses_user_date,priority:2;not null"`
	WeekStartDate time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	User          *userDB   `gorm:"foreignKey:UserId;references:Id;constraint:OnDelete:CASCADE"`
}

func (expenseDB) TableName() string {
	return "expenses"
}

func toDomainExpense(edb *expenseDB) (*expense.Expense, error) {
	id, err := pkg.ParseULID(edb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	uid, err := pkg.ParseULID(edb.UserId)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}
	return &expense.Expense{
		Id:            id,
		UserId:        uid,
		Category:      edb.Category,
		Amount:        edb.Amount,
		Date:          edb.Date.UTC(),
		WeekStartDate: edb.WeekStartDate.UTC(),
		CreatedAt:     edb.CreatedAt,
	}, nil
}

func toDBExpense(e *expense.Expense) *expenseDB {
	return &expenseDB{
		Id:            e.Id.String(),
		UserId:        e.UserId.String(),
		Category:      e.Category,
		Amount:        e.Amount,
		Date:          e.Date,
		WeekStartDate: e.WeekStartDate,
		CreatedAt:     e.CreatedAt,
	}
}

func (r *ExpenseRepository) Create(ctx context.Context, e *expense.Expense) error {
	if err := conn(ctx, r.DB).Create(toDBExpense(e)).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func (r *ExpenseRepository) GetByUserInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*expense.Expense, error) {
	return r.find(conn(ctx, r.DB).
		Where("user_id = ? AND date >= ? AND date < ?", userID.String(), from, to).
		Order("date ASC"))
}

func (r *ExpenseRepository) GetByUserSince(ctx context.Context, userID ulid.ULID, since time.Time) ([]*expense.Expense, error) {
	return r.find(conn(ctx, r.DB).
		Where("user_id = ? AND date >= ?", userID.String(), since).
		Order("date ASC"))
}

// GetLatest orders by date, then by insertion time for expenses on the same day.
func (r *ExpenseRepository) GetLatest(ctx context.Context, userID ulid.ULID, limit int) ([]*expense.Expense, error) {
	return r.find(conn(ctx, r.DB).
		Where("user_id = ?", userID.String()).
		Order("date DESC").
		Order("created_at DESC").
		Limit(limit))
}

func (r *ExpenseRepository) find(query *gorm.DB) ([]*expense.Expense, error) {
	var rows []expenseDB
	if err := query.Find(&rows).Error; err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	expenses := make([]*expense.Expense, 0, len(rows))
	for i := range rows {
		e, err := toDomainExpense(&rows[i])
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, nil
}
