package infrastructure

import (
	"context"
	"errors"
	"strings"
	"time"

	"Finboard/internal/domain/calculations"
	"Finboard/internal/domain/shared"
	"Finboard/internal/domain/user"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxGoalAllocation = 100.0

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

type userDB struct {
	Id                    string    `gorm:"type:varchar(26);primaryKey"`
	Username              string    `gorm:"type:varchar(100);uniqueIndex:idx_users_username;not null"`
	Password              string    `gorm:"type:varchar(255);not null"`
	FirstName             string    `gorm:"type:varchar(100);not null"`
	LastName              string    `gorm:"type:varchar(100);not null"`
	Phone                 string    `gorm:"type:varchar(20)"`
	AccountBalance        float64   `gorm:"not null;default:0"`
	PreviousBalance       float64   `gorm:"not null;default:0"`
	GoalAllocationPercent float64   `gorm:"not null;default:0"`
	CreatedAt             time.Time `gorm:"not null"`
	UpdatedAt             time.Time `gorm:"not null"`
}

func (userDB) TableName() string {
	return "users"
}

func toDomainUser(udb *userDB) (*user.User, error) {
	id, err := pkg.ParseULID(udb.Id)
	if err != nil {
		return nil, appErrors.ErrInternalServer.WithError(err)
	}

	return &user.User{
		Id:                    id,
		Username:              udb.Username,
		Password:              udb.Password,
		FirstName:             udb.FirstName,
		LastName:              udb.LastName,
		Phone:                 udb.Phone,
		AccountBalance:        udb.AccountBalance,
		PreviousBalance:       udb.PreviousBalance,
		GoalAllocationPercent: udb.GoalAllocationPercent,
		CreatedAt:             udb.CreatedAt,
		UpdatedAt:             udb.UpdatedAt,
	}, nil
}

func toDBUser(u *user.User) *userDB {
	return &userDB{
		Id:                    u.Id.String(),
		Username:              u.Username,
		Password:              u.Password,
		FirstName:             u.FirstName,
		LastName:              u.LastName,
		Phone:                 u.Phone,
		AccountBalance:        u.AccountBalance,
		PreviousBalance:       u.PreviousBalance,
		GoalAllocationPercent: u.GoalAllocationPercent,
		CreatedAt:             u.CreatedAt,
		UpdatedAt:             u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	udb := toDBUser(u)
	if err := conn(ctx, r.DB).Create(udb).Error; err != nil {
		if shared.IsUniqueConstraintError(err) {
			return appErrors.ErrDuplicateUser.WithError(err)
		}
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

// Update writes the profile columns. Balances and allocation have their own methods.
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	result := conn(ctx, r.DB).Model(&userDB{}).Where("id = ?", u.Id.String()).Updates(map[string]interface{}{
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"phone":      u.Phone,
		"password":   u.Password,
		"updated_at": u.UpdatedAt,
	})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	var udb userDB
	if err := conn(ctx, r.DB).Where("id = ?", id.String()).First(&udb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var udb userDB
	if err := conn(ctx, r.DB).Where("username = ?", username).First(&udb).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appErrors.ErrUserNotFound.WithError(err)
		}
		return nil, appErrors.NewDatabaseError(err)
	}
	return toDomainUser(&udb)
}

func (r *UserRepository) Exists(ctx context.Context, id ulid.ULID) error {
	var count int64
	if err := conn(ctx, r.DB).Model(&userDB{}).Where("id = ?", id.String()).Count(&count).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	if count == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

// Search does a case-insensitive substring match on username, first name and last name.
func (r *UserRepository) Search(ctx context.Context, query string, excludeID ulid.ULID, limit int) ([]*user.User, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	var rows []userDB
	err := conn(ctx, r.DB).
		Where("id <> ?", excludeID.String()).
		Where("(LOWER(username) LIKE ? ESCAPE '\\' OR LOWER(first_name) LIKE ? ESCAPE '\\' OR LOWER(last_name) LIKE ? ESCAPE '\\')",
			pattern, pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, appErrors.NewDatabaseError(err)
	}

	users := make([]*user.User, 0, len(rows))
	for i := range rows {
		u, err := toDomainUser(&rows[i])
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *UserRepository) GetBalance(ctx context.Context, id ulid.ULID) (shared.Balance, error) {
	return r.balance(conn(ctx, r.DB), id)
}

// LockBalance reads the balance with SELECT ... FOR UPDATE. The sqlite dialect has no
// row locks and relies on its single writer instead.
func (r *UserRepository) LockBalance(ctx context.Context, id ulid.ULID) (shared.Balance, error) {
	return r.balance(conn(ctx, r.DB).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *UserRepository) balance(db *gorm.DB, id ulid.ULID) (shared.Balance, error) {
	var udb userDB
	err := db.Select("id", "account_balance", "previous_balance").Where("id = ?", id.String()).First(&udb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.Balance{}, appErrors.ErrUserNotFound.WithError(err)
		}
		return shared.Balance{}, appErrors.NewDatabaseError(err)
	}
	return shared.Balance{Current: udb.AccountBalance, Previous: udb.PreviousBalance}, nil
}

func (r *UserRepository) SetBalance(ctx context.Context, id ulid.ULID, b shared.Balance) error {
	result := conn(ctx, r.DB).Model(&userDB{}).Where("id = ?", id.String()).Updates(map[string]interface{}{
		"account_balance":  b.Current,
		"previous_balance": b.Previous,
		"updated_at":       pkg.SetTimestamps(),
	})
	if result.Error != nil {
		return appErrors.NewDatabaseError(result.Error)
	}
	if result.RowsAffected == 0 {
		return appErrors.ErrUserNotFound
	}
	return nil
}

// AddGoalAllocation must run inside a transaction so the read and the write see the same row.
func (r *UserRepository) AddGoalAllocation(ctx context.Context, id ulid.ULID, delta float64) error {
	db := conn(ctx, r.DB)

	var udb userDB
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "goal_allocation_percent").
		Where("id = ?", id.String()).
		First(&udb).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appErrors.ErrUserNotFound.WithError(err)
		}
		return appErrors.NewDatabaseError(err)
	}

	next := calculations.Round2(udb.GoalAllocationPercent + delta)
	if delta > 0 && next > maxGoalAllocation {
		return appErrors.NewAllocationExceededError(udb.GoalAllocationPercent, delta)
	}
	if next < 0 {
		next = 0
	}

	if err := db.Model(&userDB{}).Where("id = ?", id.String()).Update("goal_allocation_percent", next).Error; err != nil {
		return appErrors.NewDatabaseError(err)
	}
	return nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
