package goal

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByUserID(ctx context.Context, userID ulid.ULID) ([]*Goal, error)
	GetByIDAndUser(ctx context.Context, id, userID ulid.ULID) (*Goal, error)
	Delete(ctx context.Context, id, userID ulid.ULID) error
}

// ExpenseRecorder books an expense against the user's balance inside the caller's transaction.
type ExpenseRecorder interface {
	RecordExpense(ctx context.Context, userID ulid.ULID, category string, amount float64, date time.Time) error
}
