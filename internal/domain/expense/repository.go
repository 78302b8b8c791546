package expense

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, expense *Expense) error
	// GetByUserInRange returns expenses dated in [from, to).
	GetByUserInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*Expense, error)
	GetByUserSince(ctx context.Context, userID ulid.ULID, since time.Time) ([]*Expense, error)
	// GetLatest orders by date then creation time, newest first.
	GetLatest(ctx context.Context, userID ulid.ULID, limit int) ([]*Expense, error)
}
