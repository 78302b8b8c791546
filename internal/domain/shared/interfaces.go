package shared

import (
	"context"

	"github.com/oklog/ulid/v2"
)

type UserChecker interface {
	Exists(ctx context.Context, userID ulid.ULID) error
}

// TxRunner executes fn atomically. Repositories called with the context handed to fn
// take part in the same transaction; a nested call joins the outer one.
type TxRunner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type Balance struct {
	Current  float64
	Previous float64
}

// BalanceStore reads and writes a user's running balance. LockBalance must be called
// inside a transaction; it holds the user row until commit.
type BalanceStore interface {
	GetBalance(ctx context.Context, userID ulid.ULID) (Balance, error)
	LockBalance(ctx context.Context, userID ulid.ULID) (Balance, error)
	SetBalance(ctx context.Context, userID ulid.ULID, balance Balance) error
}

// AllocationStore reserves (positive delta) or frees (negative delta) goal allocation.
type AllocationStore interface {
	AddGoalAllocation(ctx context.Context, userID ulid.ULID, delta float64) error
}
