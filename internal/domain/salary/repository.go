package salary

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type Repository interface {
	Create(ctx context.Context, salary *Salary) error
	// GetByUserInRange returns salaries dated in [from, to).
	GetByUserInRange(ctx context.Context, userID ulid.ULID, from, to time.Time) ([]*Salary, error)
	// GetLast returns the most recent salary by date or ErrSalaryNotFound.
	GetLast(ctx context.Context, userID ulid.ULID) (*Salary, error)
}
