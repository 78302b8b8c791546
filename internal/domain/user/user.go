package user

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

type User struct {
	Id                    ulid.ULID `json:"id"`
	Username              string    `json:"username"`
	Password              string    `json:"-"`
	FirstName             string    `json:"firstName"`
	LastName              string    `json:"lastName"`
	Phone                 string    `json:"phone,omitempty"`
	AccountBalance        float64   `json:"accountBalance"`
	PreviousBalance       float64   `json:"previousBalance"`
	GoalAllocationPercent float64   `json:"goalAllocationPercent"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// Summary is the public view used by user search and report sender details.
type Summary struct {
	Id        ulid.ULID `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
}

func (u *User) Summary() Summary {
	return Summary{Id: u.Id, Username: u.Username, FirstName: u.FirstName, LastName: u.LastName}
}

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	Search(ctx context.Context, query string, excludeID ulid.ULID, limit int) ([]*User, error)
}
