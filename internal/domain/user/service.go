package user

import (
	"context"
	"strings"

	"Finboard/internal/domain/shared"
	appErrors "Finboard/internal/errors"
	"Finboard/internal/pkg"

	"github.com/oklog/ulid/v2"
	"golang.org/x/crypto/bcrypt"
)

const (
	bcryptCost        = 12
	MinPasswordLength = 8
	searchLimit       = 10
)

type Service struct {
	Repository Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repository: repo}
}

// Create hashes the plaintext password held in user.Password and stores a new user with a
// zero balance. Duplicate usernames fail with DUPLICATE_USER.
func (s *Service) Create(ctx context.Context, user *User) error {
	user.Username = shared.NormalizeUsername(user.Username)
	user.FirstName = shared.NormalizeName(user.FirstName)
	user.LastName = shared.NormalizeName(user.LastName)
	if err := validateProfile(user); err != nil {
		return err
	}

	user.Id = pkg.GenerateULIDObject()
	now := pkg.SetTimestamps()
	user.CreatedAt = now
	user.UpdatedAt = now

	hashedPassword, err := HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = hashedPassword

	return s.Repository.Create(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, id ulid.ULID) (*User, error) {
	return s.Repository.GetByID(ctx, id)
}

func (s *Service) GetByUsername(ctx context.Context, username string) (*User, error) {
	return s.Repository.GetByUsername(ctx, shared.NormalizeUsername(username))
}

func (s *Service) Exists(ctx context.Context, userID ulid.ULID) error {
	_, err := s.GetByID(ctx, userID)
	return err
}

func (s *Service) UpdateName(ctx context.Context, userID ulid.ULID, firstName, lastName string) (*User, error) {
	firstName = shared.NormalizeName(firstName)
	lastName = shared.NormalizeName(lastName)
	if firstName == "" {
		return nil, appErrors.NewMissingFieldError("firstName")
	}
	if lastName == "" {
		return nil, appErrors.NewMissingFieldError("lastName")
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.UpdatedAt = pkg.SetTimestamps()

	if err := s.Repository.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) UpdatePassword(ctx context.Context, userID ulid.ULID, currentPassword, newPassword, confirmPassword string) error {
	if currentPassword == "" {
		return appErrors.NewMissingFieldError("currentPassword")
	}
	if newPassword == "" {
		return appErrors.NewMissingFieldError("newPassword")
	}
	if newPassword != confirmPassword {
		return appErrors.NewValidationError("confirmPassword", "does not match the new password")
	}
	if err := ValidatePasswordRequirements(newPassword); err != nil {
		return err
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := CheckPassword(user.Password, currentPassword); err != nil {
		return err
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashedPassword
	user.UpdatedAt = pkg.SetTimestamps()

	return s.Repository.Update(ctx, user)
}

// Search matches username, first name or last name, never returning the caller.
func (s *Service) Search(ctx context.Context, userID ulid.ULID, query string) ([]Summary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Summary{}, nil
	}

	users, err := s.Repository.Search(ctx, query, userID, searchLimit)
	if err != nil {
		return nil, err
	}

	results := make([]Summary, 0, len(users))
	for _, u := range users {
		results = append(results, u.Summary())
	}
	return results, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return appErrors.ErrInvalidCredentials
	}
	return nil
}

func ValidatePasswordRequirements(password string) error {
	if len(password) < MinPasswordLength {
		return appErrors.NewValidationError("password", "must contain at least 8 characters")
	}
	return nil
}

func validateProfile(user *User) error {
	switch {
	case user.Username == "":
		return appErrors.NewMissingFieldError("username")
	case user.Password == "":
		return appErrors.NewMissingFieldError("password")
	case user.FirstName == "":
		return appErrors.NewMissingFieldError("firstName")
	case user.LastName == "":
		return appErrors.NewMissingFieldError("lastName")
	}
	if !strings.Contains(user.Username, "@") {
		return appErrors.NewValidationError("username", "must be an email address")
	}
	return nil
}
