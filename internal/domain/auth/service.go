package auth

import (
	"context"

	"Finboard/internal/domain/user"
	appErrors "Finboard/internal/errors"
)

type Login struct {
	Username string
	Password string
}

type Registration struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type Service struct {
	UserService *user.Service
	OAuth       OAuthProvider
}

// NewService accepts a nil provider; Google sign-in then reports OAUTH_NOT_CONFIGURED.
func NewService(userSvc *user.Service, provider OAuthProvider) *Service {
	return &Service{UserService: userSvc, OAuth: provider}
}

// Login checks credentials: an unknown username is NotFound, a wrong password Unauthorized.
func (s *Service) Login(ctx context.Context, login Login) (*user.User, error) {
	if login.Username == "" {
		return nil, appErrors.NewMissingFieldError("username")
	}
	if login.Password == "" {
		return nil, appErrors.NewMissingFieldError("password")
	}

	entity, err := s.UserService.GetByUsername(ctx, login.Username)
	if err != nil {
		return nil, err
	}
	if err := user.CheckPassword(entity.Password, login.Password); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Register(ctx context.Context, reg Registration) (*user.User, error) {
	if reg.Password != "" {
		if err := user.ValidatePasswordRequirements(reg.Password); err != nil {
			return nil, err
		}
	}

	exists, err := s.usernameExists(ctx, reg.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, appErrors.ErrDuplicateUser
	}

	entity := &user.User{
		Username:  reg.Email,
		Password:  reg.Password,
		FirstName: reg.FirstName,
		LastName:  reg.LastName,
		Phone:     reg.Phone,
	}
	if err := s.UserService.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

// GoogleLogin signs in with a Google ID token, creating the account on first use.
func (s *Service) GoogleLogin(ctx context.Context, credential string) (*user.User, error) {
	if s.OAuth == nil {
		return nil, appErrors.NewAuthError("OAUTH_NOT_CONFIGURED", "Google sign-in is not configured")
	}
	if credential == "" {
		return nil, appErrors.NewMissingFieldError("credential")
	}

	info, err := s.OAuth.VerifyToken(ctx, credential)
	if err != nil {
		return nil, err
	}

	entity, err := s.UserService.GetByUsername(ctx, info.Email)
	if err == nil {
		return entity, nil
	}
	if !isUserNotFound(err) {
		return nil, err
	}

	password, err := generateSecurePassword()
	if err != nil {
		return nil, err
	}
	entity = &user.User{
		Username:  info.Email,
		Password:  password,
		FirstName: info.FirstName,
		LastName:  info.LastName,
	}
	if err := s.UserService.Create(ctx, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) usernameExists(ctx context.Context, username string) (bool, error) {
	if username == "" {
		return false, nil
	}
	_, err := s.UserService.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	if isUserNotFound(err) {
		return false, nil
	}
	return false, err
}

func isUserNotFound(err error) bool {
	appErr, ok := appErrors.AsAppError(err)
	return ok && appErr.Code == appErrors.ErrUserNotFound.Code
}
