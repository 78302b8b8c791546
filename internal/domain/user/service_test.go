package user_test

import (
	"context"
	"strings"
	"testing"

	"Finboard/internal/domain/user"
	appErrors "Finboard/internal/errors"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepository struct {
	createFn        func(ctx context.Context, u *user.User) error
	updateFn        func(ctx context.Context, u *user.User) error
	getByIDFn       func(ctx context.Context, id ulid.ULID) (*user.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*user.User, error)
	searchFn        func(ctx context.Context, query string, excludeID ulid.ULID, limit int) ([]*user.User, error)
}

func (f *fakeUserRepository) Create(ctx context.Context, u *user.User) error {
	if f.createFn != nil {
		return f.createFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) Update(ctx context.Context, u *user.User) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, u)
	}
	return nil
}

func (f *fakeUserRepository) GetByID(ctx context.Context, id ulid.ULID) (*user.User, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	if f.getByUsernameFn != nil {
		return f.getByUsernameFn(ctx, username)
	}
	return nil, appErrors.ErrUserNotFound
}

func (f *fakeUserRepository) Search(ctx context.Context, query string, excludeID ulid.ULID, limit int) ([]*user.User, error) {
	if f.searchFn != nil {
		return f.searchFn(ctx, query, excludeID, limit)
	}
	return nil, nil
}

func TestService_Create(t *testing.T) {
	t.Parallel()

	var stored *user.User
	svc := user.NewService(&fakeUserRepository{
		createFn: func(ctx context.Context, u *user.User) error {
			stored = u
			return nil
		},
	})

	u := &user.User{Username: " Jane@Example.com ", Password: "s3cretpass", FirstName: " Jane ", LastName: "Doe"}
	require.NoError(t, svc.Create(context.Background(), u))

	require.NotNil(t, stored)
	assert.NotEqual(t, ulid.ULID{}, stored.Id)
	assert.Equal(t, "jane@example.com", stored.Username)
	assert.Equal(t, "Jane", stored.FirstName)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"), "password must be a bcrypt hash")
	assert.NoError(t, user.CheckPassword(stored.Password, "s3cretpass"))
	assert.Zero(t, stored.AccountBalance)
}

func TestService_CreateValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     user.User
		wantField string
	}{
		{"missing username", user.User{Password: "x", FirstName: "a", LastName: "b"}, "username"},
		{"missing password", user.User{Username: "a@b.c", FirstName: "a", LastName: "b"}, "password"},
		{"blank first name", user.User{Username: "a@b.c", Password: "x", FirstName: "  ", LastName: "b"}, "firstName"},
		{"missing last name", user.User{Username: "a@b.c", Password: "x", FirstName: "a"}, "lastName"},
		{"not an email", user.User{Username: "alice", Password: "x", FirstName: "a", LastName: "b"}, "username"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := user.NewService(&fakeUserRepository{
				createFn: func(ctx context.Context, u *user.User) error {
					t.Fatal("repository must not be called")
					return nil
				},
			})
			input := tt.input
			err := svc.Create(context.Background(), &input)
			appErr, ok := appErrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, appErr.Details["field"])
		})
	}
}

func TestService_UpdatePassword(t *testing.T) {
	t.Parallel()

	hash, err := user.HashPassword("oldpassword")
	require.NoError(t, err)
	id := ulid.Make()

	tests := []struct {
		name     string
		current  string
		newPass  string
		confirm  string
		wantCode string
	}{
		{"success", "oldpassword", "newpassword", "newpassword", ""},
		{"wrong current", "nope", "newpassword", "newpassword", appErrors.ErrInvalidCredentials.Code},
		{"mismatch", "oldpassword", "newpassword", "different", "INVALID_INPUT"},
		{"too short", "oldpassword", "short", "short", "INVALID_INPUT"},
		{"missing new", "oldpassword", "", "", "MISSING_FIELD"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var updated *user.User
			svc := user.NewService(&fakeUserRepository{
				getByIDFn: func(ctx context.Context, got ulid.ULID) (*user.User, error) {
					return &user.User{Id: got, Password: hash}, nil
				},
				updateFn: func(ctx context.Context, u *user.User) error {
					updated = u
					return nil
				},
			})

			err := svc.UpdatePassword(context.Background(), id, tt.current, tt.newPass, tt.confirm)
			if tt.wantCode == "" {
				require.NoError(t, err)
				require.NotNil(t, updated)
				assert.NoError(t, user.CheckPassword(updated.Password, tt.newPass))
				return
			}
			appErr, ok := appErrors.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Nil(t, updated)
		})
	}
}

func TestService_UpdateName(t *testing.T) {
	t.Parallel()

	id := ulid.Make()
	svc := user.NewService(&fakeUserRepository{
		getByIDFn: func(ctx context.Context, got ulid.ULID) (*user.User, error) {
			return &user.User{Id: got, FirstName: "Old", LastName: "Name"}, nil
		},
	})

	got, err := svc.UpdateName(context.Background(), id, " New ", "Surname")
	require.NoError(t, err)
	assert.Equal(t, "New", got.FirstName)
	assert.Equal(t, "Surname", got.LastName)

	_, err = svc.UpdateName(context.Background(), id, "", "Surname")
	assert.ErrorIs(t, err, appErrors.NewMissingFieldError("firstName"))
}

func TestService_Search(t *testing.T) {
	t.Parallel()

	caller := ulid.Make()
	other := &user.User{Id: ulid.Make(), Username: "bob@example.com", FirstName: "Bob", LastName: "Stone"}
	svc := user.NewService(&fakeUserRepository{
		searchFn: func(ctx context.Context, query string, excludeID ulid.ULID, limit int) ([]*user.User, error) {
			assert.Equal(t, "bo", query)
			assert.Equal(t, caller, excludeID)
			assert.Equal(t, 10, limit)
			return []*user.User{other}, nil
		},
	})

	got, err := svc.Search(context.Background(), caller, " bo ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].FirstName)

	empty, err := svc.Search(context.Background(), caller, "   ")
	require.NoError(t, err)
	assert.Empty(t, empty)
}
