package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	appErrors "Finboard/internal/errors"
)

type OAuthUserInfo struct {
	Email     string
	FirstName string
	LastName  string
}

type OAuthProvider interface {
	VerifyToken(ctx context.Context, credential string) (*OAuthUserInfo, error)
}

// generateSecurePassword gives OAuth-created accounts a random password nobody knows.
func generateSecurePassword() (string, error) {
	const passwordLength = 32
	bytes := make([]byte, passwordLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
