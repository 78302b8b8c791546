package auth

import (
	"context"
	"strings"

	"Finboard/config"
	appErrors "Finboard/internal/errors"

	"google.golang.org/api/idtoken"
)

type tokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

type GoogleOAuthProvider struct {
	clientID string
	validate tokenValidator
}

func NewGoogleOAuthProvider(cfg config.GoogleOAuthConfig) (*GoogleOAuthProvider, error) {
	if !cfg.Enabled {
		return nil, appErrors.NewAuthError("OAUTH_DISABLED", "Google sign-in is disabled")
	}
	if cfg.ClientID == "" {
		return nil, appErrors.NewAuthError("OAUTH_CONFIG_MISSING", "GOOGLE_OAUTH_CLIENT_ID is not configured")
	}
	return &GoogleOAuthProvider{clientID: cfg.ClientID, validate: idtoken.Validate}, nil
}

func (g *GoogleOAuthProvider) VerifyToken(ctx context.Context, credential string) (*OAuthUserInfo, error) {
	payload, err := g.validate(ctx, credential, g.clientID)
	if err != nil {
		return nil, appErrors.NewAuthError("TOKEN_INVALID", "invalid Google token").WithError(err)
	}

	email, ok := payload.Claims["email"].(string)
	if !ok || email == "" {
		return nil, appErrors.NewAuthError("EMAIL_MISSING", "email claim missing from Google token")
	}

	firstName, _ := payload.Claims["given_name"].(string)
	lastName, _ := payload.Claims["family_name"].(string)
	if firstName == "" {
		name, _ := payload.Claims["name"].(string)
		firstName, lastName = splitName(name)
	}
	if firstName == "" {
		firstName = strings.Split(email, "@")[0]
	}
	if lastName == "" {
		lastName = "-"
	}

	return &OAuthUserInfo{Email: email, FirstName: firstName, LastName: lastName}, nil
}

func splitName(name string) (string, string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
