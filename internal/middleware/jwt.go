package middleware

import (
	"net/http"
	"strings"
	"time"

	"Finboard/config"
	"Finboard/internal/contracts"
	appErrors "Finboard/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/oklog/ulid/v2"
)

const UserIDKey = "user_id"

type Claims struct {
	jwt.RegisteredClaims
}

// JwtService issues and verifies HS256 bearer tokens whose subject is the user id.
type JwtService struct {
	secret     []byte
	expiration time.Duration
	issuer     string
	now        func() time.Time
}

func NewJwtService(cfg *config.Config) *JwtService {
	return &JwtService{
		secret:     []byte(cfg.JWT.Secret),
		expiration: cfg.JWT.Expiration,
		issuer:     cfg.JWT.Issuer,
		now:        time.Now,
	}
}

func (s *JwtService) GenerateToken(userID ulid.ULID) (string, time.Time, error) {
	issuedAt := s.now()
	expiresAt := issuedAt.Add(s.expiration)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, appErrors.ErrInternalServer.WithError(err)
	}
	return signed, expiresAt, nil
}

// ValidateToken returns the user id carried by a valid, unexpired token.
func (s *JwtService) ValidateToken(tokenString string) (ulid.ULID, error) {
	var claims Claims
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithMessage("invalid or expired token").WithError(err)
	}
	if !token.Valid {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithMessage("invalid or expired token")
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithMessage("invalid token issuer")
	}

	userID, err := ulid.ParseStrict(claims.Subject)
	if err != nil {
		return ulid.ULID{}, appErrors.ErrUnauthorized.WithMessage("invalid token subject").WithError(err)
	}
	return userID, nil
}

// AuthMiddleware requires "Authorization: Bearer <token>" and stores the user id
// under UserIDKey as a string.
func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := bearerToken(c.GetHeader("Authorization"))
		if err == nil {
			var userID ulid.ULID
			if userID, err = jwtSvc.ValidateToken(token); err == nil {
				c.Set(UserIDKey, userID.String())
				c.Next()
				return
			}
		}

		abortWithError(c, appErrors.FromError(err))
	}
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", appErrors.ErrUnauthorized.WithMessage("authorization header is required")
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", appErrors.ErrUnauthorized.WithMessage("authorization header must be a bearer token")
	}
	return strings.TrimSpace(token), nil
}

func abortWithError(c *gin.Context, appErr *appErrors.AppError) {
	status := appErr.StatusCode
	if status == 0 {
		status = http.StatusInternalServerError
	}
	c.AbortWithStatusJSON(status, contracts.Failure(appErr))
}
