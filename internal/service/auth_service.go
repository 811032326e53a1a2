package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

// DefaultTokenExpiry is the fixed lifetime of a session token.
const DefaultTokenExpiry = 24 * time.Hour

// AuthConfig defines configuration for session tokens.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
}

// AuthService issues and verifies stateless session tokens.
type AuthService struct {
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
	now       func() time.Time
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.AccessTokenExpiry <= 0 {
		config.AccessTokenExpiry = DefaultTokenExpiry
	}
	return &AuthService{validator: validate, logger: logger, config: config, now: time.Now}
}

// Issue signs identity into an HS256 token.
func (s *AuthService) Issue(identity models.Identity) (*models.TokenResponse, error) {
	identity.Email = strings.TrimSpace(identity.Email)
	if err := s.validator.Struct(identity); err != nil {
		return nil, validationError(err, "invalid token payload")
	}

	now := s.now().UTC()
	claims := models.JWTClaims{
		Identity: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strings.ToLower(identity.Email),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessTokenExpiry)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to sign token")
	}
	return &models.TokenResponse{Token: signed}, nil
}

// Verify parses a token and returns its claims when the signature and expiry are valid.
func (s *AuthService) Verify(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, appErrors.ErrUnauthorized.Message)
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, appErrors.ErrUnauthorized
	}
	return claims, nil
}
