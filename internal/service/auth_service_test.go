package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

func newTestAuthService(now time.Time) *AuthService {
	svc := NewAuthService(nil, nil, AuthConfig{AccessTokenSecret: "secret"})
	svc.now = func() time.Time { return now }
	return svc
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestAuthService(issuedAt)

	identity := models.Identity{Email: "ana@x.com", Name: "Ana", Photo: "https://img/ana.png"}
	resp, err := svc.Issue(identity)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	svc.now = func() time.Time { return issuedAt.Add(23 * time.Hour) }
	claims, err := svc.Verify(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, identity, claims.Identity)
	assert.True(t, claims.ExpiresAt.Time.Equal(issuedAt.Add(24*time.Hour)))
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuedAt := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestAuthService(issuedAt)

	resp, err := svc.Issue(models.Identity{Email: "ana@x.com"})
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(24*time.Hour + time.Second) }
	_, err = svc.Verify(resp.Token)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestVerifyRejectsForeignSignature(t *testing.T) {
	now := time.Now()
	other := NewAuthService(nil, nil, AuthConfig{AccessTokenSecret: "other"})
	resp, err := other.Issue(models.Identity{Email: "ana@x.com"})
	require.NoError(t, err)

	_, err = newTestAuthService(now).Verify(resp.Token)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestVerifyRejectsOtherAlgorithm(t *testing.T) {
	claims := models.JWTClaims{
		Identity:         models.Identity{Email: "ana@x.com"},
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = newTestAuthService(time.Now()).Verify(signed)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}

func TestIssueRequiresEmail(t *testing.T) {
	_, err := newTestAuthService(time.Now()).Issue(models.Identity{Name: "nobody"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
