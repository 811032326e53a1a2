package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

// ContextUserKey is the gin context key storing JWT claims.
const ContextUserKey = "currentUser"

type tokenVerifier interface {
	Verify(token string) (*models.JWTClaims, error)
}

// VerifyToken requires a valid bearer token. Every failure is answered with 401
// before the handler runs.
func VerifyToken(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		c.Set(ContextUserKey, claims)
		c.Next()
	}
}

// Claims returns the verified claims stored by VerifyToken.
func Claims(c *gin.Context) (*models.JWTClaims, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.JWTClaims)
	return claims, ok && claims != nil
}
