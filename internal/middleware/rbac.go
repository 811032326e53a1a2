package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

type roleLookup interface {
	Role(ctx context.Context, email string) (models.UserRole, error)
}

// RequireRole loads the caller's role from the user store on every request and
// allows the request only when it matches role.
func RequireRole(users roleLookup, logger *zap.Logger, role models.UserRole) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		current, err := users.Role(c.Request.Context(), claims.Email)
		if err != nil {
			logger.Error("role lookup failed", zap.String("email", claims.Email), zap.Error(err))
			response.Abort(c, err)
			return
		}
		if current != role {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}

// VerifyAdmin allows admins only.
func VerifyAdmin(users roleLookup, logger *zap.Logger) gin.HandlerFunc {
	return RequireRole(users, logger, models.RoleAdmin)
}

// VerifyTeacher allows teachers only.
func VerifyTeacher(users roleLookup, logger *zap.Logger) gin.HandlerFunc {
	return RequireRole(users, logger, models.RoleTeacher)
}

// SelfOnly requires the path parameter param to equal the caller's email.
func SelfOnly(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}
		if !strings.EqualFold(c.Param(param), claims.Email) {
			response.Abort(c, appErrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
