package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
)

type auditRecorder interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// Audit records successful admin mutations. idParam names the path parameter
// holding the resource id. A nil recorder disables auditing.
func Audit(recorder auditRecorder, logger *zap.Logger, action, resource, idParam string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		c.Next()

		if recorder == nil || c.Writer.Status() >= 400 {
			return
		}

		entry := &models.AuditLog{
			Action:     action,
			Resource:   resource,
			ResourceID: c.Param(idParam),
			Status:     c.Writer.Status(),
			Path:       c.FullPath(),
			Method:     c.Request.Method,
			IPAddress:  c.ClientIP(),
			UserAgent:  c.GetHeader("User-Agent"),
		}
		if claims, ok := Claims(c); ok {
			entry.ActorEmail = claims.Email
		}

		if err := recorder.Create(c.Request.Context(), entry); err != nil {
			logger.Warn("audit write failed", zap.String("action", action), zap.Error(err))
		}
	}
}
