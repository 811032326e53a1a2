package models

import "time"

// Audit actions recorded for admin mutations.
const (
	AuditActionUserPromote   = "USER_PROMOTE"
	AuditActionClassStatus   = "CLASS_STATUS"
	AuditActionTeacherReview = "TEACHER_REQUEST_REVIEW"
)

// AuditLog represents an audit trail record.
type AuditLog struct {
	ID         string    `db:"id" json:"id"`
	ActorEmail string    `db:"actor_email" json:"actor_email"`
	Action     string    `db:"action" json:"action"`
	Resource   string    `db:"resource" json:"resource"`
	ResourceID string    `db:"resource_id" json:"resource_id"`
	Status     int       `db:"status" json:"status"`
	Path       string    `db:"path" json:"path"`
	Method     string    `db:"method" json:"method"`
	IPAddress  string    `db:"ip_address" json:"ip_address"`
	UserAgent  string    `db:"user_agent" json:"user_agent"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
