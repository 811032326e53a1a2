package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// AuditRepository writes audit records to Postgres.
type AuditRepository struct {
	db *sqlx.DB
}

// NewAuditRepository constructs an AuditRepository.
func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// EnsureSchema creates the audit_logs table when it does not exist.
func (r *AuditRepository) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS audit_logs (
	id UUID PRIMARY KEY,
	actor_email TEXT NOT NULL,
	action TEXT NOT NULL,
	resource TEXT NOT NULL,
	resource_id TEXT NOT NULL DEFAULT '',
	status INTEGER NOT NULL,
	path TEXT NOT NULL,
	method TEXT NOT NULL,
	ip_address TEXT NOT NULL DEFAULT '',
	user_agent TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
)`
	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create audit_logs: %w", err)
	}
	return nil
}

// Create inserts an audit record, filling the id and timestamp when unset.
func (r *AuditRepository) Create(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, actor_email, action, resource, resource_id, status, path, method, ip_address, user_agent, created_at)
VALUES (:id, :actor_email, :action, :resource, :resource_id, :status, :path, :method, :ip_address, :user_agent, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}

// Close releases the database pool.
func (r *AuditRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}
