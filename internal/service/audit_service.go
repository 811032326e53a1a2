package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/pkg/jobs"
)

const auditJobKind = "audit_log"

type auditWriter interface {
	Create(ctx context.Context, log *models.AuditLog) error
}

// AuditService writes audit entries in the background so the audit store's
// latency never reaches the request path.
type AuditService struct {
	repo         auditWriter
	queue        *jobs.Queue
	writeTimeout time.Duration
	logger       *zap.Logger
}

// NewAuditService constructs an AuditService backed by a small worker pool.
func NewAuditService(repo auditWriter, logger *zap.Logger) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuditService{repo: repo, writeTimeout: 5 * time.Second, logger: logger}
	s.queue = jobs.NewQueue("audit", s.handle, jobs.QueueConfig{
		Workers:    2,
		BufferSize: 256,
		MaxRetries: 3,
		RetryDelay: 500 * time.Millisecond,
		Logger:     logger,
	})
	return s
}

// Start launches the writers.
func (s *AuditService) Start() {
	s.queue.Start()
}

// Stop flushes pending entries.
func (s *AuditService) Stop(ctx context.Context) error {
	return s.queue.Stop(ctx)
}

// Create queues entry for writing. The request context is not carried over.
func (s *AuditService) Create(_ context.Context, entry *models.AuditLog) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := s.queue.Enqueue(jobs.Job{Kind: auditJobKind, Payload: entry}); err != nil {
		return fmt.Errorf("queue audit entry: %w", err)
	}
	return nil
}

func (s *AuditService) handle(ctx context.Context, job jobs.Job) error {
	entry, ok := job.Payload.(*models.AuditLog)
	if !ok {
		s.logger.Error("unexpected audit payload", zap.String("kind", job.Kind))
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.writeTimeout)
	defer cancel()
	return s.repo.Create(ctx, entry)
}
