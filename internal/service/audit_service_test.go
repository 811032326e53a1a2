package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduspark-api/internal/models"
)

type auditRepoStub struct {
	mu      sync.Mutex
	entries []*models.AuditLog
	fails   int
}

func (s *auditRepoStub) Create(ctx context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fails > 0 {
		s.fails--
		return errors.New("connection reset")
	}
	s.entries = append(s.entries, log)
	return nil
}

func TestAuditServiceFlushesOnStop(t *testing.T) {
	repo := &auditRepoStub{fails: 1}
	svc := NewAuditService(repo, nil)
	svc.Start()

	require.NoError(t, svc.Create(context.Background(), &models.AuditLog{Action: models.AuditActionClassStatus, ResourceID: "c1"}))
	require.NoError(t, svc.Create(context.Background(), &models.AuditLog{Action: models.AuditActionUserPromote, ResourceID: "a@x.com"}))
	require.NoError(t, svc.Stop(context.Background()))

	require.Len(t, repo.entries, 2)
	for _, entry := range repo.entries {
		assert.False(t, entry.CreatedAt.IsZero())
	}
}

func TestAuditServiceRejectsAfterStop(t *testing.T) {
	svc := NewAuditService(&auditRepoStub{}, nil)
	svc.Start()
	require.NoError(t, svc.Stop(context.Background()))

	assert.Error(t, svc.Create(context.Background(), &models.AuditLog{}))
}
