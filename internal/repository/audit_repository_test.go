package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/eduspark-api/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func TestAuditCreateFillsDefaults(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WithArgs(sqlmock.AnyArg(), "admin@x.com", models.AuditActionClassStatus, "classes", "abc", 200, "/classes/status/:id", "PATCH", "127.0.0.1", "curl", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entry := &models.AuditLog{
		ActorEmail: "admin@x.com",
		Action:     models.AuditActionClassStatus,
		Resource:   "classes",
		ResourceID: "abc",
		Status:     200,
		Path:       "/classes/status/:id",
		Method:     "PATCH",
		IPAddress:  "127.0.0.1",
		UserAgent:  "curl",
	}
	require.NoError(t, repo.Create(context.Background(), entry))
	assert.NotEmpty(t, entry.ID)
	assert.WithinDuration(t, time.Now().UTC(), entry.CreatedAt, time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditCreateWrapsError(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("INSERT INTO audit_logs").WillReturnError(errors.New("boom"))

	err := repo.Create(context.Background(), &models.AuditLog{ActorEmail: "a@x.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create audit log")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditEnsureSchema(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAuditRepository(db)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS audit_logs").WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
