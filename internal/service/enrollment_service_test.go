package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/internal/repository"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type mockEnrollmentRepo struct {
	records []models.EnrolledClass
}

func (m *mockEnrollmentRepo) Exists(ctx context.Context, email, classID string) (bool, error) {
	for _, r := range m.records {
		if r.EnrolledEmail == email && r.EnrolledClassID == classID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockEnrollmentRepo) Insert(ctx context.Context, e *models.EnrolledClass) (string, error) {
	if ok, _ := m.Exists(ctx, e.EnrolledEmail, e.EnrolledClassID); ok {
		return "", repository.ErrDuplicate
	}
	e.ID = primitive.NewObjectID()
	m.records = append(m.records, *e)
	return e.ID.Hex(), nil
}

func (m *mockEnrollmentRepo) List(ctx context.Context, page models.Page) ([]models.EnrolledClass, error) {
	return m.records, nil
}

func (m *mockEnrollmentRepo) ClassIDsByEmail(ctx context.Context, email string) ([]string, error) {
	var ids []string
	for _, r := range m.records {
		if r.EnrolledEmail == email {
			ids = append(ids, r.EnrolledClassID)
		}
	}
	return ids, nil
}

type mockEnrollmentClasses struct {
	classes map[primitive.ObjectID]*models.Class
}

func (m *mockEnrollmentClasses) IncrementEnrollment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	class, ok := m.classes[id]
	if !ok || class.Status != models.ClassApproved {
		return false, nil
	}
	class.TotalEnrollment++
	return true, nil
}

func (m *mockEnrollmentClasses) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Class, error) {
	var out []models.Class
	for _, id := range ids {
		if class, ok := m.classes[id]; ok {
			out = append(out, *class)
		}
	}
	return out, nil
}

// rollbackTx snapshots the enrollment fake and restores it when the unit fails.
type rollbackTx struct {
	repo *mockEnrollmentRepo
}

func (r *rollbackTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapshot := append([]models.EnrolledClass(nil), r.repo.records...)
	if err := fn(ctx); err != nil {
		r.repo.records = snapshot
		return err
	}
	return nil
}

type recordingInvalidator struct {
	patterns []string
}

func (r *recordingInvalidator) Invalidate(ctx context.Context, pattern string) bool {
	r.patterns = append(r.patterns, pattern)
	return true
}

func newEnrollmentFixture(classes ...models.Class) (*EnrollmentService, *mockEnrollmentRepo, *mockEnrollmentClasses, *recordingInvalidator) {
	repo := &mockEnrollmentRepo{}
	classRepo := &mockEnrollmentClasses{classes: make(map[primitive.ObjectID]*models.Class)}
	for i := range classes {
		c := classes[i]
		classRepo.classes[c.ID] = &c
	}
	cache := &recordingInvalidator{}
	svc := NewEnrollmentService(repo, classRepo, &rollbackTx{repo: repo}, cache, nil, validator.New(), zap.NewNop())
	return svc, repo, classRepo, cache
}

func TestEnrollIncrementsCounterOnce(t *testing.T) {
	class := models.Class{ID: primitive.NewObjectID(), Status: models.ClassApproved, TotalEnrollment: 2}
	svc, repo, classes, cache := newEnrollmentFixture(class)
	caller := models.Identity{Email: "Stu@x.com"}
	req := EnrollRequest{ClassID: class.ID.Hex(), TransactionID: "pi_1", Price: 10}

	res, err := svc.Enroll(context.Background(), caller, req)
	require.NoError(t, err)
	require.NotNil(t, res.InsertedID)
	assert.Equal(t, int64(3), classes.classes[class.ID].TotalEnrollment)
	assert.Len(t, repo.records, 1)
	assert.Equal(t, "stu@x.com", repo.records[0].EnrolledEmail)
	assert.Equal(t, []string{CachePatternReports}, cache.patterns)

	_, err = svc.Enroll(context.Background(), caller, req)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.Equal(t, int64(3), classes.classes[class.ID].TotalEnrollment)
	assert.Len(t, repo.records, 1)
}

func TestEnrollRollsBackForUnapprovedClass(t *testing.T) {
	class := models.Class{ID: primitive.NewObjectID(), Status: models.ClassPending}
	svc, repo, _, cache := newEnrollmentFixture(class)

	_, err := svc.Enroll(context.Background(), models.Identity{Email: "stu@x.com"}, EnrollRequest{ClassID: class.ID.Hex(), TransactionID: "pi_1"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Empty(t, repo.records)
	assert.Empty(t, cache.patterns)
}

func TestEnrollValidatesPayload(t *testing.T) {
	svc, _, _, _ := newEnrollmentFixture()

	_, err := svc.Enroll(context.Background(), models.Identity{Email: "stu@x.com"}, EnrollRequest{ClassID: "bad", TransactionID: "pi_1"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestEnrolledClassesSkipsMalformedIDs(t *testing.T) {
	class := models.Class{ID: primitive.NewObjectID(), Title: "Go", Status: models.ClassApproved}
	svc, repo, _, _ := newEnrollmentFixture(class)
	repo.records = []models.EnrolledClass{
		{EnrolledEmail: "stu@x.com", EnrolledClassID: class.ID.Hex()},
		{EnrolledEmail: "stu@x.com", EnrolledClassID: "legacy"},
	}

	ids, err := svc.ClassIDs(context.Background(), "stu@x.com")
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	classes, err := svc.Classes(context.Background(), "stu@x.com")
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, "Go", classes[0].Title)
}
