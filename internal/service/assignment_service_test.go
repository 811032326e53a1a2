package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type mockAssignmentRepo struct {
	items map[primitive.ObjectID]*models.Assignment
}

func (m *mockAssignmentRepo) Insert(ctx context.Context, a *models.Assignment) (string, error) {
	a.ID = primitive.NewObjectID()
	copy := *a
	m.items[a.ID] = &copy
	return a.ID.Hex(), nil
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	if a, ok := m.items[id]; ok {
		copy := *a
		return &copy, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockAssignmentRepo) ListByClass(ctx context.Context, classID string, page models.Page) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range m.items {
		if a.ClassID == classID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *mockAssignmentRepo) CountByClass(ctx context.Context, classID string) (int64, error) {
	items, _ := m.ListByClass(ctx, classID, models.Page{})
	return int64(len(items)), nil
}

func (m *mockAssignmentRepo) Submit(ctx context.Context, id primitive.ObjectID, email string, at time.Time) (models.UpdateResult, error) {
	a, ok := m.items[id]
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	for _, s := range a.SubmittedEmails {
		if s.Email == email {
			return models.UpdateResult{Acknowledged: true}, nil
		}
	}
	a.SubmittedEmails = append(a.SubmittedEmails, models.Submission{Email: email, Date: at})
	a.TotalSubmitted++
	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

type mockClassFinder struct {
	classes map[primitive.ObjectID]models.Class
}

func (m *mockClassFinder) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	if c, ok := m.classes[id]; ok {
		return &c, nil
	}
	return nil, mongo.ErrNoDocuments
}

func newAssignmentFixture(classes ...models.Class) (*AssignmentService, *mockAssignmentRepo) {
	repo := &mockAssignmentRepo{items: make(map[primitive.ObjectID]*models.Assignment)}
	finder := &mockClassFinder{classes: make(map[primitive.ObjectID]models.Class)}
	for _, c := range classes {
		finder.classes[c.ID] = c
	}
	return NewAssignmentService(repo, finder, validator.New(), zap.NewNop()), repo
}

func TestCreateAssignmentRequiresOwnership(t *testing.T) {
	class := models.Class{ID: primitive.NewObjectID(), Email: "teach@x.com"}
	svc, repo := newAssignmentFixture(class)
	req := CreateAssignmentRequest{ClassID: class.ID.Hex(), Title: "Essay", Deadline: time.Now().Add(48 * time.Hour)}

	_, err := svc.Create(context.Background(), models.Identity{Email: "other@x.com"}, req)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	res, err := svc.Create(context.Background(), models.Identity{Email: "Teach@x.com"}, req)
	require.NoError(t, err)
	require.NotNil(t, res.InsertedID)
	assert.Len(t, repo.items, 1)

	count, err := svc.Count(context.Background(), class.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count.Count)
}

func TestSubmitAssignmentOncePerEmail(t *testing.T) {
	svc, repo := newAssignmentFixture()
	id := primitive.NewObjectID()
	repo.items[id] = &models.Assignment{ID: id, ClassID: "c1"}

	res, err := svc.Submit(context.Background(), id.Hex(), "stu@x.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ModifiedCount)

	_, err = svc.Submit(context.Background(), id.Hex(), "stu@x.com")
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))

	stored := repo.items[id]
	assert.Equal(t, int64(len(stored.SubmittedEmails)), stored.TotalSubmitted)
	assert.Equal(t, int64(1), stored.TotalSubmitted)
}

func TestSubmitMissingAssignment(t *testing.T) {
	svc, _ := newAssignmentFixture()

	_, err := svc.Submit(context.Background(), primitive.NewObjectID().Hex(), "stu@x.com")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
