package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type mockClassRepo struct {
	classes map[primitive.ObjectID]*models.Class
}

func newMockClassRepo(classes ...models.Class) *mockClassRepo {
	m := &mockClassRepo{classes: make(map[primitive.ObjectID]*models.Class)}
	for i := range classes {
		c := classes[i]
		m.classes[c.ID] = &c
	}
	return m
}

func (m *mockClassRepo) Insert(ctx context.Context, class *models.Class) (string, error) {
	class.ID = primitive.NewObjectID()
	m.classes[class.ID] = class
	return class.ID.Hex(), nil
}

func (m *mockClassRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (m *mockClassRepo) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	out := make([]models.Class, 0)
	for _, c := range m.classes {
		if filter.Owner != "" && c.Email != filter.Owner {
			continue
		}
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockClassRepo) Count(ctx context.Context, filter models.ClassFilter) (int64, error) {
	return int64(len(m.classes)), nil
}

func (m *mockClassRepo) Update(ctx context.Context, id primitive.ObjectID, owner string, upd models.ClassUpdate) (models.UpdateResult, error) {
	c, ok := m.classes[id]
	if !ok || c.Email != owner {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Price != nil {
		c.Price = *upd.Price
	}
	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockClassRepo) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (models.UpdateResult, error) {
	c, ok := m.classes[id]
	if !ok {
		return models.UpdateResult{Acknowledged: true}, nil
	}
	c.Status = status
	return models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (m *mockClassRepo) Delete(ctx context.Context, id primitive.ObjectID, owner string) (models.DeleteResult, error) {
	c, ok := m.classes[id]
	if !ok || c.Email != owner {
		return models.DeleteResult{Acknowledged: true}, nil
	}
	delete(m.classes, id)
	return models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
}

func TestCreateClassStartsPending(t *testing.T) {
	repo := newMockClassRepo()
	svc := NewClassService(repo, nil, nil, nil)

	res, err := svc.Create(context.Background(), models.Identity{Email: "T@X.com", Name: "Tess"}, CreateClassRequest{Title: " Go ", Price: 20})
	require.NoError(t, err)
	require.NotNil(t, res.InsertedID)

	id, _ := primitive.ObjectIDFromHex(*res.InsertedID)
	stored := repo.classes[id]
	assert.Equal(t, models.ClassPending, stored.Status)
	assert.Equal(t, "t@x.com", stored.Email)
	assert.Equal(t, "Go", stored.Title)
	assert.Zero(t, stored.TotalEnrollment)
}

func TestUpdateClassRequiresOwnership(t *testing.T) {
	class := models.Class{ID: primitive.NewObjectID(), Title: "Go", Email: "owner@x.com"}
	repo := newMockClassRepo(class)
	svc := NewClassService(repo, nil, nil, nil)
	title := "Advanced Go"

	_, err := svc.Update(context.Background(), class.ID.Hex(), "intruder@x.com", UpdateClassRequest{Title: &title})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
	assert.Equal(t, "Go", repo.classes[class.ID].Title)

	res, err := svc.Update(context.Background(), class.ID.Hex(), "Owner@x.com", UpdateClassRequest{Title: &title})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.MatchedCount)
	assert.Equal(t, title, repo.classes[class.ID].Title)

	_, err = svc.Update(context.Background(), class.ID.Hex(), "owner@x.com", UpdateClassRequest{})
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestSetStatusInvalidatesReports(t *testing.T) {
	class := models.Class{ID: primitive.NewObjectID(), Status: models.ClassPending}
	cache := &recordingInvalidator{}
	svc := NewClassService(newMockClassRepo(class), cache, nil, nil)

	_, err := svc.SetStatus(context.Background(), class.ID.Hex(), ClassStatusRequest{Status: "archived"})
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Empty(t, cache.patterns)

	_, err = svc.SetStatus(context.Background(), class.ID.Hex(), ClassStatusRequest{Status: models.ClassApproved})
	require.NoError(t, err)
	assert.Equal(t, []string{CachePatternReports}, cache.patterns)

	_, err = svc.SetStatus(context.Background(), primitive.NewObjectID().Hex(), ClassStatusRequest{Status: models.ClassApproved})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestDeleteClass(t *testing.T) {
	class := models.Class{ID: primitive.NewObjectID(), Email: "owner@x.com"}
	cache := &recordingInvalidator{}
	repo := newMockClassRepo(class)
	svc := NewClassService(repo, cache, nil, nil)

	_, err := svc.Delete(context.Background(), "not-an-id", "owner@x.com")
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, err = svc.Delete(context.Background(), class.ID.Hex(), "other@x.com")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	res, err := svc.Delete(context.Background(), class.ID.Hex(), "owner@x.com")
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.DeletedCount)
	assert.Empty(t, repo.classes)
	assert.Len(t, cache.patterns, 1)
}

func TestGetClassNotFound(t *testing.T) {
	svc := NewClassService(newMockClassRepo(), nil, nil, nil)
	_, err := svc.Get(context.Background(), primitive.NewObjectID().Hex())
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
