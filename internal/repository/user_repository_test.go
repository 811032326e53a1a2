package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/eduspark-api/internal/models"
)

func newMockDeployment(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "EduSparkDB.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@x.com"},
			{Key: "role", Value: "teacher"},
		}))

		user, err := repo.FindByEmail(context.Background(), "Ana@X.com")
		require.NoError(t, err)
		assert.Equal(t, "ana@x.com", user.Email)
		assert.Equal(t, models.RoleTeacher, user.Role)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "EduSparkDB.users", mtest.FirstBatch))

		_, err := repo.FindByEmail(context.Background(), "nobody@x.com")
		assert.ErrorIs(t, err, mongo.ErrNoDocuments)
	})
}

func TestUserRepositoryInsertIfAbsent(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("inserted", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
			bson.E{Key: "upserted", Value: bson.A{bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}}}},
		))

		id, err := repo.InsertIfAbsent(context.Background(), &models.User{Email: "new@x.com", Role: models.RoleStudent})
		require.NoError(t, err)
		assert.Len(t, id, 24)
	})

	mt.Run("already present", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 0},
		))

		id, err := repo.InsertIfAbsent(context.Background(), &models.User{Email: "old@x.com", Role: models.RoleStudent})
		require.NoError(t, err)
		assert.Empty(t, id)
	})
}

func TestUserRepositoryCountAndSetRole(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("count", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "EduSparkDB.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: 1},
			{Key: "n", Value: 7},
		}))

		n, err := repo.Count(context.Background(), "x.com")
		require.NoError(t, err)
		assert.Equal(t, int64(7), n)
	})

	mt.Run("set role", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := repo.SetRole(context.Background(), "ana@x.com", models.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, res)
	})
}
