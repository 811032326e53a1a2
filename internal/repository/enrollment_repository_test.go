package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/noah-isme/eduspark-api/internal/models"
)

func TestEnrollmentRepositoryInsert(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("success", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		record := &models.EnrolledClass{EnrolledEmail: "Stu@X.com", EnrolledClassID: "c1", EnrolledAt: time.Now()}
		id, err := repo.Insert(context.Background(), record)
		require.NoError(t, err)
		assert.Equal(t, record.ID.Hex(), id)
		assert.Equal(t, "stu@x.com", record.EnrolledEmail)
	})

	mt.Run("duplicate", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		_, err := repo.Insert(context.Background(), &models.EnrolledClass{EnrolledEmail: "stu@x.com", EnrolledClassID: "c1"})
		assert.ErrorIs(t, err, ErrDuplicate)
	})
}

func TestEnrollmentRepositoryClassIDsByEmail(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("ids", func(mt *mtest.T) {
		repo := NewEnrollmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "EduSparkDB.enrolledClasses", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "enrolledClassId", Value: "c1"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "enrolledClassId", Value: "c2"}},
		))

		ids, err := repo.ClassIDsByEmail(context.Background(), "stu@x.com")
		require.NoError(t, err)
		assert.Equal(t, []string{"c1", "c2"}, ids)
	})
}

func TestAssignmentRepositorySubmit(t *testing.T) {
	mt := newMockDeployment(t)

	mt.Run("first submission", func(mt *mtest.T) {
		repo := NewAssignmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		res, err := repo.Submit(context.Background(), primitive.NewObjectID(), "stu@x.com", time.Now())
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ModifiedCount)
	})

	mt.Run("already submitted", func(mt *mtest.T) {
		repo := NewAssignmentRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		res, err := repo.Submit(context.Background(), primitive.NewObjectID(), "stu@x.com", time.Now())
		require.NoError(t, err)
		assert.Zero(t, res.MatchedCount)
	})
}
