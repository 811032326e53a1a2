package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// FeedbackRepository stores class feedback.
type FeedbackRepository struct {
	c *mongo.Collection
}

// NewFeedbackRepository constructs a FeedbackRepository.
func NewFeedbackRepository(db *mongo.Database) *FeedbackRepository {
	return &FeedbackRepository{c: db.Collection(CollectionFeedbacks)}
}

// Insert appends a feedback entry.
func (r *FeedbackRepository) Insert(ctx context.Context, f *models.Feedback) (string, error) {
	if f.ID.IsZero() {
		f.ID = primitive.NewObjectID()
	}
	res, err := r.c.InsertOne(ctx, f)
	if err != nil {
		return "", fmt.Errorf("insert feedback: %w", err)
	}
	return insertedHex(res), nil
}

// List returns all feedback, newest first.
func (r *FeedbackRepository) List(ctx context.Context) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{})
}

// ListByClass returns the feedback of one class, newest first.
func (r *FeedbackRepository) ListByClass(ctx context.Context, classID string) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"classId": classID})
}

func (r *FeedbackRepository) find(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer cur.Close(ctx)

	items := make([]models.Feedback, 0)
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return items, nil
}
