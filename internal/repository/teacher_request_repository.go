package repository

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// TeacherRequestRepository manages teacher applications.
type TeacherRequestRepository struct {
	c *mongo.Collection
}

// NewTeacherRequestRepository constructs a TeacherRequestRepository.
func NewTeacherRequestRepository(db *mongo.Database) *TeacherRequestRepository {
	return &TeacherRequestRepository{c: db.Collection(CollectionTeacherRequests)}
}

// Insert stores a new request.
func (r *TeacherRequestRepository) Insert(ctx context.Context, req *models.TeacherRequest) (string, error) {
	if req.ID.IsZero() {
		req.ID = primitive.NewObjectID()
	}
	req.Email = strings.ToLower(req.Email)
	res, err := r.c.InsertOne(ctx, req)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", fmt.Errorf("insert teacher request: %w", err)
	}
	return insertedHex(res), nil
}

// FindByID returns a request. Returns mongo.ErrNoDocuments when absent.
func (r *TeacherRequestRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TeacherRequest, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByEmail returns the request of a user. Returns mongo.ErrNoDocuments when absent.
func (r *TeacherRequestRepository) FindByEmail(ctx context.Context, email string) (*models.TeacherRequest, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

// Resubmit replaces the application fields of an existing request and resets it to pending.
func (r *TeacherRequestRepository) Resubmit(ctx context.Context, id primitive.ObjectID, req *models.TeacherRequest) (models.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"name":       req.Name,
		"image":      req.Image,
		"title":      req.Title,
		"experience": req.Experience,
		"category":   req.Category,
		"status":     models.ClassPending,
		"createdAt":  req.CreatedAt,
	}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("resubmit teacher request: %w", err)
	}
	return updateResult(res), nil
}

// List returns requests in natural order.
func (r *TeacherRequestRepository) List(ctx context.Context, page models.Page) ([]models.TeacherRequest, error) {
	cur, err := r.c.Find(ctx, bson.M{}, pageOptions(page))
	if err != nil {
		return nil, fmt.Errorf("list teacher requests: %w", err)
	}
	defer cur.Close(ctx)

	requests := make([]models.TeacherRequest, 0)
	if err := cur.All(ctx, &requests); err != nil {
		return nil, fmt.Errorf("decode teacher requests: %w", err)
	}
	return requests, nil
}

// Count returns the number of requests.
func (r *TeacherRequestRepository) Count(ctx context.Context) (int64, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count teacher requests: %w", err)
	}
	return n, nil
}

// SetStatus changes the review status of a request.
func (r *TeacherRequestRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (models.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("set teacher request status: %w", err)
	}
	return updateResult(res), nil
}

func (r *TeacherRequestRepository) findOne(ctx context.Context, filter bson.M) (*models.TeacherRequest, error) {
	var req models.TeacherRequest
	if err := r.c.FindOne(ctx, filter).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher request: %w", err)
	}
	return &req, nil
}
