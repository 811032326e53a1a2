package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// AssignmentRepository manages assignment documents and their submissions.
type AssignmentRepository struct {
	c *mongo.Collection
}

// NewAssignmentRepository constructs an AssignmentRepository.
func NewAssignmentRepository(db *mongo.Database) *AssignmentRepository {
	return &AssignmentRepository{c: db.Collection(CollectionAssignments)}
}

// Insert stores a new assignment with no submissions.
func (r *AssignmentRepository) Insert(ctx context.Context, a *models.Assignment) (string, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.SubmittedEmails == nil {
		a.SubmittedEmails = []models.Submission{}
	}
	a.TotalSubmitted = int64(len(a.SubmittedEmails))
	res, err := r.c.InsertOne(ctx, a)
	if err != nil {
		return "", fmt.Errorf("insert assignment: %w", err)
	}
	return insertedHex(res), nil
}

// FindByID returns an assignment. Returns mongo.ErrNoDocuments when absent.
func (r *AssignmentRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var a models.Assignment
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &a, nil
}

// ListByClass returns the assignments of a class.
func (r *AssignmentRepository) ListByClass(ctx context.Context, classID string, page models.Page) ([]models.Assignment, error) {
	cur, err := r.c.Find(ctx, bson.M{"classId": classID}, pageOptions(page))
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer cur.Close(ctx)

	assignments := make([]models.Assignment, 0)
	if err := cur.All(ctx, &assignments); err != nil {
		return nil, fmt.Errorf("decode assignments: %w", err)
	}
	return assignments, nil
}

// CountByClass returns the number of assignments of a class.
func (r *AssignmentRepository) CountByClass(ctx context.Context, classID string) (int64, error) {
	n, err := r.c.CountDocuments(ctx, bson.M{"classId": classID})
	if err != nil {
		return 0, fmt.Errorf("count assignments: %w", err)
	}
	return n, nil
}

// Submit appends a submission and bumps the counter in one update. Nothing
// matches when the assignment is absent or email has already submitted.
func (r *AssignmentRepository) Submit(ctx context.Context, id primitive.ObjectID, email string, at time.Time) (models.UpdateResult, error) {
	email = strings.ToLower(email)
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id, "submittedEmails.email": bson.M{"$ne": email}},
		bson.M{
			"$push": bson.M{"submittedEmails": models.Submission{Email: email, Date: at}},
			"$inc":  bson.M{"total_submitted": 1},
		},
	)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("submit assignment: %w", err)
	}
	return updateResult(res), nil
}
