package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// ErrDuplicate is returned when a unique index rejects an insert.
var ErrDuplicate = errors.New("duplicate document")

// EnrollmentRepository manages enrollment join records.
type EnrollmentRepository struct {
	c *mongo.Collection
}

// NewEnrollmentRepository constructs an EnrollmentRepository.
func NewEnrollmentRepository(db *mongo.Database) *EnrollmentRepository {
	return &EnrollmentRepository{c: db.Collection(CollectionEnrolledClasses)}
}

// Exists reports whether email is already enrolled in classID.
func (r *EnrollmentRepository) Exists(ctx context.Context, email, classID string) (bool, error) {
	n, err := r.c.CountDocuments(ctx,
		bson.M{"enrolledEmail": strings.ToLower(email), "enrolledClassId": classID},
		options.Count().SetLimit(1),
	)
	if err != nil {
		return false, fmt.Errorf("check enrollment: %w", err)
	}
	return n > 0, nil
}

// Insert stores an enrollment. A second record for the same email and class yields ErrDuplicate.
func (r *EnrollmentRepository) Insert(ctx context.Context, e *models.EnrolledClass) (string, error) {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.EnrolledEmail = strings.ToLower(e.EnrolledEmail)
	res, err := r.c.InsertOne(ctx, e)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", ErrDuplicate
		}
		return "", fmt.Errorf("insert enrollment: %w", err)
	}
	return insertedHex(res), nil
}

// List returns all enrollment records.
func (r *EnrollmentRepository) List(ctx context.Context, page models.Page) ([]models.EnrolledClass, error) {
	cur, err := r.c.Find(ctx, bson.M{}, pageOptions(page))
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer cur.Close(ctx)

	records := make([]models.EnrolledClass, 0)
	if err := cur.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode enrollments: %w", err)
	}
	return records, nil
}

// ClassIDsByEmail returns the ids of the classes email is enrolled in.
func (r *EnrollmentRepository) ClassIDsByEmail(ctx context.Context, email string) ([]string, error) {
	cur, err := r.c.Find(ctx,
		bson.M{"enrolledEmail": strings.ToLower(email)},
		options.Find().SetProjection(bson.M{"enrolledClassId": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("list enrolled class ids: %w", err)
	}
	defer cur.Close(ctx)

	ids := make([]string, 0)
	for cur.Next(ctx) {
		var row struct {
			ClassID string `bson:"enrolledClassId"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, fmt.Errorf("decode enrolled class id: %w", err)
		}
		ids = append(ids, row.ClassID)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate enrolled class ids: %w", err)
	}
	return ids, nil
}
