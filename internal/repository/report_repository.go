package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/eduspark-api/internal/dto"
	"github.com/noah-isme/eduspark-api/internal/models"
)

// PopularClassLimit caps the popular classes view.
const PopularClassLimit = 10

// ReportRepository runs the read-only reporting queries.
type ReportRepository struct {
	users       *mongo.Collection
	classes     *mongo.Collection
	assignments *mongo.Collection
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *mongo.Database) *ReportRepository {
	return &ReportRepository{
		users:       db.Collection(CollectionUsers),
		classes:     db.Collection(CollectionClasses),
		assignments: db.Collection(CollectionAssignments),
	}
}

// SiteTotals counts users and approved classes and sums their enrollment.
func (r *ReportRepository) SiteTotals(ctx context.Context) (dto.SiteTotals, error) {
	var totals dto.SiteTotals

	users, err := r.users.CountDocuments(ctx, bson.M{})
	if err != nil {
		return totals, fmt.Errorf("count users: %w", err)
	}
	totals.TotalUsers = users

	approved := bson.M{"status": models.ClassApproved}
	classes, err := r.classes.CountDocuments(ctx, approved)
	if err != nil {
		return totals, fmt.Errorf("count approved classes: %w", err)
	}
	totals.TotalClasses = classes

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: approved}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$totalEnrollment"}}}},
	}
	total, err := r.sumPipeline(ctx, r.classes, pipeline)
	if err != nil {
		return totals, fmt.Errorf("sum enrollment: %w", err)
	}
	totals.TotalEnrollment = total

	return totals, nil
}

// PopularClasses returns the approved classes with the most enrollments. Ties keep insertion order.
func (r *ReportRepository) PopularClasses(ctx context.Context) ([]models.Class, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "totalEnrollment", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(PopularClassLimit)

	cur, err := r.classes.Find(ctx, bson.M{"status": models.ClassApproved}, opts)
	if err != nil {
		return nil, fmt.Errorf("find popular classes: %w", err)
	}
	defer cur.Close(ctx)

	classes := make([]models.Class, 0)
	if err := cur.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode popular classes: %w", err)
	}
	return classes, nil
}

// SubmissionsBetween counts submission events for the assignments of classID
// whose date lies within [start, end].
func (r *ReportRepository) SubmissionsBetween(ctx context.Context, classID string, start, end time.Time) (int64, error) {
	window := bson.M{"$gte": start, "$lte": end}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"classId":         classID,
			"submittedEmails": bson.M{"$elemMatch": bson.M{"date": window}},
		}}},
		{{Key: "$unwind", Value: "$submittedEmails"}},
		{{Key: "$match", Value: bson.M{"submittedEmails.date": window}}},
		{{Key: "$group", Value: bson.M{"_id": "$_id", "count": bson.M{"$sum": 1}}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$count"}}}},
	}
	total, err := r.sumPipeline(ctx, r.assignments, pipeline)
	if err != nil {
		return 0, fmt.Errorf("count submissions: %w", err)
	}
	return total, nil
}

// ClassTotals returns enrollment, assignment and submission counters for one class.
// Returns mongo.ErrNoDocuments when the class is absent.
func (r *ReportRepository) ClassTotals(ctx context.Context, id primitive.ObjectID) (dto.ClassTotals, error) {
	var totals dto.ClassTotals

	var class struct {
		TotalEnrollment int64 `bson:"totalEnrollment"`
	}
	err := r.classes.FindOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(bson.M{"totalEnrollment": 1})).Decode(&class)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return totals, err
		}
		return totals, fmt.Errorf("find class: %w", err)
	}
	totals.TotalEnrollment = class.TotalEnrollment

	classID := id.Hex()
	assignments, err := r.assignments.CountDocuments(ctx, bson.M{"classId": classID})
	if err != nil {
		return totals, fmt.Errorf("count assignments: %w", err)
	}
	totals.TotalAssignment = assignments

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"classId": classID}}},
		{{Key: "$group", Value: bson.M{"_id": nil, "total": bson.M{"$sum": "$total_submitted"}}}},
	}
	submissions, err := r.sumPipeline(ctx, r.assignments, pipeline)
	if err != nil {
		return totals, fmt.Errorf("sum submissions: %w", err)
	}
	totals.TotalSubmission = submissions

	return totals, nil
}

// sumPipeline runs a pipeline ending in a single {total} group. No group result counts as zero.
func (r *ReportRepository) sumPipeline(ctx context.Context, c *mongo.Collection, pipeline mongo.Pipeline) (int64, error) {
	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return 0, cur.Err()
	}
	var row struct {
		Total int64 `bson:"total"`
	}
	if err := cur.Decode(&row); err != nil {
		return 0, err
	}
	return row.Total, nil
}
