package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// ClassRepository manages class documents.
type ClassRepository struct {
	c *mongo.Collection
}

// NewClassRepository constructs a ClassRepository.
func NewClassRepository(db *mongo.Database) *ClassRepository {
	return &ClassRepository{c: db.Collection(CollectionClasses)}
}

// Insert stores a new class and returns its hex id.
func (r *ClassRepository) Insert(ctx context.Context, class *models.Class) (string, error) {
	if class.ID.IsZero() {
		class.ID = primitive.NewObjectID()
	}
	res, err := r.c.InsertOne(ctx, class)
	if err != nil {
		return "", fmt.Errorf("insert class: %w", err)
	}
	return insertedHex(res), nil
}

// FindByID returns a class. Returns mongo.ErrNoDocuments when absent.
func (r *ClassRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error) {
	var class models.Class
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&class); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find class: %w", err)
	}
	return &class, nil
}

// FindByIDs returns the classes with the given ids in natural order.
func (r *ClassRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Class, error) {
	if len(ids) == 0 {
		return []models.Class{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, models.Page{})
}

// List returns classes matching filter.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	return r.find(ctx, classQuery(filter), filter.Page)
}

// Count returns the number of classes matching filter.
func (r *ClassRepository) Count(ctx context.Context, filter models.ClassFilter) (int64, error) {
	n, err := r.c.CountDocuments(ctx, classQuery(filter))
	if err != nil {
		return 0, fmt.Errorf("count classes: %w", err)
	}
	return n, nil
}

// Update sets descriptive fields on a class owned by owner.
func (r *ClassRepository) Update(ctx context.Context, id primitive.ObjectID, owner string, upd models.ClassUpdate) (models.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id, "email": owner}, bson.M{"$set": upd})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("update class: %w", err)
	}
	return updateResult(res), nil
}

// SetStatus changes the review status of a class.
func (r *ClassRepository) SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (models.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("set class status: %w", err)
	}
	return updateResult(res), nil
}

// Delete removes a class owned by owner.
func (r *ClassRepository) Delete(ctx context.Context, id primitive.ObjectID, owner string) (models.DeleteResult, error) {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id, "email": owner})
	if err != nil {
		return models.DeleteResult{}, fmt.Errorf("delete class: %w", err)
	}
	return models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// IncrementEnrollment bumps the counter of an approved class and reports whether
// a class matched.
func (r *ClassRepository) IncrementEnrollment(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.ClassApproved},
		bson.M{"$inc": bson.M{"totalEnrollment": 1}},
	)
	if err != nil {
		return false, fmt.Errorf("increment enrollment: %w", err)
	}
	return res.MatchedCount == 1, nil
}

func (r *ClassRepository) find(ctx context.Context, filter bson.M, page models.Page) ([]models.Class, error) {
	cur, err := r.c.Find(ctx, filter, pageOptions(page))
	if err != nil {
		return nil, fmt.Errorf("list classes: %w", err)
	}
	defer cur.Close(ctx)

	classes := make([]models.Class, 0)
	if err := cur.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("decode classes: %w", err)
	}
	return classes, nil
}

func classQuery(filter models.ClassFilter) bson.M {
	q := bson.M{}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	if filter.Owner != "" {
		q["email"] = filter.Owner
	}
	if filter.Search != "" {
		q["title"] = containsFold(filter.Search)
	}
	return q
}
