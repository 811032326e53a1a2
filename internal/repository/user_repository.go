package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/noah-isme/eduspark-api/internal/models"
)

// UserRepository provides database access for user documents.
type UserRepository struct {
	c *mongo.Collection
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{c: db.Collection(CollectionUsers)}
}

// FindByEmail returns a user by email address. Returns mongo.ErrNoDocuments when absent.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.c.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, err
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// InsertIfAbsent creates the user unless one with the same email exists. The
// returned id is empty when nothing was inserted.
func (r *UserRepository) InsertIfAbsent(ctx context.Context, user *models.User) (string, error) {
	id := primitive.NewObjectID()
	email := strings.ToLower(user.Email)
	doc := bson.M{
		"_id":       id,
		"name":      user.Name,
		"email":     email,
		"photo":     user.Photo,
		"phone":     user.Phone,
		"role":      user.Role,
		"createdAt": user.CreatedAt,
	}

	res, err := r.c.UpdateOne(ctx,
		bson.M{"email": email},
		bson.M{"$setOnInsert": doc},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return "", fmt.Errorf("insert user: %w", err)
	}
	if res.UpsertedCount == 0 {
		return "", nil
	}
	return id.Hex(), nil
}

// List returns users whose email contains search, case-insensitively.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	cur, err := r.c.Find(ctx, userQuery(filter.Search), pageOptions(filter.Page))
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]models.User, 0)
	for cur.Next(ctx) {
		var u models.User
		if err := cur.Decode(&u); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, u)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// Count returns the number of users matching search.
func (r *UserRepository) Count(ctx context.Context, search string) (int64, error) {
	n, err := r.c.CountDocuments(ctx, userQuery(search))
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// SetRole changes the role of the user with email.
func (r *UserRepository) SetRole(ctx context.Context, email string, role models.UserRole) (models.UpdateResult, error) {
	res, err := r.c.UpdateOne(ctx,
		bson.M{"email": strings.ToLower(email)},
		bson.M{"$set": bson.M{"role": role, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return models.UpdateResult{}, fmt.Errorf("set user role: %w", err)
	}
	return updateResult(res), nil
}

func userQuery(search string) bson.M {
	if search == "" {
		return bson.M{}
	}
	return bson.M{"email": containsFold(search)}
}
