package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	CollectionUsers           = "users"
	CollectionClasses         = "classes"
	CollectionTeacherRequests = "teacherRequests"
	CollectionEnrolledClasses = "enrolledClasses"
	CollectionAssignments     = "assignments"
	CollectionFeedbacks       = "feedbacks"
	CollectionArticles        = "eduArticles"
)

// Store owns the MongoDB client and database handle shared by every repository.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewStore wraps a connected client.
func NewStore(client *mongo.Client, dbName string) *Store {
	return &Store{client: client, db: client.Database(dbName)}
}

// DB exposes the database handle used to construct repositories.
func (s *Store) DB() *mongo.Database {
	return s.db
}

// Ping checks that the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// WithTransaction runs fn inside a multi-document transaction. The context passed
// to fn carries the session and must be used for every operation in the unit.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// EnsureIndexes creates the indexes the repositories rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	specs := map[string][]mongo.IndexModel{
		CollectionUsers: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionClasses: {
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "totalEnrollment", Value: -1}}},
			{Keys: bson.D{{Key: "email", Value: 1}}},
		},
		CollectionTeacherRequests: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionEnrolledClasses: {
			{Keys: bson.D{{Key: "enrolledEmail", Value: 1}, {Key: "enrolledClassId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		CollectionAssignments: {
			{Keys: bson.D{{Key: "classId", Value: 1}}},
		},
		CollectionFeedbacks: {
			{Keys: bson.D{{Key: "classId", Value: 1}}},
		},
	}

	for name, indexes := range specs {
		if _, err := s.db.Collection(name).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
