package service

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

// Transactor runs a unit of work atomically. The context handed to fn must be
// used for every store call inside the unit.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context, pattern string) bool
}

func parseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(strings.TrimSpace(raw))
	if err != nil {
		return primitive.NilObjectID, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid id")
	}
	return id, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

func validationError(err error, message string) *appErrors.Error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, message)
}

func notFound(message string) *appErrors.Error {
	return appErrors.Clone(appErrors.ErrNotFound, message)
}

// passThrough keeps typed errors raised inside a transaction and wraps anything else.
func passThrough(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Internal(err, message)
}
