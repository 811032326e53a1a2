package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/internal/repository"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type enrollmentRepository interface {
	Exists(ctx context.Context, email, classID string) (bool, error)
	Insert(ctx context.Context, e *models.EnrolledClass) (string, error)
	List(ctx context.Context, page models.Page) ([]models.EnrolledClass, error)
	ClassIDsByEmail(ctx context.Context, email string) ([]string, error)
}

type enrollmentClassRepository interface {
	IncrementEnrollment(ctx context.Context, id primitive.ObjectID) (bool, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Class, error)
}

type enrollmentCounter interface {
	IncEnrollments()
}

// EnrollRequest records a paid enrollment for the caller.
type EnrollRequest struct {
	ClassID       string  `json:"enrolledClassId" validate:"required,len=24,hexadecimal"`
	TransactionID string  `json:"transactionId" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
}

// EnrollmentService manages student enrollments.
type EnrollmentService struct {
	repo      enrollmentRepository
	classes   enrollmentClassRepository
	tx        Transactor
	cache     cacheInvalidator
	metrics   enrollmentCounter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService. cache and metrics may be nil.
func NewEnrollmentService(repo enrollmentRepository, classes enrollmentClassRepository, tx Transactor, cache cacheInvalidator, metrics enrollmentCounter, validate *validator.Validate, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &EnrollmentService{repo: repo, classes: classes, tx: tx, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Enroll inserts the join record and bumps the class counter in one transaction.
func (s *EnrollmentService) Enroll(ctx context.Context, caller models.Identity, req EnrollRequest) (models.InsertResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.InsertResult{}, validationError(err, "invalid enrollment payload")
	}
	classID, err := parseID(req.ClassID)
	if err != nil {
		return models.InsertResult{}, err
	}
	email := strings.ToLower(caller.Email)

	exists, err := s.repo.Exists(ctx, email, classID.Hex())
	if err != nil {
		return models.InsertResult{}, appErrors.Internal(err, "failed to check enrollment")
	}
	if exists {
		return models.InsertResult{}, appErrors.Clone(appErrors.ErrConflict, "already enrolled in class")
	}

	var id string
	err = s.tx.WithTransaction(ctx, func(tctx context.Context) error {
		var err error
		id, err = s.repo.Insert(tctx, &models.EnrolledClass{
			EnrolledEmail:   email,
			EnrolledClassID: classID.Hex(),
			TransactionID:   req.TransactionID,
			Price:           req.Price,
			EnrolledAt:      time.Now().UTC(),
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return appErrors.Clone(appErrors.ErrConflict, "already enrolled in class")
			}
			return err
		}

		ok, err := s.classes.IncrementEnrollment(tctx, classID)
		if err != nil {
			return err
		}
		if !ok {
			return notFound("approved class not found")
		}
		return nil
	})
	if err != nil {
		return models.InsertResult{}, passThrough(err, "failed to enroll")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, CachePatternReports)
	}
	if s.metrics != nil {
		s.metrics.IncEnrollments()
	}
	s.logger.Info("class enrollment recorded", zap.String("email", email), zap.String("class_id", classID.Hex()))
	return models.Inserted(id), nil
}

// List returns every enrollment record.
func (s *EnrollmentService) List(ctx context.Context, page models.Page) ([]models.EnrolledClass, error) {
	items, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list enrollments")
	}
	return items, nil
}

// ClassIDs returns the class ids email is enrolled in.
func (s *EnrollmentService) ClassIDs(ctx context.Context, email string) ([]string, error) {
	ids, err := s.repo.ClassIDsByEmail(ctx, email)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list enrolled class ids")
	}
	return ids, nil
}

// Classes returns the class documents email is enrolled in. Ids of deleted or
// malformed classes are skipped.
func (s *EnrollmentService) Classes(ctx context.Context, email string) ([]models.Class, error) {
	raw, err := s.ClassIDs(ctx, email)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(raw))
	for _, r := range raw {
		if id, err := primitive.ObjectIDFromHex(r); err == nil {
			ids = append(ids, id)
		}
	}
	classes, err := s.classes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to fetch enrolled classes")
	}
	return classes, nil
}
