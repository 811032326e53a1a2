package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type assignmentRepository interface {
	Insert(ctx context.Context, a *models.Assignment) (string, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error)
	ListByClass(ctx context.Context, classID string, page models.Page) ([]models.Assignment, error)
	CountByClass(ctx context.Context, classID string) (int64, error)
	Submit(ctx context.Context, id primitive.ObjectID, email string, at time.Time) (models.UpdateResult, error)
}

type classFinder interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
}

// CreateAssignmentRequest adds an assignment to one of the caller's classes.
type CreateAssignmentRequest struct {
	ClassID     string    `json:"classId" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

// AssignmentService manages assignments and submissions.
type AssignmentService struct {
	repo      assignmentRepository
	classes   classFinder
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(repo assignmentRepository, classes classFinder, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentService{repo: repo, classes: classes, validator: validate, logger: logger, now: time.Now}
}

// Create stores an assignment for a class owned by the caller.
func (s *AssignmentService) Create(ctx context.Context, caller models.Identity, req CreateAssignmentRequest) (models.InsertResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.InsertResult{}, validationError(err, "invalid assignment payload")
	}
	classID, err := parseID(req.ClassID)
	if err != nil {
		return models.InsertResult{}, err
	}

	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		if isNotFound(err) {
			return models.InsertResult{}, notFound("class not found")
		}
		return models.InsertResult{}, appErrors.Internal(err, "failed to fetch class")
	}
	if !strings.EqualFold(class.Email, caller.Email) {
		return models.InsertResult{}, appErrors.ErrForbidden
	}

	id, err := s.repo.Insert(ctx, &models.Assignment{
		ClassID:     classID.Hex(),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Deadline:    req.Deadline,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return models.InsertResult{}, appErrors.Internal(err, "failed to create assignment")
	}
	return models.Inserted(id), nil
}

// List returns the assignments of a class.
func (s *AssignmentService) List(ctx context.Context, rawClassID string, page models.Page) ([]models.Assignment, error) {
	classID, err := parseID(rawClassID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByClass(ctx, classID.Hex(), page)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list assignments")
	}
	return items, nil
}

// Count returns the number of assignments of a class.
func (s *AssignmentService) Count(ctx context.Context, rawClassID string) (models.CountResult, error) {
	classID, err := parseID(rawClassID)
	if err != nil {
		return models.CountResult{}, err
	}
	n, err := s.repo.CountByClass(ctx, classID.Hex())
	if err != nil {
		return models.CountResult{}, appErrors.Internal(err, "failed to count assignments")
	}
	return models.CountResult{Count: n}, nil
}

// Submit records the caller's submission. Each email submits an assignment once.
func (s *AssignmentService) Submit(ctx context.Context, rawID, email string) (models.UpdateResult, error) {
	id, err := parseID(rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}

	res, err := s.repo.Submit(ctx, id, email, s.now())
	if err != nil {
		return models.UpdateResult{}, appErrors.Internal(err, "failed to submit assignment")
	}
	if res.MatchedCount > 0 {
		return res, nil
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if isNotFound(err) {
			return models.UpdateResult{}, notFound("assignment not found")
		}
		return models.UpdateResult{}, appErrors.Internal(err, "failed to fetch assignment")
	}
	return models.UpdateResult{}, appErrors.Clone(appErrors.ErrConflict, "assignment already submitted")
}
