package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type feedbackRepository interface {
	Insert(ctx context.Context, f *models.Feedback) (string, error)
	List(ctx context.Context) ([]models.Feedback, error)
	ListByClass(ctx context.Context, classID string) ([]models.Feedback, error)
}

// CreateFeedbackRequest rates a class.
type CreateFeedbackRequest struct {
	ClassID     string `json:"classId" validate:"required"`
	Title       string `json:"title"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"required"`
}

// FeedbackService records class feedback.
type FeedbackService struct {
	repo      feedbackRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeedbackService constructs a FeedbackService.
func NewFeedbackService(repo feedbackRepository, validate *validator.Validate, logger *zap.Logger) *FeedbackService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeedbackService{repo: repo, validator: validate, logger: logger}
}

// Create appends feedback attributed to the caller.
func (s *FeedbackService) Create(ctx context.Context, caller models.Identity, req CreateFeedbackRequest) (models.InsertResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.InsertResult{}, validationError(err, "invalid feedback payload")
	}
	classID, err := parseID(req.ClassID)
	if err != nil {
		return models.InsertResult{}, err
	}

	id, err := s.repo.Insert(ctx, &models.Feedback{
		ClassID:     classID.Hex(),
		Title:       req.Title,
		Email:       caller.Email,
		Name:        caller.Name,
		Image:       caller.Photo,
		Rating:      req.Rating,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return models.InsertResult{}, appErrors.Internal(err, "failed to save feedback")
	}
	return models.Inserted(id), nil
}

// List returns all feedback, newest first.
func (s *FeedbackService) List(ctx context.Context) ([]models.Feedback, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list feedback")
	}
	return items, nil
}

// ListByClass returns the feedback of one class.
func (s *FeedbackService) ListByClass(ctx context.Context, rawClassID string) ([]models.Feedback, error) {
	classID, err := parseID(rawClassID)
	if err != nil {
		return nil, err
	}
	items, err := s.repo.ListByClass(ctx, classID.Hex())
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list feedback")
	}
	return items, nil
}
