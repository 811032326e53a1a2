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

type classRepository interface {
	Insert(ctx context.Context, class *models.Class) (string, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Class, error)
	List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error)
	Count(ctx context.Context, filter models.ClassFilter) (int64, error)
	Update(ctx context.Context, id primitive.ObjectID, owner string, upd models.ClassUpdate) (models.UpdateResult, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (models.UpdateResult, error)
	Delete(ctx context.Context, id primitive.ObjectID, owner string) (models.DeleteResult, error)
}

// CreateClassRequest is submitted by a teacher. The class starts pending.
type CreateClassRequest struct {
	Title       string  `json:"title" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

// UpdateClassRequest patches descriptive fields only.
type UpdateClassRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
}

// ClassStatusRequest is the admin review decision.
type ClassStatusRequest struct {
	Status models.ClassStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

// ClassService manages the class catalogue.
type ClassService struct {
	repo      classRepository
	cache     cacheInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassService constructs a ClassService. cache may be nil.
func NewClassService(repo classRepository, cache cacheInvalidator, validate *validator.Validate, logger *zap.Logger) *ClassService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClassService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// Create stores a pending class owned by the caller.
func (s *ClassService) Create(ctx context.Context, owner models.Identity, req CreateClassRequest) (models.InsertResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.InsertResult{}, validationError(err, "invalid class payload")
	}

	id, err := s.repo.Insert(ctx, &models.Class{
		Title:       strings.TrimSpace(req.Title),
		Name:        owner.Name,
		Email:       strings.ToLower(owner.Email),
		Price:       req.Price,
		Description: req.Description,
		Image:       req.Image,
		Status:      models.ClassPending,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return models.InsertResult{}, appErrors.Internal(err, "failed to create class")
	}
	return models.Inserted(id), nil
}

// Get returns a single class.
func (s *ClassService) Get(ctx context.Context, rawID string) (*models.Class, error) {
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	class, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("class not found")
		}
		return nil, appErrors.Internal(err, "failed to fetch class")
	}
	return class, nil
}

// List returns classes matching filter.
func (s *ClassService) List(ctx context.Context, filter models.ClassFilter) ([]models.Class, error) {
	filter.Owner = strings.ToLower(filter.Owner)
	classes, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list classes")
	}
	return classes, nil
}

// Count returns the number of classes matching filter.
func (s *ClassService) Count(ctx context.Context, filter models.ClassFilter) (models.CountResult, error) {
	n, err := s.repo.Count(ctx, filter)
	if err != nil {
		return models.CountResult{}, appErrors.Internal(err, "failed to count classes")
	}
	return models.CountResult{Count: n}, nil
}

// Update changes descriptive fields of a class owned by owner.
func (s *ClassService) Update(ctx context.Context, rawID, owner string, req UpdateClassRequest) (models.UpdateResult, error) {
	id, err := parseID(rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.UpdateResult{}, validationError(err, "invalid class payload")
	}
	upd := models.ClassUpdate{Title: req.Title, Price: req.Price, Description: req.Description, Image: req.Image}
	if upd.Empty() {
		return models.UpdateResult{}, appErrors.Clone(appErrors.ErrValidation, "no fields to update")
	}

	res, err := s.repo.Update(ctx, id, strings.ToLower(owner), upd)
	if err != nil {
		return models.UpdateResult{}, appErrors.Internal(err, "failed to update class")
	}
	if res.MatchedCount == 0 {
		return models.UpdateResult{}, notFound("class not found")
	}
	return res, nil
}

// SetStatus records an admin review decision and drops cached reports.
func (s *ClassService) SetStatus(ctx context.Context, rawID string, req ClassStatusRequest) (models.UpdateResult, error) {
	id, err := parseID(rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.UpdateResult{}, validationError(err, "invalid class status")
	}

	res, err := s.repo.SetStatus(ctx, id, req.Status)
	if err != nil {
		return models.UpdateResult{}, appErrors.Internal(err, "failed to update class status")
	}
	if res.MatchedCount == 0 {
		return models.UpdateResult{}, notFound("class not found")
	}
	s.invalidateReports(ctx)
	s.logger.Info("class reviewed", zap.String("class_id", id.Hex()), zap.String("status", string(req.Status)))
	return res, nil
}

// Delete removes a class owned by owner.
func (s *ClassService) Delete(ctx context.Context, rawID, owner string) (models.DeleteResult, error) {
	id, err := parseID(rawID)
	if err != nil {
		return models.DeleteResult{}, err
	}
	res, err := s.repo.Delete(ctx, id, strings.ToLower(owner))
	if err != nil {
		return models.DeleteResult{}, appErrors.Internal(err, "failed to delete class")
	}
	if res.DeletedCount == 0 {
		return models.DeleteResult{}, notFound("class not found")
	}
	s.invalidateReports(ctx)
	return res, nil
}

func (s *ClassService) invalidateReports(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, CachePatternReports)
	}
}
