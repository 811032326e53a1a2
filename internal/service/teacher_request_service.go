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

type teacherRequestRepository interface {
	Insert(ctx context.Context, req *models.TeacherRequest) (string, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.TeacherRequest, error)
	FindByEmail(ctx context.Context, email string) (*models.TeacherRequest, error)
	Resubmit(ctx context.Context, id primitive.ObjectID, req *models.TeacherRequest) (models.UpdateResult, error)
	List(ctx context.Context, page models.Page) ([]models.TeacherRequest, error)
	Count(ctx context.Context) (int64, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.ClassStatus) (models.UpdateResult, error)
}

type roleWriter interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	SetRole(ctx context.Context, email string, role models.UserRole) (models.UpdateResult, error)
}

// SubmitTeacherRequest is an application to teach on the platform.
type SubmitTeacherRequest struct {
	Name       string `json:"name"`
	Image      string `json:"image"`
	Title      string `json:"title" validate:"required"`
	Experience string `json:"experience" validate:"required,oneof=beginner mid-level experienced"`
	Category   string `json:"category" validate:"required"`
}

// ReviewTeacherRequest is the admin decision on an application.
type ReviewTeacherRequest struct {
	Status models.ClassStatus `json:"status" validate:"required,oneof=pending approved rejected"`
}

// TeacherRequestService manages teacher applications and promotions.
type TeacherRequestService struct {
	repo      teacherRequestRepository
	users     roleWriter
	tx        Transactor
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherRequestService constructs a TeacherRequestService.
func NewTeacherRequestService(repo teacherRequestRepository, users roleWriter, tx Transactor, validate *validator.Validate, logger *zap.Logger) *TeacherRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &TeacherRequestService{repo: repo, users: users, tx: tx, validator: validate, logger: logger}
}

// Submit files the caller's application. A rejected application is reopened;
// a pending or approved one is a conflict.
func (s *TeacherRequestService) Submit(ctx context.Context, caller models.Identity, req SubmitTeacherRequest) (models.InsertResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.InsertResult{}, validationError(err, "invalid teacher request payload")
	}

	name := req.Name
	if name == "" {
		name = caller.Name
	}
	image := req.Image
	if image == "" {
		image = caller.Photo
	}
	doc := &models.TeacherRequest{
		Name:       name,
		Email:      strings.ToLower(caller.Email),
		Image:      image,
		Title:      strings.TrimSpace(req.Title),
		Experience: req.Experience,
		Category:   req.Category,
		Status:     models.ClassPending,
		CreatedAt:  time.Now().UTC(),
	}

	existing, err := s.repo.FindByEmail(ctx, doc.Email)
	switch {
	case err == nil:
		if existing.Status != models.ClassRejected {
			return models.InsertResult{}, appErrors.Clone(appErrors.ErrConflict, "teacher request already submitted")
		}
		if _, err := s.repo.Resubmit(ctx, existing.ID, doc); err != nil {
			return models.InsertResult{}, appErrors.Internal(err, "failed to resubmit teacher request")
		}
		return models.Inserted(existing.ID.Hex()), nil
	case !isNotFound(err):
		return models.InsertResult{}, appErrors.Internal(err, "failed to fetch teacher request")
	}

	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return models.InsertResult{}, appErrors.Clone(appErrors.ErrConflict, "teacher request already submitted")
		}
		return models.InsertResult{}, appErrors.Internal(err, "failed to submit teacher request")
	}
	return models.Inserted(id), nil
}

// List returns applications.
func (s *TeacherRequestService) List(ctx context.Context, page models.Page) ([]models.TeacherRequest, error) {
	items, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list teacher requests")
	}
	return items, nil
}

// Count returns the number of applications.
func (s *TeacherRequestService) Count(ctx context.Context) (models.CountResult, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return models.CountResult{}, appErrors.Internal(err, "failed to count teacher requests")
	}
	return models.CountResult{Count: n}, nil
}

// Review applies the admin decision. Approval promotes the applicant to
// teacher and withdrawing an approval demotes them back to student; the
// request and role writes commit together. Admin roles are never changed.
func (s *TeacherRequestService) Review(ctx context.Context, rawID string, req ReviewTeacherRequest) (models.UpdateResult, error) {
	id, err := parseID(rawID)
	if err != nil {
		return models.UpdateResult{}, err
	}
	if err := s.validator.Struct(req); err != nil {
		return models.UpdateResult{}, validationError(err, "invalid review status")
	}

	if req.Status != models.ClassApproved {
		current, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if isNotFound(err) {
				return models.UpdateResult{}, notFound("teacher request not found")
			}
			return models.UpdateResult{}, appErrors.Internal(err, "failed to fetch teacher request")
		}
		if current.Status != models.ClassApproved {
			res, err := s.repo.SetStatus(ctx, id, req.Status)
			if err != nil {
				return models.UpdateResult{}, appErrors.Internal(err, "failed to update teacher request")
			}
			if res.MatchedCount == 0 {
				return models.UpdateResult{}, notFound("teacher request not found")
			}
			return res, nil
		}
	}

	var result models.UpdateResult
	err = s.tx.WithTransaction(ctx, func(tctx context.Context) error {
		application, err := s.repo.FindByID(tctx, id)
		if err != nil {
			if isNotFound(err) {
				return notFound("teacher request not found")
			}
			return err
		}

		result, err = s.repo.SetStatus(tctx, id, req.Status)
		if err != nil {
			return err
		}
		return s.syncApplicantRole(tctx, application.Email, req.Status)
	})
	if err != nil {
		return models.UpdateResult{}, passThrough(err, "failed to review teacher request")
	}

	s.logger.Info("teacher request reviewed", zap.String("request_id", id.Hex()), zap.String("status", string(req.Status)))
	return result, nil
}

func (s *TeacherRequestService) syncApplicantRole(ctx context.Context, email string, status models.ClassStatus) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return notFound("applicant user not found")
		}
		return err
	}

	var role models.UserRole
	switch {
	case user.Role == models.RoleAdmin:
		return nil
	case status == models.ClassApproved:
		role = models.RoleTeacher
	case user.Role == models.RoleTeacher:
		role = models.RoleStudent
	default:
		return nil
	}

	res, err := s.users.SetRole(ctx, email, role)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return notFound("applicant user not found")
	}
	return nil
}
