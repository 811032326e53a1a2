package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

type userRepository interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	InsertIfAbsent(ctx context.Context, user *models.User) (string, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Count(ctx context.Context, search string) (int64, error)
	SetRole(ctx context.Context, email string, role models.UserRole) (models.UpdateResult, error)
}

// CreateUserRequest is the first sign-in payload. Any role sent by the client is ignored.
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo"`
	Phone string `json:"phone"`
}

// UserService handles user management use cases.
type UserService struct {
	repo      userRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, validate *validator.Validate, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &UserService{repo: repo, validator: validate, logger: logger}
}

// Create inserts the user unless the email is already registered.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (models.InsertResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := s.validator.Struct(req); err != nil {
		return models.InsertResult{}, validationError(err, "invalid user payload")
	}

	id, err := s.repo.InsertIfAbsent(ctx, &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Photo:     req.Photo,
		Phone:     req.Phone,
		Role:      models.RoleStudent,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return models.InsertResult{}, appErrors.Internal(err, "failed to create user")
	}
	if id == "" {
		return models.InsertResult{Message: "user already exists"}, nil
	}
	s.logger.Info("user registered", zap.String("email", req.Email))
	return models.Inserted(id), nil
}

// Get returns a user by email.
func (s *UserService) Get(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, notFound("user not found")
		}
		return nil, appErrors.Internal(err, "failed to fetch user")
	}
	return user, nil
}

// Role returns the role of email, or RoleUnknown when no such user exists.
func (s *UserService) Role(ctx context.Context, email string) (models.UserRole, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return models.RoleUnknown, nil
		}
		return "", appErrors.Internal(err, "failed to fetch user role")
	}
	return user.Role, nil
}

// List returns users matching the filter.
func (s *UserService) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list users")
	}
	return users, nil
}

// Count returns the number of users matching search.
func (s *UserService) Count(ctx context.Context, search string) (models.CountResult, error) {
	n, err := s.repo.Count(ctx, search)
	if err != nil {
		return models.CountResult{}, appErrors.Internal(err, "failed to count users")
	}
	return models.CountResult{Count: n}, nil
}

// PromoteToAdmin grants the admin role to email.
func (s *UserService) PromoteToAdmin(ctx context.Context, email string) (models.UpdateResult, error) {
	res, err := s.repo.SetRole(ctx, email, models.RoleAdmin)
	if err != nil {
		return models.UpdateResult{}, appErrors.Internal(err, "failed to promote user")
	}
	if res.MatchedCount == 0 {
		return models.UpdateResult{}, notFound("user not found")
	}
	s.logger.Info("user promoted", zap.String("email", strings.ToLower(email)), zap.String("role", string(models.RoleAdmin)))
	return res, nil
}
