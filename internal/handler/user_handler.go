package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/internal/service"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

type userService interface {
	Create(ctx context.Context, req service.CreateUserRequest) (models.InsertResult, error)
	Get(ctx context.Context, email string) (*models.User, error)
	Role(ctx context.Context, email string) (models.UserRole, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	Count(ctx context.Context, search string) (models.CountResult, error)
	PromoteToAdmin(ctx context.Context, email string) (models.UpdateResult, error)
}

// UserHandler manages user endpoints.
type UserHandler struct {
	service userService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Email substring"
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Success 200 {array} models.User
// @Router /users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context(), models.UserFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Page:   pageFromQuery(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// Count godoc
// @Summary Count users
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param search query string false "Email substring"
// @Success 200 {object} models.CountResult
// @Router /users_count [get]
func (h *UserHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), strings.TrimSpace(c.Query("search")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, count)
}

// Get godoc
// @Summary Get own profile
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} models.User
// @Failure 404 {object} response.ErrorBody
// @Router /users/{email} [get]
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.service.Get(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, user)
}

// Role godoc
// @Summary Get own role
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} map[string]string
// @Router /users/role/{email} [get]
func (h *UserHandler) Role(c *gin.Context) {
	role, err := h.service.Role(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"role": role})
}

// Create godoc
// @Summary Register user on first sign-in
// @Tags Users
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 200 {object} models.InsertResult
// @Router /users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Promote godoc
// @Summary Promote user to admin
// @Tags Users
// @Security BearerAuth
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} models.UpdateResult
// @Failure 404 {object} response.ErrorBody
// @Router /users/{email} [patch]
func (h *UserHandler) Promote(c *gin.Context) {
	res, err := h.service.PromoteToAdmin(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
