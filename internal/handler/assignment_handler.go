package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/service"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

// AssignmentHandler exposes assignment and submission endpoints.
type AssignmentHandler struct {
	service *service.AssignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// List godoc
// @Summary List assignments of a class
// @Tags Assignments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Class ID"
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Success 200 {array} models.Assignment
// @Router /assignments/{id} [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.service.List(c.Request.Context(), c.Param("id"), pageFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignments)
}

// Count godoc
// @Summary Count assignments of a class
// @Tags Assignments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} models.CountResult
// @Router /assignments_count/{id} [get]
func (h *AssignmentHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, count)
}

// Create godoc
// @Summary Create assignment
// @Tags Assignments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment"
// @Success 200 {object} models.InsertResult
// @Failure 403 {object} response.ErrorBody
// @Router /assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Submit godoc
// @Summary Submit assignment
// @Tags Assignments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Assignment ID"
// @Success 200 {object} models.UpdateResult
// @Failure 409 {object} response.ErrorBody
// @Router /assignments/{id} [patch]
func (h *AssignmentHandler) Submit(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	res, err := h.service.Submit(c.Request.Context(), c.Param("id"), caller.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
