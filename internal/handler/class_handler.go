package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/internal/service"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

// ClassHandler exposes class catalogue endpoints.
type ClassHandler struct {
	service *service.ClassService
}

// NewClassHandler constructs a class handler.
func NewClassHandler(svc *service.ClassService) *ClassHandler {
	return &ClassHandler{service: svc}
}

// List godoc
// @Summary List all classes
// @Tags Classes
// @Security BearerAuth
// @Produce json
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Success 200 {array} models.Class
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	h.list(c, models.ClassFilter{Page: pageFromQuery(c)})
}

// Count godoc
// @Summary Count all classes
// @Tags Classes
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CountResult
// @Router /classes_count [get]
func (h *ClassHandler) Count(c *gin.Context) {
	h.count(c, models.ClassFilter{})
}

// Approved godoc
// @Summary List approved classes
// @Tags Classes
// @Produce json
// @Param search query string false "Title substring"
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Success 200 {array} models.Class
// @Router /approved_classes [get]
func (h *ClassHandler) Approved(c *gin.Context) {
	h.list(c, models.ClassFilter{
		Status: models.ClassApproved,
		Search: strings.TrimSpace(c.Query("search")),
		Page:   pageFromQuery(c),
	})
}

// ApprovedCount godoc
// @Summary Count approved classes
// @Tags Classes
// @Produce json
// @Param search query string false "Title substring"
// @Success 200 {object} models.CountResult
// @Router /approved_classes_count [get]
func (h *ClassHandler) ApprovedCount(c *gin.Context) {
	h.count(c, models.ClassFilter{
		Status: models.ClassApproved,
		Search: strings.TrimSpace(c.Query("search")),
	})
}

// ByTeacher godoc
// @Summary List classes owned by a teacher
// @Tags Classes
// @Security BearerAuth
// @Produce json
// @Param email path string true "Owner email"
// @Success 200 {array} models.Class
// @Router /teacher_classes/{email} [get]
func (h *ClassHandler) ByTeacher(c *gin.Context) {
	h.list(c, models.ClassFilter{Owner: c.Param("email"), Page: pageFromQuery(c)})
}

// Get godoc
// @Summary Get class detail
// @Tags Classes
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} models.Class
// @Failure 404 {object} response.ErrorBody
// @Router /single_class/{id} [get]
func (h *ClassHandler) Get(c *gin.Context) {
	class, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, class)
}

// Create godoc
// @Summary Create class
// @Tags Classes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateClassRequest true "Class payload"
// @Success 200 {object} models.InsertResult
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	owner, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.Create(c.Request.Context(), owner, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Update godoc
// @Summary Update own class
// @Tags Classes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.UpdateClassRequest true "Changed fields"
// @Success 200 {object} models.UpdateResult
// @Router /classes/{id} [patch]
func (h *ClassHandler) Update(c *gin.Context) {
	owner, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.Update(c.Request.Context(), c.Param("id"), owner.Email, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// SetStatus godoc
// @Summary Review class
// @Tags Classes
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body service.ClassStatusRequest true "Decision"
// @Success 200 {object} models.UpdateResult
// @Router /classes/status/{id} [patch]
func (h *ClassHandler) SetStatus(c *gin.Context) {
	var req service.ClassStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.SetStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Delete godoc
// @Summary Delete own class
// @Tags Classes
// @Security BearerAuth
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} models.DeleteResult
// @Router /classes/{id} [delete]
func (h *ClassHandler) Delete(c *gin.Context) {
	owner, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	res, err := h.service.Delete(c.Request.Context(), c.Param("id"), owner.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

func (h *ClassHandler) list(c *gin.Context, filter models.ClassFilter) {
	classes, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}

func (h *ClassHandler) count(c *gin.Context, filter models.ClassFilter) {
	count, err := h.service.Count(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, count)
}
