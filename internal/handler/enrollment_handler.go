package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/service"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

// EnrollmentHandler exposes enrollment endpoints.
type EnrollmentHandler struct {
	service *service.EnrollmentService
}

// NewEnrollmentHandler constructs an enrollment handler.
func NewEnrollmentHandler(svc *service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: svc}
}

// List godoc
// @Summary List enrollment records
// @Tags Enrollments
// @Security BearerAuth
// @Produce json
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Success 200 {array} models.EnrolledClass
// @Router /enrolled_classes [get]
func (h *EnrollmentHandler) List(c *gin.Context) {
	records, err := h.service.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, records)
}

// Enroll godoc
// @Summary Enroll in a class
// @Tags Enrollments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.EnrollRequest true "Enrollment"
// @Success 200 {object} models.InsertResult
// @Failure 409 {object} response.ErrorBody
// @Router /enrolled_classes [post]
func (h *EnrollmentHandler) Enroll(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.Enroll(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// ClassIDs godoc
// @Summary Enrolled class ids
// @Tags Enrollments
// @Security BearerAuth
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} string
// @Router /enrolled_classes_ids/{email} [get]
func (h *EnrollmentHandler) ClassIDs(c *gin.Context) {
	ids, err := h.service.ClassIDs(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ids)
}

// Classes godoc
// @Summary Enrolled classes
// @Tags Enrollments
// @Security BearerAuth
// @Produce json
// @Param email path string true "Student email"
// @Success 200 {array} models.Class
// @Router /my_enrolled_classes/{email} [get]
func (h *EnrollmentHandler) Classes(c *gin.Context) {
	classes, err := h.service.Classes(c.Request.Context(), c.Param("email"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classes)
}
