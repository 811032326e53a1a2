package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/service"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

// TeacherRequestHandler exposes teacher application endpoints.
type TeacherRequestHandler struct {
	service *service.TeacherRequestService
}

// NewTeacherRequestHandler constructs a teacher request handler.
func NewTeacherRequestHandler(svc *service.TeacherRequestService) *TeacherRequestHandler {
	return &TeacherRequestHandler{service: svc}
}

// List godoc
// @Summary List teacher requests
// @Tags TeacherRequests
// @Security BearerAuth
// @Produce json
// @Param page query int false "Zero-indexed page"
// @Param size query int false "Page size"
// @Success 200 {array} models.TeacherRequest
// @Router /teacher_requests [get]
func (h *TeacherRequestHandler) List(c *gin.Context) {
	requests, err := h.service.List(c.Request.Context(), pageFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, requests)
}

// Count godoc
// @Summary Count teacher requests
// @Tags TeacherRequests
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CountResult
// @Router /teacher_requests_count [get]
func (h *TeacherRequestHandler) Count(c *gin.Context) {
	count, err := h.service.Count(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, count)
}

// Submit godoc
// @Summary Apply to teach
// @Tags TeacherRequests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.SubmitTeacherRequest true "Application"
// @Success 200 {object} models.InsertResult
// @Failure 409 {object} response.ErrorBody
// @Router /teacher_requests [post]
func (h *TeacherRequestHandler) Submit(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.SubmitTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.Submit(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Review godoc
// @Summary Review teacher request
// @Description Approval promotes the applicant to teacher in the same transaction.
// @Tags TeacherRequests
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body service.ReviewTeacherRequest true "Decision"
// @Success 200 {object} models.UpdateResult
// @Router /teacher_requests/{id} [patch]
func (h *TeacherRequestHandler) Review(c *gin.Context) {
	var req service.ReviewTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.service.Review(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}
