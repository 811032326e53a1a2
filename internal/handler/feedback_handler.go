package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/service"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

// FeedbackHandler exposes class feedback and article endpoints.
type FeedbackHandler struct {
	feedback *service.FeedbackService
	articles *service.ArticleService
}

// NewFeedbackHandler constructs a feedback handler.
func NewFeedbackHandler(feedback *service.FeedbackService, articles *service.ArticleService) *FeedbackHandler {
	return &FeedbackHandler{feedback: feedback, articles: articles}
}

// List godoc
// @Summary List feedback
// @Tags Feedback
// @Produce json
// @Success 200 {array} models.Feedback
// @Router /feedbacks [get]
func (h *FeedbackHandler) List(c *gin.Context) {
	items, err := h.feedback.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// ByClass godoc
// @Summary List feedback of a class
// @Tags Feedback
// @Security BearerAuth
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {array} models.Feedback
// @Router /feedback/{id} [get]
func (h *FeedbackHandler) ByClass(c *gin.Context) {
	items, err := h.feedback.ListByClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// Create godoc
// @Summary Rate a class
// @Tags Feedback
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.CreateFeedbackRequest true "Feedback"
// @Success 200 {object} models.InsertResult
// @Router /feedbacks [post]
func (h *FeedbackHandler) Create(c *gin.Context) {
	caller, ok := identityFromContext(c)
	if !ok {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	res, err := h.feedback.Create(c.Request.Context(), caller, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, res)
}

// Articles godoc
// @Summary List articles
// @Tags Articles
// @Produce json
// @Success 200 {array} models.Article
// @Router /articles [get]
func (h *FeedbackHandler) Articles(c *gin.Context) {
	articles, err := h.articles.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, articles)
}
