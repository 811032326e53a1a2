package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/models"
	"github.com/noah-isme/eduspark-api/pkg/response"
)

type tokenIssuer interface {
	Issue(identity models.Identity) (*models.TokenResponse, error)
}

// AuthHandler wires HTTP endpoints to the auth service.
type AuthHandler struct {
	service tokenIssuer
}

// NewAuthHandler creates a new handler.
func NewAuthHandler(svc tokenIssuer) *AuthHandler {
	return &AuthHandler{service: svc}
}

// IssueToken godoc
// @Summary Issue access token
// @Description Sign an access token for an identity already verified by the identity provider
// @Tags Authentication
// @Accept json
// @Produce json
// @Param payload body models.Identity true "Identity"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} response.ErrorBody
// @Router /jwt [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var identity models.Identity
	if err := c.ShouldBindJSON(&identity); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	token, err := h.service.Issue(identity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, token)
}
