package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduspark-api/internal/middleware"
	"github.com/noah-isme/eduspark-api/internal/models"
	appErrors "github.com/noah-isme/eduspark-api/pkg/errors"
)

func identityFromContext(c *gin.Context) (models.Identity, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return models.Identity{}, false
	}
	return claims.Identity, true
}

// pageFromQuery reads the zero-indexed page and size parameters. Unparseable
// values fall back to an unlimited first page.
func pageFromQuery(c *gin.Context) models.Page {
	var page models.Page
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		page.Number = n
	}
	if n, err := strconv.Atoi(c.Query("size")); err == nil && n > 0 {
		page.Size = n
	}
	return page
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
}
