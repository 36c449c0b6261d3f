package handlers

import (
	"musicweb-api/helper"
	"musicweb-api/middleware"
	"musicweb-api/models"

	"github.com/gin-gonic/gin"
)

func listParams(c *gin.Context, sortable []string) models.ListParams {
	return models.NewListParams(
		c.Query("page"),
		c.Query("limit"),
		c.Query("sortBy"),
		c.Query("sortOrder"),
		c.Query("search"),
		sortable,
	)
}

// identity fetches the authenticated caller, answering 401 when the route was not gated.
func identity(c *gin.Context, h *helper.HTTPHelper) (*models.Identity, bool) {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		h.SendUnauthorizedError(c)
		return nil, false
	}
	return id, true
}
