package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/service"
)

// ListContent returns legacy page records, optionally limited to ?section=.
func (a *API) ListContent(c *gin.Context) {
	opts := listOptions(c)
	result, err := a.content.List(c.Request.Context(), c.Query("section"), opts)
	if err != nil {
		a.serverError(c, "failed to list page content", err)
		return
	}

	payload := make([]contentView, 0, len(result.Items))
	for _, content := range result.Items {
		payload = append(payload, a.projectContent(c.Request.Context(), content))
	}

	setTotalHeaders(c, opts, result.Total, result.TotalPages)
	c.JSON(http.StatusOK, payload)
}

// GetContent returns one legacy page record.
func (a *API) GetContent(c *gin.Context) {
	content, err := a.content.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrContentNotFound) {
			respondMessage(c, http.StatusNotFound, locale.MsgNotFound)
			return
		}
		a.serverError(c, "failed to load page content", err)
		return
	}

	c.JSON(http.StatusOK, a.projectContent(c.Request.Context(), *content))
}
