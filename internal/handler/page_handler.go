package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/service"
)

// ListPages returns active pages, optionally filtered by ?menu=true|false.
func (a *API) ListPages(c *gin.Context) {
	opts := listOptions(c)
	result, err := a.pages.List(c.Request.Context(), service.PageFilter{
		ShowInMenu:  parseBoolQuery(c, "menu"),
		ListOptions: opts,
	})
	if err != nil {
		a.serverError(c, "failed to list pages", err)
		return
	}

	payload := make([]pageSummary, 0, len(result.Items))
	for _, page := range result.Items {
		payload = append(payload, a.projectPageSummary(page, result.SectionCounts[page.ID]))
	}

	setTotalHeaders(c, opts, result.Total, result.TotalPages)
	c.JSON(http.StatusOK, payload)
}

// GetPage returns an active page with its ordered sections and items.
func (a *API) GetPage(c *gin.Context) {
	page, err := a.pages.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondMessage(c, http.StatusNotFound, locale.MsgNotFound)
			return
		}
		a.serverError(c, "failed to load page", err)
		return
	}

	c.JSON(http.StatusOK, a.projectPageDetail(c.Request.Context(), page))
}

// serverError logs a fault with its cause and answers with a generic 500.
func (a *API) serverError(c *gin.Context, msg string, err error) {
	slog.Error(msg, "path", c.Request.URL.Path, "error", err)
	respondMessage(c, http.StatusInternalServerError, locale.MsgInternal)
}
