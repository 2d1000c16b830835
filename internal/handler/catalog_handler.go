package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/service"
)

// ListCatalogItems returns active catalog items ordered by id.
func (a *API) ListCatalogItems(c *gin.Context) {
	opts := listOptions(c)
	result, err := a.catalog.ListActive(c.Request.Context(), opts)
	if err != nil {
		a.serverError(c, "failed to list catalog items", err)
		return
	}

	payload := make([]catalogSummary, 0, len(result.Items))
	for _, item := range result.Items {
		payload = append(payload, a.projectCatalogSummary(c.Request.Context(), item))
	}

	setTotalHeaders(c, opts, result.Total, result.TotalPages)
	c.JSON(http.StatusOK, payload)
}

// GetCatalogItem returns an active catalog item with its ordered gallery.
func (a *API) GetCatalogItem(c *gin.Context) {
	item, err := a.catalog.GetActiveBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrCatalogItemNotFound) {
			respondMessage(c, http.StatusNotFound, locale.MsgNotFound)
			return
		}
		a.serverError(c, "failed to load catalog item", err)
		return
	}

	c.JSON(http.StatusOK, a.projectCatalogDetail(c.Request.Context(), item))
}
