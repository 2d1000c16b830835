package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/db"
	"github.com/regionportal/cms/internal/service"
)

type contentPayload struct {
	TitleUK   string          `json:"title_uk"`
	TitleEN   string          `json:"title_en"`
	ContentUK string          `json:"content_uk"`
	ContentEN string          `json:"content_en"`
	Format    string          `json:"format"`
	Image     string          `json:"image"`
	Section   string          `json:"section"`
	ChartData json.RawMessage `json:"chart_data"`
}

type adminContentView struct {
	contentView
	Image string `json:"image"`
}

// AdminListContent returns every legacy record, including the registry of
// well-known slugs so editors can see which singletons are still missing.
func (a *API) AdminListContent(c *gin.Context) {
	opts := listOptions(c)
	result, err := a.content.List(c.Request.Context(), c.Query("section"), opts)
	if err != nil {
		a.serverError(c, "failed to list page content", err)
		return
	}

	items := make([]adminContentView, 0, len(result.Items))
	for _, content := range result.Items {
		items = append(items, adminContentView{
			contentView: a.projectContent(c.Request.Context(), content),
			Image:       content.Image,
		})
	}

	type fixedView struct {
		Slug    string `json:"slug"`
		TitleUK string `json:"title_uk"`
		TitleEN string `json:"title_en"`
		Section string `json:"section"`
	}
	fixed := make([]fixedView, 0, len(db.FixedContentPages))
	for _, page := range db.FixedContentPages {
		fixed = append(fixed, fixedView{
			Slug:    page.Slug,
			TitleUK: page.TitleUK,
			TitleEN: page.TitleEN,
			Section: db.SectionForFixedSlug(page.Slug),
		})
	}

	setTotalHeaders(c, opts, result.Total, result.TotalPages)
	c.JSON(http.StatusOK, gin.H{"items": items, "fixed": fixed})
}

// AdminSaveContent creates or replaces the legacy record for :slug.
func (a *API) AdminSaveContent(c *gin.Context) {
	var payload contentPayload
	if !bindJSON(c, &payload) {
		return
	}

	content, err := a.content.Save(c.Request.Context(), c.Param("slug"), service.ContentInput{
		TitleUK:   payload.TitleUK,
		TitleEN:   payload.TitleEN,
		ContentUK: payload.ContentUK,
		ContentEN: payload.ContentEN,
		Format:    payload.Format,
		Image:     payload.Image,
		Section:   payload.Section,
		ChartData: payload.ChartData,
	})
	if err != nil {
		a.respondAdminError(c, err)
		return
	}

	c.JSON(http.StatusOK, adminContentView{
		contentView: a.projectContent(c.Request.Context(), *content),
		Image:       content.Image,
	})
}

// AdminDeleteContent removes the legacy record for :slug.
func (a *API) AdminDeleteContent(c *gin.Context) {
	if err := a.content.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
