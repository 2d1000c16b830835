package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/db"
	"github.com/regionportal/cms/internal/service"
)

type pagePayload struct {
	Slug          string `json:"slug"`
	TitleUK       string `json:"title_uk"`
	TitleEN       string `json:"title_en"`
	DescriptionUK string `json:"description_uk"`
	DescriptionEN string `json:"description_en"`
	IsActive      *bool  `json:"is_active"`
	ShowInMenu    *bool  `json:"show_in_menu"`
	MenuCategory  string `json:"menu_category"`
	Order         int    `json:"order"`
}

// toInput fills omitted flags from current, or true for new pages.
func (p pagePayload) toInput(current *db.Page) service.PageInput {
	isActive, showInMenu := true, true
	if current != nil {
		isActive, showInMenu = current.IsActive, current.ShowInMenu
	}
	if p.IsActive != nil {
		isActive = *p.IsActive
	}
	if p.ShowInMenu != nil {
		showInMenu = *p.ShowInMenu
	}
	return service.PageInput{
		Slug:          p.Slug,
		TitleUK:       p.TitleUK,
		TitleEN:       p.TitleEN,
		DescriptionUK: p.DescriptionUK,
		DescriptionEN: p.DescriptionEN,
		IsActive:      isActive,
		ShowInMenu:    showInMenu,
		MenuCategory:  p.MenuCategory,
		Order:         p.Order,
	}
}

type sectionPayload struct {
	SectionType string          `json:"section_type"`
	TitleUK     string          `json:"title_uk"`
	TitleEN     string          `json:"title_en"`
	ContentUK   string          `json:"content_uk"`
	ContentEN   string          `json:"content_en"`
	Format      string          `json:"format"`
	Image       string          `json:"image"`
	Video       string          `json:"video"`
	EmbedCode   string          `json:"embed_code"`
	ChartData   json.RawMessage `json:"chart_data"`
	Order       int             `json:"order"`
}

func (p sectionPayload) toInput() service.SectionInput {
	return service.SectionInput{
		SectionType: p.SectionType,
		TitleUK:     p.TitleUK,
		TitleEN:     p.TitleEN,
		ContentUK:   p.ContentUK,
		ContentEN:   p.ContentEN,
		Format:      p.Format,
		Image:       p.Image,
		Video:       p.Video,
		EmbedCode:   p.EmbedCode,
		ChartData:   p.ChartData,
		Order:       p.Order,
	}
}

type sectionItemPayload struct {
	TitleUK       string `json:"title_uk"`
	TitleEN       string `json:"title_en"`
	DescriptionUK string `json:"description_uk"`
	DescriptionEN string `json:"description_en"`
	Format        string `json:"format"`
	Image         string `json:"image"`
	File          string `json:"file"`
	Order         int    `json:"order"`
}

func (p sectionItemPayload) toInput() service.SectionItemInput {
	return service.SectionItemInput{
		TitleUK:       p.TitleUK,
		TitleEN:       p.TitleEN,
		DescriptionUK: p.DescriptionUK,
		DescriptionEN: p.DescriptionEN,
		Format:        p.Format,
		Image:         p.Image,
		File:          p.File,
		Order:         p.Order,
	}
}

type adminPageView struct {
	pageDetail
	IsActive bool               `json:"is_active"`
	Sections []adminSectionView `json:"sections"`
}

type adminSectionView struct {
	sectionView
	PageID uint            `json:"page_id"`
	Image  string          `json:"image"`
	Video  string          `json:"video"`
	Items  []adminItemView `json:"items"`
}

type adminItemView struct {
	itemView
	SectionID uint   `json:"section_id"`
	Image     string `json:"image"`
	File      string `json:"file"`
}

// projectAdminPage shadows the public sections with views carrying raw references.
func (a *API) projectAdminPage(ctx context.Context, page *db.Page) adminPageView {
	view := adminPageView{
		pageDetail: a.projectPageDetail(ctx, page),
		IsActive:   page.IsActive,
		Sections:   make([]adminSectionView, 0, len(page.Sections)),
	}
	view.pageDetail.Sections = nil
	for _, section := range page.Sections {
		view.Sections = append(view.Sections, a.projectAdminSection(ctx, section))
	}
	return view
}

func (a *API) projectAdminSection(ctx context.Context, section db.PageSection) adminSectionView {
	view := adminSectionView{
		sectionView: a.projectSection(ctx, section),
		PageID:      section.PageID,
		Image:       section.Image,
		Video:       section.Video,
		Items:       make([]adminItemView, 0, len(section.Items)),
	}
	for _, item := range section.Items {
		view.Items = append(view.Items, a.projectAdminItem(ctx, item))
	}
	return view
}

func (a *API) projectAdminItem(ctx context.Context, item db.SectionItem) adminItemView {
	return adminItemView{
		itemView:  a.projectItem(ctx, item),
		SectionID: item.SectionID,
		Image:     item.Image,
		File:      item.File,
	}
}

// AdminListPages returns every page, including inactive ones.
func (a *API) AdminListPages(c *gin.Context) {
	opts := listOptions(c)
	result, err := a.pages.List(c.Request.Context(), service.PageFilter{IncludeInactive: true, ListOptions: opts})
	if err != nil {
		a.serverError(c, "failed to list pages", err)
		return
	}

	type row struct {
		pageSummary
		IsActive bool `json:"is_active"`
	}
	payload := make([]row, 0, len(result.Items))
	for _, page := range result.Items {
		payload = append(payload, row{
			pageSummary: a.projectPageSummary(page, result.SectionCounts[page.ID]),
			IsActive:    page.IsActive,
		})
	}

	setTotalHeaders(c, opts, result.Total, result.TotalPages)
	c.JSON(http.StatusOK, payload)
}

// AdminGetPage returns one page with sections, items and raw references.
func (a *API) AdminGetPage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	page, err := a.pages.Get(c.Request.Context(), id)
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.projectAdminPage(c.Request.Context(), page))
}

// AdminCreatePage creates a page.
func (a *API) AdminCreatePage(c *gin.Context) {
	var payload pagePayload
	if !bindJSON(c, &payload) {
		return
	}
	page, err := a.pages.Create(c.Request.Context(), payload.toInput(nil))
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a.projectAdminPage(c.Request.Context(), page))
}

// AdminUpdatePage replaces the fields of a page.
func (a *API) AdminUpdatePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload pagePayload
	if !bindJSON(c, &payload) {
		return
	}

	ctx := c.Request.Context()
	current, err := a.pages.Get(ctx, id)
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	if _, err := a.pages.Update(ctx, id, payload.toInput(current)); err != nil {
		a.respondAdminError(c, err)
		return
	}

	page, err := a.pages.Get(ctx, id)
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.projectAdminPage(ctx, page))
}

// AdminDeletePage deletes a page with its sections and items.
func (a *API) AdminDeletePage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.pages.Delete(c.Request.Context(), id); err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminCreateSection appends a section to a page.
func (a *API) AdminCreateSection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload sectionPayload
	if !bindJSON(c, &payload) {
		return
	}
	section, err := a.sections.Create(c.Request.Context(), id, payload.toInput())
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a.projectAdminSection(c.Request.Context(), *section))
}

// AdminUpdateSection replaces the fields of a section.
func (a *API) AdminUpdateSection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload sectionPayload
	if !bindJSON(c, &payload) {
		return
	}

	ctx := c.Request.Context()
	if _, err := a.sections.Update(ctx, id, payload.toInput()); err != nil {
		a.respondAdminError(c, err)
		return
	}
	section, err := a.sections.Get(ctx, id)
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.projectAdminSection(ctx, *section))
}

// AdminDeleteSection deletes a section and its items.
func (a *API) AdminDeleteSection(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.sections.Delete(c.Request.Context(), id); err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminCreateSectionItem appends an item to a section.
func (a *API) AdminCreateSectionItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload sectionItemPayload
	if !bindJSON(c, &payload) {
		return
	}
	item, err := a.sections.CreateItem(c.Request.Context(), id, payload.toInput())
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a.projectAdminItem(c.Request.Context(), *item))
}

// AdminUpdateSectionItem replaces the fields of a section item.
func (a *API) AdminUpdateSectionItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload sectionItemPayload
	if !bindJSON(c, &payload) {
		return
	}
	item, err := a.sections.UpdateItem(c.Request.Context(), id, payload.toInput())
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.projectAdminItem(c.Request.Context(), *item))
}

// AdminDeleteSectionItem deletes a section item.
func (a *API) AdminDeleteSectionItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.sections.DeleteItem(c.Request.Context(), id); err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
