package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/db"
	"github.com/regionportal/cms/internal/service"
)

type catalogItemPayload struct {
	Slug               string `json:"slug"`
	TitleUK            string `json:"title_uk"`
	TitleEN            string `json:"title_en"`
	ShortDescriptionUK string `json:"short_description_uk"`
	ShortDescriptionEN string `json:"short_description_en"`
	ContentUK          string `json:"content_uk"`
	ContentEN          string `json:"content_en"`
	Format             string `json:"format"`
	CoverImage         string `json:"cover_image"`
	PDFFile            string `json:"pdf_file"`
	IsActive           *bool  `json:"is_active"`
}

func (p catalogItemPayload) toInput(current *db.CatalogItem) service.CatalogItemInput {
	isActive := true
	if current != nil {
		isActive = current.IsActive
	}
	if p.IsActive != nil {
		isActive = *p.IsActive
	}
	return service.CatalogItemInput{
		Slug:               p.Slug,
		TitleUK:            p.TitleUK,
		TitleEN:            p.TitleEN,
		ShortDescriptionUK: p.ShortDescriptionUK,
		ShortDescriptionEN: p.ShortDescriptionEN,
		ContentUK:          p.ContentUK,
		ContentEN:          p.ContentEN,
		Format:             p.Format,
		CoverImage:         p.CoverImage,
		PDFFile:            p.PDFFile,
		IsActive:           isActive,
	}
}

type galleryImagePayload struct {
	Image     string `json:"image"`
	CaptionUK string `json:"caption_uk"`
	CaptionEN string `json:"caption_en"`
	Order     int    `json:"order"`
}

func (p galleryImagePayload) toInput() service.GalleryImageInput {
	return service.GalleryImageInput{
		Image:     p.Image,
		CaptionUK: p.CaptionUK,
		CaptionEN: p.CaptionEN,
		Order:     p.Order,
	}
}

type adminCatalogView struct {
	catalogDetail
	CoverImage string             `json:"cover_image"`
	PDFFile    string             `json:"pdf_file"`
	UpdatedAt  time.Time          `json:"updated_at"`
	Gallery    []adminGalleryView `json:"gallery"`
}

type adminGalleryView struct {
	galleryView
	ItemID uint   `json:"item_id"`
	Image  string `json:"image"`
}

func (a *API) projectAdminCatalogItem(ctx context.Context, item *db.CatalogItem) adminCatalogView {
	view := adminCatalogView{
		catalogDetail: a.projectCatalogDetail(ctx, item),
		CoverImage:    item.CoverImage,
		PDFFile:       item.PDFFile,
		UpdatedAt:     item.UpdatedAt,
		Gallery:       make([]adminGalleryView, 0, len(item.Gallery)),
	}
	view.catalogDetail.Gallery = nil
	for _, image := range item.Gallery {
		view.Gallery = append(view.Gallery, a.projectAdminGalleryImage(ctx, image))
	}
	return view
}

func (a *API) projectAdminGalleryImage(ctx context.Context, image db.CatalogGalleryImage) adminGalleryView {
	return adminGalleryView{
		galleryView: a.projectGalleryImage(ctx, image),
		ItemID:      image.ItemID,
		Image:       image.Image,
	}
}

// AdminListCatalogItems returns every catalog item, including inactive ones.
func (a *API) AdminListCatalogItems(c *gin.Context) {
	opts := listOptions(c)
	result, err := a.catalog.ListAll(c.Request.Context(), opts)
	if err != nil {
		a.serverError(c, "failed to list catalog items", err)
		return
	}

	type row struct {
		catalogSummary
		IsActive bool `json:"is_active"`
	}
	payload := make([]row, 0, len(result.Items))
	for _, item := range result.Items {
		payload = append(payload, row{
			catalogSummary: a.projectCatalogSummary(c.Request.Context(), item),
			IsActive:       item.IsActive,
		})
	}

	setTotalHeaders(c, opts, result.Total, result.TotalPages)
	c.JSON(http.StatusOK, payload)
}

// AdminGetCatalogItem returns one catalog item with raw references.
func (a *API) AdminGetCatalogItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	item, err := a.catalog.Get(c.Request.Context(), id)
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.projectAdminCatalogItem(c.Request.Context(), item))
}

// AdminCreateCatalogItem creates a catalog item.
func (a *API) AdminCreateCatalogItem(c *gin.Context) {
	var payload catalogItemPayload
	if !bindJSON(c, &payload) {
		return
	}
	item, err := a.catalog.Create(c.Request.Context(), payload.toInput(nil))
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a.projectAdminCatalogItem(c.Request.Context(), item))
}

// AdminUpdateCatalogItem replaces the fields of a catalog item.
func (a *API) AdminUpdateCatalogItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload catalogItemPayload
	if !bindJSON(c, &payload) {
		return
	}

	ctx := c.Request.Context()
	current, err := a.catalog.Get(ctx, id)
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	if _, err := a.catalog.Update(ctx, id, payload.toInput(current)); err != nil {
		a.respondAdminError(c, err)
		return
	}

	item, err := a.catalog.Get(ctx, id)
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.projectAdminCatalogItem(ctx, item))
}

// AdminDeleteCatalogItem deletes a catalog item with its gallery.
func (a *API) AdminDeleteCatalogItem(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.catalog.Delete(c.Request.Context(), id); err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminAddGalleryImage appends an image to a catalog item's gallery.
func (a *API) AdminAddGalleryImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload galleryImagePayload
	if !bindJSON(c, &payload) {
		return
	}
	image, err := a.catalog.AddGalleryImage(c.Request.Context(), id, payload.toInput())
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a.projectAdminGalleryImage(c.Request.Context(), *image))
}

// AdminUpdateGalleryImage replaces the fields of a gallery image.
func (a *API) AdminUpdateGalleryImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var payload galleryImagePayload
	if !bindJSON(c, &payload) {
		return
	}
	image, err := a.catalog.UpdateGalleryImage(c.Request.Context(), id, payload.toInput())
	if err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.JSON(http.StatusOK, a.projectAdminGalleryImage(c.Request.Context(), *image))
}

// AdminDeleteGalleryImage removes a gallery image.
func (a *API) AdminDeleteGalleryImage(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := a.catalog.DeleteGalleryImage(c.Request.Context(), id); err != nil {
		a.respondAdminError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
