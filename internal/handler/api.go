package handler

import (
	"context"

	"github.com/regionportal/cms/internal/media"
	"github.com/regionportal/cms/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db       *gorm.DB
	pages    *service.PageService
	sections *service.SectionService
	catalog  *service.CatalogService
	content  *service.ContentService
	contact  *service.ContactService
	media    *media.Library
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, library *media.Library, contact *service.ContactService) *API {
	return &API{
		db:       db,
		pages:    service.NewPageService(db),
		sections: service.NewSectionService(db),
		catalog:  service.NewCatalogService(db),
		content:  service.NewContentService(db),
		contact:  contact,
		media:    library,
	}
}

// DB exposes the underlying gorm instance for health checks.
func (a *API) DB() *gorm.DB {
	return a.db
}

// mediaURL resolves a stored reference to a public URL, or nil when unset.
func (a *API) mediaURL(ctx context.Context, ref string) *string {
	if a.media == nil || ref == "" {
		return nil
	}
	return a.media.URL(ctx, ref)
}
