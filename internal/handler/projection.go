package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/regionportal/cms/internal/db"
	"gorm.io/datatypes"
)

type pageSummary struct {
	ID            uint   `json:"id"`
	Slug          string `json:"slug"`
	TitleUK       string `json:"title_uk"`
	TitleEN       string `json:"title_en"`
	DescriptionUK string `json:"description_uk"`
	DescriptionEN string `json:"description_en"`
	ShowInMenu    bool   `json:"show_in_menu"`
	MenuCategory  string `json:"menu_category"`
	Order         int    `json:"order"`
	SectionCount  int64  `json:"section_count"`
}

type pageDetail struct {
	ID            uint          `json:"id"`
	Slug          string        `json:"slug"`
	TitleUK       string        `json:"title_uk"`
	TitleEN       string        `json:"title_en"`
	DescriptionUK string        `json:"description_uk"`
	DescriptionEN string        `json:"description_en"`
	ShowInMenu    bool          `json:"show_in_menu"`
	MenuCategory  string        `json:"menu_category"`
	Order         int           `json:"order"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
	Sections      []sectionView `json:"sections"`
}

type sectionView struct {
	ID          uint            `json:"id"`
	SectionType string          `json:"section_type"`
	TitleUK     string          `json:"title_uk"`
	TitleEN     string          `json:"title_en"`
	ContentUK   string          `json:"content_uk"`
	ContentEN   string          `json:"content_en"`
	ImageURL    *string         `json:"image_url"`
	VideoURL    *string         `json:"video_url"`
	EmbedCode   string          `json:"embed_code"`
	ChartData   json.RawMessage `json:"chart_data"`
	Order       int             `json:"order"`
	Items       []itemView      `json:"items"`
}

type itemView struct {
	ID            uint    `json:"id"`
	TitleUK       string  `json:"title_uk"`
	TitleEN       string  `json:"title_en"`
	DescriptionUK string  `json:"description_uk"`
	DescriptionEN string  `json:"description_en"`
	ImageURL      *string `json:"image_url"`
	FileURL       *string `json:"file_url"`
	Order         int     `json:"order"`
}

type catalogSummary struct {
	ID                 uint    `json:"id"`
	Slug               string  `json:"slug"`
	TitleUK            string  `json:"title_uk"`
	TitleEN            string  `json:"title_en"`
	ShortDescriptionUK string  `json:"short_description_uk"`
	ShortDescriptionEN string  `json:"short_description_en"`
	CoverImageURL      *string `json:"cover_image_url"`
}

type catalogDetail struct {
	catalogSummary
	ContentUK string        `json:"content_uk"`
	ContentEN string        `json:"content_en"`
	PDFURL    *string       `json:"pdf_url"`
	Gallery   []galleryView `json:"gallery"`
	IsActive  bool          `json:"is_active"`
	CreatedAt time.Time     `json:"created_at"`
}

type galleryView struct {
	ID        uint    `json:"id"`
	Order     int     `json:"order"`
	CaptionUK string  `json:"caption_uk"`
	CaptionEN string  `json:"caption_en"`
	ImageURL  *string `json:"image_url"`
}

type contentView struct {
	ID        uint            `json:"id"`
	Slug      string          `json:"slug"`
	TitleUK   string          `json:"title_uk"`
	TitleEN   string          `json:"title_en"`
	ContentUK string          `json:"content_uk"`
	ContentEN string          `json:"content_en"`
	ImageURL  *string         `json:"image_url"`
	Section   string          `json:"section"`
	ChartData json.RawMessage `json:"chart_data"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// chartJSON returns nil for an empty column so it serializes as null.
func chartJSON(data datatypes.JSON) json.RawMessage {
	if len(data) == 0 {
		return nil
	}
	return json.RawMessage(data)
}

func (a *API) projectPageSummary(page db.Page, sectionCount int64) pageSummary {
	return pageSummary{
		ID:            page.ID,
		Slug:          page.Slug,
		TitleUK:       page.TitleUK,
		TitleEN:       page.TitleEN,
		DescriptionUK: page.DescriptionUK,
		DescriptionEN: page.DescriptionEN,
		ShowInMenu:    page.ShowInMenu,
		MenuCategory:  page.MenuCategory,
		Order:         page.SortOrder,
		SectionCount:  sectionCount,
	}
}

func (a *API) projectPageDetail(ctx context.Context, page *db.Page) pageDetail {
	detail := pageDetail{
		ID:            page.ID,
		Slug:          page.Slug,
		TitleUK:       page.TitleUK,
		TitleEN:       page.TitleEN,
		DescriptionUK: page.DescriptionUK,
		DescriptionEN: page.DescriptionEN,
		ShowInMenu:    page.ShowInMenu,
		MenuCategory:  page.MenuCategory,
		Order:         page.SortOrder,
		CreatedAt:     page.CreatedAt,
		UpdatedAt:     page.UpdatedAt,
		Sections:      make([]sectionView, 0, len(page.Sections)),
	}
	for _, section := range page.Sections {
		detail.Sections = append(detail.Sections, a.projectSection(ctx, section))
	}
	return detail
}

// projectSection is the single place that maps a section's type-dependent
// fields onto the wire.
func (a *API) projectSection(ctx context.Context, section db.PageSection) sectionView {
	view := sectionView{
		ID:          section.ID,
		SectionType: string(section.SectionType),
		TitleUK:     section.TitleUK,
		TitleEN:     section.TitleEN,
		ContentUK:   section.ContentUK,
		ContentEN:   section.ContentEN,
		ImageURL:    a.mediaURL(ctx, section.Image),
		VideoURL:    a.mediaURL(ctx, section.Video),
		EmbedCode:   section.EmbedCode,
		ChartData:   chartJSON(section.ChartData),
		Order:       section.SortOrder,
		Items:       make([]itemView, 0, len(section.Items)),
	}
	for _, item := range section.Items {
		view.Items = append(view.Items, a.projectItem(ctx, item))
	}
	return view
}

func (a *API) projectItem(ctx context.Context, item db.SectionItem) itemView {
	return itemView{
		ID:            item.ID,
		TitleUK:       item.TitleUK,
		TitleEN:       item.TitleEN,
		DescriptionUK: item.DescriptionUK,
		DescriptionEN: item.DescriptionEN,
		ImageURL:      a.mediaURL(ctx, item.Image),
		FileURL:       a.mediaURL(ctx, item.File),
		Order:         item.SortOrder,
	}
}

func (a *API) projectCatalogSummary(ctx context.Context, item db.CatalogItem) catalogSummary {
	return catalogSummary{
		ID:                 item.ID,
		Slug:               item.Slug,
		TitleUK:            item.TitleUK,
		TitleEN:            item.TitleEN,
		ShortDescriptionUK: item.ShortDescriptionUK,
		ShortDescriptionEN: item.ShortDescriptionEN,
		CoverImageURL:      a.mediaURL(ctx, item.CoverImage),
	}
}

func (a *API) projectCatalogDetail(ctx context.Context, item *db.CatalogItem) catalogDetail {
	detail := catalogDetail{
		catalogSummary: a.projectCatalogSummary(ctx, *item),
		ContentUK:      item.ContentUK,
		ContentEN:      item.ContentEN,
		PDFURL:         a.mediaURL(ctx, item.PDFFile),
		Gallery:        make([]galleryView, 0, len(item.Gallery)),
		IsActive:       item.IsActive,
		CreatedAt:      item.CreatedAt,
	}
	for _, image := range item.Gallery {
		detail.Gallery = append(detail.Gallery, a.projectGalleryImage(ctx, image))
	}
	return detail
}

func (a *API) projectGalleryImage(ctx context.Context, image db.CatalogGalleryImage) galleryView {
	return galleryView{
		ID:        image.ID,
		Order:     image.SortOrder,
		CaptionUK: image.CaptionUK,
		CaptionEN: image.CaptionEN,
		ImageURL:  a.mediaURL(ctx, image.Image),
	}
}

func (a *API) projectContent(ctx context.Context, content db.PageContent) contentView {
	return contentView{
		ID:        content.ID,
		Slug:      content.Slug,
		TitleUK:   content.TitleUK,
		TitleEN:   content.TitleEN,
		ContentUK: content.ContentUK,
		ContentEN: content.ContentEN,
		ImageURL:  a.mediaURL(ctx, content.Image),
		Section:   content.Section,
		ChartData: chartJSON(content.ChartData),
		CreatedAt: content.CreatedAt,
		UpdatedAt: content.UpdatedAt,
	}
}
