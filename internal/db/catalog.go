package db

import "time"

// CatalogItem is an investment catalog entry with an optional cover, PDF and gallery.
type CatalogItem struct {
	ID                 uint   `gorm:"primaryKey"`
	Slug               string `gorm:"size:255;uniqueIndex;not null"`
	TitleUK            string `gorm:"column:title_uk;size:255;not null"`
	TitleEN            string `gorm:"column:title_en;size:255"`
	ShortDescriptionUK string `gorm:"column:short_description_uk;type:text"`
	ShortDescriptionEN string `gorm:"column:short_description_en;type:text"`
	ContentUK          string `gorm:"column:content_uk;type:text"`
	ContentEN          string `gorm:"column:content_en;type:text"`
	CoverImage         string `gorm:"size:500"`
	PDFFile            string `gorm:"column:pdf_file;size:500"`
	IsActive           bool   `gorm:"not null;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	Gallery            []CatalogGalleryImage `gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// CatalogGalleryImage is one ordered image of a catalog item's gallery.
type CatalogGalleryImage struct {
	ID        uint   `gorm:"primaryKey"`
	ItemID    uint   `gorm:"not null;index"`
	Image     string `gorm:"size:500;not null"`
	CaptionUK string `gorm:"column:caption_uk;size:255"`
	CaptionEN string `gorm:"column:caption_en;size:255"`
	SortOrder int    `gorm:"not null;default:0;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
