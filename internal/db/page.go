package db

import (
	"time"

	"gorm.io/datatypes"
)

// Menu categories a Page can be grouped under in the site navigation.
const (
	MenuCategoryNone       = "none"
	MenuCategoryAbout      = "about"
	MenuCategoryEconomy    = "economy"
	MenuCategoryInvestment = "investment"
)

// MenuCategories lists every accepted menu category.
var MenuCategories = []string{
	MenuCategoryNone,
	MenuCategoryAbout,
	MenuCategoryEconomy,
	MenuCategoryInvestment,
}

// SectionType tags which optional fields of a PageSection the client renders.
type SectionType string

const (
	SectionTypeHero    SectionType = "hero"
	SectionTypeText    SectionType = "text"
	SectionTypeImage   SectionType = "image"
	SectionTypeVideo   SectionType = "video"
	SectionTypeGallery SectionType = "gallery"
	SectionTypeChart   SectionType = "chart"
	SectionTypeStats   SectionType = "stats"
	SectionTypeEmbed   SectionType = "embed"
	SectionTypeCustom  SectionType = "custom"
)

// SectionTypes lists the closed set of section types.
var SectionTypes = []SectionType{
	SectionTypeHero,
	SectionTypeText,
	SectionTypeImage,
	SectionTypeVideo,
	SectionTypeGallery,
	SectionTypeChart,
	SectionTypeStats,
	SectionTypeEmbed,
	SectionTypeCustom,
}

// Valid reports whether t is one of SectionTypes.
func (t SectionType) Valid() bool {
	for _, known := range SectionTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Page is a dynamic page assembled from ordered sections.
// Rows are hard-deleted so a slug can be reused after removal.
type Page struct {
	ID            uint   `gorm:"primaryKey"`
	Slug          string `gorm:"size:100;uniqueIndex;not null"`
	TitleUK       string `gorm:"column:title_uk;size:200;not null"`
	TitleEN       string `gorm:"column:title_en;size:200;not null"`
	DescriptionUK string `gorm:"column:description_uk;type:text"`
	DescriptionEN string `gorm:"column:description_en;type:text"`
	IsActive      bool   `gorm:"not null;index"`
	ShowInMenu    bool   `gorm:"not null"`
	MenuCategory  string `gorm:"size:20;not null;default:none"`
	SortOrder     int    `gorm:"not null;default:0;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Sections      []PageSection `gorm:"constraint:OnDelete:CASCADE"`
}

// PageSection is one typed content block of a Page.
type PageSection struct {
	ID          uint        `gorm:"primaryKey"`
	PageID      uint        `gorm:"not null;index"`
	SectionType SectionType `gorm:"size:20;not null;default:text"`
	TitleUK     string      `gorm:"column:title_uk;size:200"`
	TitleEN     string      `gorm:"column:title_en;size:200"`
	ContentUK   string      `gorm:"column:content_uk;type:text"`
	ContentEN   string      `gorm:"column:content_en;type:text"`
	Image       string      `gorm:"size:500"`
	Video       string      `gorm:"size:500"`
	EmbedCode   string      `gorm:"type:text"`
	ChartData   datatypes.JSON
	SortOrder   int `gorm:"not null;default:0;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []SectionItem `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

// SectionItem is a repeated sub-record of a section, such as a card or a document.
type SectionItem struct {
	ID            uint   `gorm:"primaryKey"`
	SectionID     uint   `gorm:"not null;index"`
	TitleUK       string `gorm:"column:title_uk;size:200"`
	TitleEN       string `gorm:"column:title_en;size:200"`
	DescriptionUK string `gorm:"column:description_uk;type:text"`
	DescriptionEN string `gorm:"column:description_en;type:text"`
	Image         string `gorm:"size:500"`
	File          string `gorm:"size:500"`
	SortOrder     int    `gorm:"not null;default:0;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
