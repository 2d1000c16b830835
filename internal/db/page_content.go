package db

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Section tags of the flat legacy page records.
const (
	ContentSectionGeneral    = "general"
	ContentSectionAbout      = "about"
	ContentSectionEconomy    = "economy"
	ContentSectionInvestment = "investment"
)

// ContentSections lists every accepted legacy section tag.
var ContentSections = []string{
	ContentSectionGeneral,
	ContentSectionAbout,
	ContentSectionEconomy,
	ContentSectionInvestment,
}

// PageContent is the flat, pre-builder page record. It is still served to the
// frontend for the fixed about/economy/investment pages.
type PageContent struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"size:100;uniqueIndex;not null"`
	TitleUK   string `gorm:"column:title_uk;size:200;not null"`
	TitleEN   string `gorm:"column:title_en;size:200;not null"`
	ContentUK string `gorm:"column:content_uk;type:text"`
	ContentEN string `gorm:"column:content_en;type:text"`
	Image     string `gorm:"size:500"`
	Section   string `gorm:"size:20;not null;default:general;index"`
	ChartData datatypes.JSON
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the table name stable regardless of the struct name.
func (PageContent) TableName() string {
	return "page_contents"
}

// FixedContentPage describes one well-known legacy page slug.
type FixedContentPage struct {
	Slug    string
	TitleUK string
	TitleEN string
}

// FixedContentPages is the registry of singleton legacy pages the frontend
// links to. Each slug has at most one row.
var FixedContentPages = []FixedContentPage{
	{Slug: "about-summary", TitleUK: "Огляд", TitleEN: "Overview"},
	{Slug: "about-advantages", TitleUK: "Переваги", TitleEN: "Advantages"},
	{Slug: "about-infrastructure", TitleUK: "Інфраструктура", TitleEN: "Infrastructure"},
	{Slug: "about-tourism", TitleUK: "Туризм", TitleEN: "Tourism"},
	{Slug: "about-international", TitleUK: "Міжнародна співпраця", TitleEN: "International cooperation"},
	{Slug: "about-education", TitleUK: "Освіта", TitleEN: "Education"},
	{Slug: "economy-main", TitleUK: "Економіка", TitleEN: "Economy"},
	{Slug: "economy-industry", TitleUK: "Промисловість", TitleEN: "Industry"},
	{Slug: "economy-agriculture", TitleUK: "Сільське господарство", TitleEN: "Agriculture"},
	{Slug: "economy-minerals", TitleUK: "Корисні копалини", TitleEN: "Minerals"},
	{Slug: "economy-energy", TitleUK: "Енергетика", TitleEN: "Energy"},
	{Slug: "investment-opportunities", TitleUK: "Можливості", TitleEN: "Opportunities"},
	{Slug: "investment-catalog", TitleUK: "Каталог", TitleEN: "Catalog"},
	{Slug: "investment-tasting-halls", TitleUK: "Дегустаційні зали", TitleEN: "Tasting halls"},
	{Slug: "investment-projects", TitleUK: "Проєкти", TitleEN: "Projects"},
	{Slug: "investment-taxation", TitleUK: "Оподаткування", TitleEN: "Taxation"},
	{Slug: "investment-parks", TitleUK: "Індустріальні парки", TitleEN: "Industrial parks"},
	{Slug: "investment-relocated", TitleUK: "Релоковані підприємства", TitleEN: "Relocated businesses"},
	{Slug: "investment-it", TitleUK: "IT-сектор", TitleEN: "IT sector"},
}

// LookupFixedContentPage returns the registry entry for slug, if any.
func LookupFixedContentPage(slug string) (FixedContentPage, bool) {
	for _, page := range FixedContentPages {
		if page.Slug == slug {
			return page, true
		}
	}
	return FixedContentPage{}, false
}

// SectionForFixedSlug derives the section tag from a well-known slug prefix.
func SectionForFixedSlug(slug string) string {
	switch {
	case strings.HasPrefix(slug, "about-"):
		return ContentSectionAbout
	case strings.HasPrefix(slug, "economy-"):
		return ContentSectionEconomy
	case strings.HasPrefix(slug, "investment-"):
		return ContentSectionInvestment
	default:
		return ContentSectionGeneral
	}
}
