package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/regionportal/cms/internal/db"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrSectionNotFound      = errors.New("section not found")
	ErrSectionItemNotFound  = errors.New("section item not found")
	ErrSectionTypeInvalid   = errors.New("section type is invalid")
	ErrSectionFieldRequired = errors.New("section type requires field")
	ErrChartDataInvalid     = errors.New("chart data must be a JSON object")
)

// SectionService manages the sections of a page and their items.
type SectionService struct {
	db *gorm.DB
}

// SectionInput represents the editable fields of a section.
type SectionInput struct {
	SectionType string
	TitleUK     string
	TitleEN     string
	ContentUK   string
	ContentEN   string
	Format      string
	Image       string
	Video       string
	EmbedCode   string
	ChartData   json.RawMessage
	Order       int
}

// SectionItemInput represents the editable fields of a section item.
type SectionItemInput struct {
	TitleUK       string
	TitleEN       string
	DescriptionUK string
	DescriptionEN string
	Format        string
	Image         string
	File          string
	Order         int
}

// NewSectionService creates a SectionService instance.
func NewSectionService(gdb *gorm.DB) *SectionService {
	return &SectionService{db: gdb}
}

// Get fetches a section with its ordered items.
func (s *SectionService) Get(ctx context.Context, id uint) (*db.PageSection, error) {
	var section db.PageSection
	if err := s.db.WithContext(ctx).Preload("Items", orderedChildren).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}
	return &section, nil
}

// Create appends a section to the page identified by pageID.
func (s *SectionService) Create(ctx context.Context, pageID uint, input SectionInput) (*db.PageSection, error) {
	var page db.Page
	if err := s.db.WithContext(ctx).Select("id").First(&page, pageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	section := db.PageSection{PageID: page.ID}
	if err := applySectionInput(&section, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// Update overwrites the editable fields of a section.
func (s *SectionService) Update(ctx context.Context, id uint, input SectionInput) (*db.PageSection, error) {
	var section db.PageSection
	if err := s.db.WithContext(ctx).First(&section, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	if err := applySectionInput(&section, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(&section).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// Delete removes a section and its items.
func (s *SectionService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var section db.PageSection
		if err := tx.First(&section, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSectionNotFound
			}
			return err
		}

		if err := tx.Where("section_id = ?", section.ID).Delete(&db.SectionItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&section).Error
	})
}

// CreateItem appends an item to the section identified by sectionID.
func (s *SectionService) CreateItem(ctx context.Context, sectionID uint, input SectionItemInput) (*db.SectionItem, error) {
	var section db.PageSection
	if err := s.db.WithContext(ctx).Select("id").First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionNotFound
		}
		return nil, err
	}

	item := db.SectionItem{SectionID: section.ID}
	if err := applySectionItemInput(&item, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem overwrites the editable fields of a section item.
func (s *SectionService) UpdateItem(ctx context.Context, id uint, input SectionItemInput) (*db.SectionItem, error) {
	var item db.SectionItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSectionItemNotFound
		}
		return nil, err
	}

	if err := applySectionItemInput(&item, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes a section item.
func (s *SectionService) DeleteItem(ctx context.Context, id uint) error {
	var item db.SectionItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrSectionItemNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&item).Error
}

func applySectionInput(section *db.PageSection, input SectionInput) error {
	sectionType := db.SectionType(strings.ToLower(strings.TrimSpace(input.SectionType)))
	if sectionType == "" {
		sectionType = db.SectionTypeText
	}
	if !sectionType.Valid() {
		return ErrSectionTypeInvalid
	}
	if input.Order < 0 {
		return ErrOrderNegative
	}

	contentUK, err := RenderRichText(input.ContentUK, input.Format)
	if err != nil {
		return err
	}
	contentEN, err := RenderRichText(input.ContentEN, input.Format)
	if err != nil {
		return err
	}

	chart, err := normalizeChartData(input.ChartData)
	if err != nil {
		return err
	}

	next := db.PageSection{
		SectionType: sectionType,
		TitleUK:     strings.TrimSpace(input.TitleUK),
		TitleEN:     strings.TrimSpace(input.TitleEN),
		ContentUK:   contentUK,
		ContentEN:   contentEN,
		Image:       strings.TrimSpace(input.Image),
		Video:       strings.TrimSpace(input.Video),
		EmbedCode:   SanitizeEmbed(input.EmbedCode),
		ChartData:   chart,
	}
	if err := validateSectionFields(next); err != nil {
		return err
	}

	section.SectionType = next.SectionType
	section.TitleUK = next.TitleUK
	section.TitleEN = next.TitleEN
	section.ContentUK = next.ContentUK
	section.ContentEN = next.ContentEN
	section.Image = next.Image
	section.Video = next.Video
	section.EmbedCode = next.EmbedCode
	section.ChartData = next.ChartData
	section.SortOrder = input.Order
	return nil
}

// validateSectionFields checks that the media a section type renders is present.
func validateSectionFields(section db.PageSection) error {
	missing := ""
	switch section.SectionType {
	case db.SectionTypeImage:
		if section.Image == "" {
			missing = "image"
		}
	case db.SectionTypeVideo:
		if section.Video == "" && section.EmbedCode == "" {
			missing = "video or embed_code"
		}
	case db.SectionTypeEmbed:
		if section.EmbedCode == "" {
			missing = "embed_code"
		}
	case db.SectionTypeChart:
		if len(section.ChartData) == 0 {
			missing = "chart_data"
		}
	}
	if missing != "" {
		return fmt.Errorf("%w: %s %s", ErrSectionFieldRequired, section.SectionType, missing)
	}
	return nil
}

// normalizeChartData accepts an empty value, null or a JSON object and returns
// it compacted for storage.
func normalizeChartData(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var object map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &object); err != nil || object == nil {
		return nil, ErrChartDataInvalid
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return nil, ErrChartDataInvalid
	}
	return datatypes.JSON(buf.Bytes()), nil
}

func applySectionItemInput(item *db.SectionItem, input SectionItemInput) error {
	if input.Order < 0 {
		return ErrOrderNegative
	}

	descriptionUK, err := RenderRichText(input.DescriptionUK, input.Format)
	if err != nil {
		return err
	}
	descriptionEN, err := RenderRichText(input.DescriptionEN, input.Format)
	if err != nil {
		return err
	}

	item.TitleUK = strings.TrimSpace(input.TitleUK)
	item.TitleEN = strings.TrimSpace(input.TitleEN)
	item.DescriptionUK = descriptionUK
	item.DescriptionEN = descriptionEN
	item.Image = strings.TrimSpace(input.Image)
	item.File = strings.TrimSpace(input.File)
	item.SortOrder = input.Order
	return nil
}
