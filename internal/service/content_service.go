package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/regionportal/cms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrContentNotFound       = errors.New("page content not found")
	ErrContentSectionInvalid = errors.New("content section is invalid")
)

// ContentService manages the flat legacy page records.
type ContentService struct {
	db *gorm.DB
}

// ContentListResult aggregates a legacy content listing.
type ContentListResult struct {
	Items      []db.PageContent
	Total      int64
	TotalPages int
}

// ContentInput represents the editable fields of a legacy page.
type ContentInput struct {
	TitleUK   string
	TitleEN   string
	ContentUK string
	ContentEN string
	Format    string
	Image     string
	Section   string
	ChartData json.RawMessage
}

// NewContentService creates a ContentService instance.
func NewContentService(gdb *gorm.DB) *ContentService {
	return &ContentService{db: gdb}
}

// List returns legacy records ordered by slug. A non-empty section keeps only
// records tagged with it; an unknown tag matches nothing.
func (s *ContentService) List(ctx context.Context, section string, opts ListOptions) (ContentListResult, error) {
	var result ContentListResult

	query := s.db.WithContext(ctx).Model(&db.PageContent{})
	if trimmed := strings.TrimSpace(section); trimmed != "" {
		query = query.Where("section = ?", trimmed)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	opts = opts.normalized()
	result.TotalPages = 1
	if opts.Paginated() {
		result.TotalPages = calculateTotalPages(result.Total, opts.PageSize)
	}

	if err := opts.apply(query).Order("slug ASC").Find(&result.Items).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetBySlug fetches one legacy record.
func (s *ContentService) GetBySlug(ctx context.Context, slug string) (*db.PageContent, error) {
	var content db.PageContent
	if err := s.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(slug)).First(&content).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContentNotFound
		}
		return nil, err
	}
	return &content, nil
}

// Save creates or updates the record for slug. Well-known slugs get their
// section from the slug prefix and fall back to the registry titles.
func (s *ContentService) Save(ctx context.Context, slug string, input ContentInput) (*db.PageContent, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if !IsValidSlug(slug, pageSlugMaxLen) {
		return nil, ErrSlugInvalid
	}

	titleUK := strings.TrimSpace(input.TitleUK)
	titleEN := strings.TrimSpace(input.TitleEN)
	section := strings.ToLower(strings.TrimSpace(input.Section))

	if fixed, ok := db.LookupFixedContentPage(slug); ok {
		section = db.SectionForFixedSlug(slug)
		if titleUK == "" {
			titleUK = fixed.TitleUK
		}
		if titleEN == "" {
			titleEN = fixed.TitleEN
		}
	}
	if section == "" {
		section = db.ContentSectionGeneral
	}
	if !containsString(db.ContentSections, section) {
		return nil, ErrContentSectionInvalid
	}
	if titleUK == "" {
		return nil, ErrTitleMissing
	}

	contentUK, err := RenderRichText(input.ContentUK, input.Format)
	if err != nil {
		return nil, err
	}
	contentEN, err := RenderRichText(input.ContentEN, input.Format)
	if err != nil {
		return nil, err
	}
	chart, err := normalizeChartData(input.ChartData)
	if err != nil {
		return nil, err
	}

	var content db.PageContent
	err = s.db.WithContext(ctx).Where("slug = ?", slug).First(&content).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	content.Slug = slug
	content.TitleUK = titleUK
	content.TitleEN = titleEN
	content.ContentUK = contentUK
	content.ContentEN = contentEN
	content.Image = strings.TrimSpace(input.Image)
	content.Section = section
	content.ChartData = chart

	if err := s.db.WithContext(ctx).Save(&content).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return &content, nil
}

// Delete removes the record for slug.
func (s *ContentService) Delete(ctx context.Context, slug string) error {
	res := s.db.WithContext(ctx).Where("slug = ?", strings.TrimSpace(slug)).Delete(&db.PageContent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrContentNotFound
	}
	return nil
}

// EnsureSingletons creates an empty record for each well-known slug that has
// none yet and returns how many were created. Existing records are untouched.
func (s *ContentService) EnsureSingletons(ctx context.Context) (int, error) {
	created := 0
	for _, fixed := range db.FixedContentPages {
		var count int64
		if err := s.db.WithContext(ctx).Model(&db.PageContent{}).Where("slug = ?", fixed.Slug).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			continue
		}

		content := db.PageContent{
			Slug:    fixed.Slug,
			TitleUK: fixed.TitleUK,
			TitleEN: fixed.TitleEN,
			Section: db.SectionForFixedSlug(fixed.Slug),
		}
		if err := s.db.WithContext(ctx).Create(&content).Error; err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}
