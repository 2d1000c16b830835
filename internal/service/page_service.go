package service

import (
	"context"
	"errors"
	"strings"

	"github.com/regionportal/cms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound        = errors.New("page not found")
	ErrMenuCategoryInvalid = errors.New("menu category is invalid")
	ErrOrderNegative       = errors.New("order must not be negative")
)

const pageSlugMaxLen = 100

// PageService manages builder pages.
type PageService struct {
	db *gorm.DB
}

// PageFilter narrows page listings.
type PageFilter struct {
	ShowInMenu      *bool
	IncludeInactive bool
	ListOptions
}

// PageListResult holds one listing with per-page section counts.
type PageListResult struct {
	Items         []db.Page
	SectionCounts map[uint]int64
	Total         int64
	TotalPages    int
}

// PageInput represents the editable fields of a page.
type PageInput struct {
	Slug          string
	TitleUK       string
	TitleEN       string
	DescriptionUK string
	DescriptionEN string
	IsActive      bool
	ShowInMenu    bool
	MenuCategory  string
	Order         int
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// orderedChildren sorts a child collection by explicit order, then identity.
func orderedChildren(tx *gorm.DB) *gorm.DB {
	return tx.Order("sort_order ASC").Order("id ASC")
}

// List returns pages ordered by order, Ukrainian title and id. Inactive pages
// are skipped unless the filter asks for them.
func (s *PageService) List(ctx context.Context, filter PageFilter) (PageListResult, error) {
	result := PageListResult{SectionCounts: map[uint]int64{}}

	query := s.db.WithContext(ctx).Model(&db.Page{})
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}
	if filter.ShowInMenu != nil {
		query = query.Where("show_in_menu = ?", *filter.ShowInMenu)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	opts := filter.ListOptions.normalized()
	result.TotalPages = 1
	if opts.Paginated() {
		result.TotalPages = calculateTotalPages(result.Total, opts.PageSize)
	}

	if err := opts.apply(query).
		Order("sort_order ASC").Order("title_uk ASC").Order("id ASC").
		Find(&result.Items).Error; err != nil {
		return result, err
	}

	if len(result.Items) == 0 {
		return result, nil
	}

	ids := make([]uint, 0, len(result.Items))
	for _, page := range result.Items {
		ids = append(ids, page.ID)
	}

	var rows []struct {
		PageID uint
		Total  int64
	}
	if err := s.db.WithContext(ctx).Model(&db.PageSection{}).
		Select("page_id, COUNT(*) AS total").
		Where("page_id IN ?", ids).
		Group("page_id").
		Scan(&rows).Error; err != nil {
		return result, err
	}
	for _, row := range rows {
		result.SectionCounts[row.PageID] = row.Total
	}

	return result, nil
}

// GetBySlug fetches an active page with its ordered sections and items.
// Missing and inactive pages both yield ErrPageNotFound.
func (s *PageService) GetBySlug(ctx context.Context, slug string) (*db.Page, error) {
	var page db.Page
	err := s.withChildren(ctx).
		Where("slug = ? AND is_active = ?", strings.TrimSpace(slug), true).
		First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Get fetches any page by id with its children, regardless of visibility.
func (s *PageService) Get(ctx context.Context, id uint) (*db.Page, error) {
	var page db.Page
	if err := s.withChildren(ctx).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

func (s *PageService) withChildren(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Sections", orderedChildren).
		Preload("Sections.Items", orderedChildren)
}

// Create inserts a page. A blank slug is generated from the titles.
func (s *PageService) Create(ctx context.Context, input PageInput) (*db.Page, error) {
	page := db.Page{}
	if err := s.apply(ctx, &page, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&page).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return &page, nil
}

// Update overwrites the editable fields of a page.
func (s *PageService) Update(ctx context.Context, id uint, input PageInput) (*db.Page, error) {
	var page db.Page
	if err := s.db.WithContext(ctx).First(&page, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}

	if err := s.apply(ctx, &page, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(&page).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return &page, nil
}

func (s *PageService) apply(ctx context.Context, page *db.Page, input PageInput) error {
	titleUK := strings.TrimSpace(input.TitleUK)
	titleEN := strings.TrimSpace(input.TitleEN)
	if titleUK == "" {
		return ErrTitleMissing
	}
	if input.Order < 0 {
		return ErrOrderNegative
	}

	category := strings.ToLower(strings.TrimSpace(input.MenuCategory))
	if category == "" {
		category = db.MenuCategoryNone
	}
	if !containsString(db.MenuCategories, category) {
		return ErrMenuCategoryInvalid
	}

	slug, err := resolveSlug(input.Slug, titleEN, titleUK, pageSlugMaxLen)
	if err != nil {
		return err
	}
	if err := ensureSlugAvailable(s.db.WithContext(ctx), &db.Page{}, slug, page.ID); err != nil {
		return err
	}

	page.Slug = slug
	page.TitleUK = titleUK
	page.TitleEN = titleEN
	page.DescriptionUK = strings.TrimSpace(input.DescriptionUK)
	page.DescriptionEN = strings.TrimSpace(input.DescriptionEN)
	page.IsActive = input.IsActive
	page.ShowInMenu = input.ShowInMenu
	page.MenuCategory = category
	page.SortOrder = input.Order
	return nil
}

// Delete removes a page together with its sections and their items.
func (s *PageService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var page db.Page
		if err := tx.First(&page, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPageNotFound
			}
			return err
		}

		sectionIDs := tx.Model(&db.PageSection{}).Select("id").Where("page_id = ?", page.ID)
		if err := tx.Where("section_id IN (?)", sectionIDs).Delete(&db.SectionItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("page_id = ?", page.ID).Delete(&db.PageSection{}).Error; err != nil {
			return err
		}
		return tx.Delete(&page).Error
	})
}

// ensureSlugAvailable fails with ErrSlugTaken when another row of model uses slug.
func ensureSlugAvailable(tx *gorm.DB, model any, slug string, excludeID uint) error {
	var count int64
	query := tx.Model(model).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrSlugTaken
	}
	return nil
}

// translateWriteError maps a unique constraint race onto ErrSlugTaken.
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrSlugTaken
	}
	return err
}

func containsString(values []string, target string) bool {
	for _, value := range values {
		if value == target {
			return true
		}
	}
	return false
}
