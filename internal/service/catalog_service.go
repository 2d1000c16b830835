package service

import (
	"context"
	"errors"
	"strings"

	"github.com/regionportal/cms/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCatalogItemNotFound  = errors.New("catalog item not found")
	ErrGalleryImageNotFound = errors.New("gallery image not found")
	ErrGalleryImageMissing  = errors.New("gallery image is required")
)

const catalogSlugMaxLen = 255

// CatalogService manages catalog items and their galleries.
type CatalogService struct {
	db *gorm.DB
}

// CatalogListResult aggregates a catalog listing.
type CatalogListResult struct {
	Items      []db.CatalogItem
	Total      int64
	TotalPages int
}

// CatalogItemInput represents the editable fields of a catalog item.
type CatalogItemInput struct {
	Slug               string
	TitleUK            string
	TitleEN            string
	ShortDescriptionUK string
	ShortDescriptionEN string
	ContentUK          string
	ContentEN          string
	Format             string
	CoverImage         string
	PDFFile            string
	IsActive           bool
}

// GalleryImageInput represents the editable fields of a gallery image.
type GalleryImageInput struct {
	Image     string
	CaptionUK string
	CaptionEN string
	Order     int
}

// NewCatalogService creates a CatalogService instance.
func NewCatalogService(gdb *gorm.DB) *CatalogService {
	return &CatalogService{db: gdb}
}

// ListActive returns active catalog items ordered by id.
func (s *CatalogService) ListActive(ctx context.Context, opts ListOptions) (CatalogListResult, error) {
	return s.list(ctx, true, opts)
}

// ListAll returns every catalog item ordered by id.
func (s *CatalogService) ListAll(ctx context.Context, opts ListOptions) (CatalogListResult, error) {
	return s.list(ctx, false, opts)
}

func (s *CatalogService) list(ctx context.Context, activeOnly bool, opts ListOptions) (CatalogListResult, error) {
	var result CatalogListResult

	query := s.db.WithContext(ctx).Model(&db.CatalogItem{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&result.Total).Error; err != nil {
		return result, err
	}

	opts = opts.normalized()
	result.TotalPages = 1
	if opts.Paginated() {
		result.TotalPages = calculateTotalPages(result.Total, opts.PageSize)
	}

	if err := opts.apply(query).Order("id ASC").Find(&result.Items).Error; err != nil {
		return result, err
	}
	return result, nil
}

// GetActiveBySlug fetches an active item with its ordered gallery. Missing and
// inactive items both yield ErrCatalogItemNotFound.
func (s *CatalogService) GetActiveBySlug(ctx context.Context, slug string) (*db.CatalogItem, error) {
	var item db.CatalogItem
	err := s.db.WithContext(ctx).
		Preload("Gallery", orderedChildren).
		Where("slug = ? AND is_active = ?", strings.TrimSpace(slug), true).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Get fetches any item by id with its gallery.
func (s *CatalogService) Get(ctx context.Context, id uint) (*db.CatalogItem, error) {
	var item db.CatalogItem
	if err := s.db.WithContext(ctx).Preload("Gallery", orderedChildren).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Create inserts a catalog item.
func (s *CatalogService) Create(ctx context.Context, input CatalogItemInput) (*db.CatalogItem, error) {
	item := db.CatalogItem{}
	if err := s.apply(ctx, &item, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return &item, nil
}

// Update overwrites the editable fields of a catalog item.
func (s *CatalogService) Update(ctx context.Context, id uint, input CatalogItemInput) (*db.CatalogItem, error) {
	var item db.CatalogItem
	if err := s.db.WithContext(ctx).First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, err
	}

	if err := s.apply(ctx, &item, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return &item, nil
}

func (s *CatalogService) apply(ctx context.Context, item *db.CatalogItem, input CatalogItemInput) error {
	titleUK := strings.TrimSpace(input.TitleUK)
	titleEN := strings.TrimSpace(input.TitleEN)
	if titleUK == "" {
		return ErrTitleMissing
	}

	slug, err := resolveSlug(input.Slug, titleEN, titleUK, catalogSlugMaxLen)
	if err != nil {
		return err
	}
	if err := ensureSlugAvailable(s.db.WithContext(ctx), &db.CatalogItem{}, slug, item.ID); err != nil {
		return err
	}

	contentUK, err := RenderRichText(input.ContentUK, input.Format)
	if err != nil {
		return err
	}
	contentEN, err := RenderRichText(input.ContentEN, input.Format)
	if err != nil {
		return err
	}

	item.Slug = slug
	item.TitleUK = titleUK
	item.TitleEN = titleEN
	item.ShortDescriptionUK = strings.TrimSpace(input.ShortDescriptionUK)
	item.ShortDescriptionEN = strings.TrimSpace(input.ShortDescriptionEN)
	item.ContentUK = contentUK
	item.ContentEN = contentEN
	item.CoverImage = strings.TrimSpace(input.CoverImage)
	item.PDFFile = strings.TrimSpace(input.PDFFile)
	item.IsActive = input.IsActive
	return nil
}

// Delete removes a catalog item and its gallery.
func (s *CatalogService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item db.CatalogItem
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCatalogItemNotFound
			}
			return err
		}

		if err := tx.Where("item_id = ?", item.ID).Delete(&db.CatalogGalleryImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
}

// AddGalleryImage appends an image to an item's gallery.
func (s *CatalogService) AddGalleryImage(ctx context.Context, itemID uint, input GalleryImageInput) (*db.CatalogGalleryImage, error) {
	var item db.CatalogItem
	if err := s.db.WithContext(ctx).Select("id").First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCatalogItemNotFound
		}
		return nil, err
	}

	image := db.CatalogGalleryImage{ItemID: item.ID}
	if err := applyGalleryImageInput(&image, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// UpdateGalleryImage overwrites a gallery image.
func (s *CatalogService) UpdateGalleryImage(ctx context.Context, id uint, input GalleryImageInput) (*db.CatalogGalleryImage, error) {
	var image db.CatalogGalleryImage
	if err := s.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGalleryImageNotFound
		}
		return nil, err
	}

	if err := applyGalleryImageInput(&image, input); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

// DeleteGalleryImage removes a gallery image.
func (s *CatalogService) DeleteGalleryImage(ctx context.Context, id uint) error {
	var image db.CatalogGalleryImage
	if err := s.db.WithContext(ctx).First(&image, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryImageNotFound
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&image).Error
}

func applyGalleryImageInput(image *db.CatalogGalleryImage, input GalleryImageInput) error {
	ref := strings.TrimSpace(input.Image)
	if ref == "" {
		return ErrGalleryImageMissing
	}
	if input.Order < 0 {
		return ErrOrderNegative
	}

	image.Image = ref
	image.CaptionUK = strings.TrimSpace(input.CaptionUK)
	image.CaptionEN = strings.TrimSpace(input.CaptionEN)
	image.SortOrder = input.Order
	return nil
}
