package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/regionportal/cms/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func mustCreatePage(t *testing.T, svc *PageService, input PageInput) *db.Page {
	t.Helper()
	page, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("failed to create page %q: %v", input.TitleEN, err)
	}
	return page
}

func TestPageListFiltersAndOrders(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPageService(gdb)
	ctx := context.Background()

	mustCreatePage(t, svc, PageInput{TitleUK: "Бета", TitleEN: "Beta", IsActive: true, ShowInMenu: true, Order: 1})
	mustCreatePage(t, svc, PageInput{TitleUK: "Альфа", TitleEN: "Alpha", IsActive: true, Order: 1})
	mustCreatePage(t, svc, PageInput{TitleUK: "Гамма", TitleEN: "Gamma", IsActive: true, ShowInMenu: true, Order: 0})
	mustCreatePage(t, svc, PageInput{TitleUK: "Прихована", TitleEN: "Hidden", IsActive: false, ShowInMenu: true})

	result, err := svc.List(ctx, PageFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 3 {
		t.Fatalf("expected 3 active pages, got %d", result.Total)
	}
	want := []string{"gamma", "alpha", "beta"}
	for i, page := range result.Items {
		if page.Slug != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], page.Slug)
		}
	}

	inMenu := true
	menu, err := svc.List(ctx, PageFilter{ShowInMenu: &inMenu})
	if err != nil {
		t.Fatalf("List(menu) returned error: %v", err)
	}
	if len(menu.Items) != 2 {
		t.Fatalf("expected 2 menu pages, got %d", len(menu.Items))
	}

	all, err := svc.List(ctx, PageFilter{IncludeInactive: true})
	if err != nil {
		t.Fatalf("List(all) returned error: %v", err)
	}
	if len(all.Items) != 4 {
		t.Fatalf("expected inactive page to be included, got %d pages", len(all.Items))
	}
}

func TestPageListPaginationAndSectionCounts(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	sections := NewSectionService(gdb)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		page := mustCreatePage(t, pages, PageInput{
			TitleUK:  fmt.Sprintf("Сторінка %d", i),
			TitleEN:  fmt.Sprintf("Page %d", i),
			IsActive: true,
			Order:    i,
		})
		for j := 0; j < i; j++ {
			if _, err := sections.Create(ctx, page.ID, SectionInput{SectionType: "text"}); err != nil {
				t.Fatalf("failed to create section: %v", err)
			}
		}
	}

	result, err := pages.List(ctx, PageFilter{ListOptions: ListOptions{Page: 2, PageSize: 2}})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if result.Total != 5 || result.TotalPages != 3 {
		t.Fatalf("unexpected totals: %d items, %d pages", result.Total, result.TotalPages)
	}
	if len(result.Items) != 2 || result.Items[0].Slug != "page-2" {
		t.Fatalf("unexpected window: %+v", result.Items)
	}
	if got := result.SectionCounts[result.Items[1].ID]; got != 3 {
		t.Fatalf("expected 3 sections for page-3, got %d", got)
	}
}

func TestPageGetBySlugHidesInactive(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPageService(gdb)
	ctx := context.Background()

	mustCreatePage(t, svc, PageInput{Slug: "draft", TitleUK: "Чернетка", TitleEN: "Draft"})

	if _, err := svc.GetBySlug(ctx, "draft"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound for inactive page, got %v", err)
	}
	if _, err := svc.GetBySlug(ctx, "missing"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound for missing page, got %v", err)
	}
}

func TestPageSectionsFollowOrderThenID(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	sections := NewSectionService(gdb)
	ctx := context.Background()

	page := mustCreatePage(t, pages, PageInput{Slug: "region", TitleUK: "Регіон", TitleEN: "Region", IsActive: true})

	for _, tc := range []struct {
		title string
		order int
	}{{"A", 2}, {"B", 0}, {"C", 1}, {"D", 1}} {
		section, err := sections.Create(ctx, page.ID, SectionInput{SectionType: "text", TitleEN: tc.title, Order: tc.order})
		if err != nil {
			t.Fatalf("failed to create section %s: %v", tc.title, err)
		}
		if tc.title == "B" {
			for _, item := range []struct {
				title string
				order int
			}{{"b2", 5}, {"b0", 0}, {"b1", 0}} {
				if _, err := sections.CreateItem(ctx, section.ID, SectionItemInput{TitleEN: item.title, Order: item.order}); err != nil {
					t.Fatalf("failed to create item: %v", err)
				}
			}
		}
	}

	loaded, err := pages.GetBySlug(ctx, "region")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}

	var got []string
	for _, section := range loaded.Sections {
		got = append(got, section.TitleEN)
	}
	if fmt.Sprint(got) != "[B C D A]" {
		t.Fatalf("unexpected section order %v", got)
	}

	var items []string
	for _, item := range loaded.Sections[0].Items {
		items = append(items, item.TitleEN)
	}
	if fmt.Sprint(items) != "[b0 b1 b2]" {
		t.Fatalf("unexpected item order %v", items)
	}

	again, err := pages.GetBySlug(ctx, "region")
	if err != nil {
		t.Fatalf("second GetBySlug returned error: %v", err)
	}
	if len(again.Sections) != len(loaded.Sections) || !again.UpdatedAt.Equal(loaded.UpdatedAt) {
		t.Fatalf("repeated reads differ")
	}
}

func TestPageCreateSlugRules(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewPageService(gdb)
	ctx := context.Background()

	page := mustCreatePage(t, svc, PageInput{TitleUK: "Про регіон", TitleEN: "About the Region"})
	if page.Slug != "about-the-region" {
		t.Fatalf("expected slug from English title, got %q", page.Slug)
	}
	if page.MenuCategory != db.MenuCategoryNone {
		t.Fatalf("expected default menu category, got %q", page.MenuCategory)
	}

	transliterated := mustCreatePage(t, svc, PageInput{TitleUK: "Інвестиції"})
	if !IsValidSlug(transliterated.Slug, pageSlugMaxLen) {
		t.Fatalf("expected valid slug from Ukrainian title, got %q", transliterated.Slug)
	}

	if _, err := svc.Create(ctx, PageInput{Slug: "about-the-region", TitleUK: "Дубль"}); !errors.Is(err, ErrSlugTaken) {
		t.Fatalf("expected ErrSlugTaken, got %v", err)
	}
	if _, err := svc.Create(ctx, PageInput{Slug: "Bad Slug!", TitleUK: "Погано"}); !errors.Is(err, ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
	if _, err := svc.Create(ctx, PageInput{TitleUK: "  "}); !errors.Is(err, ErrTitleMissing) {
		t.Fatalf("expected ErrTitleMissing, got %v", err)
	}
	if _, err := svc.Create(ctx, PageInput{TitleUK: "Меню", MenuCategory: "sports"}); !errors.Is(err, ErrMenuCategoryInvalid) {
		t.Fatalf("expected ErrMenuCategoryInvalid, got %v", err)
	}
	if _, err := svc.Create(ctx, PageInput{TitleUK: "Порядок", Order: -1}); !errors.Is(err, ErrOrderNegative) {
		t.Fatalf("expected ErrOrderNegative, got %v", err)
	}

	updated, err := svc.Update(ctx, page.ID, PageInput{Slug: "about-the-region", TitleUK: "Про регіон", TitleEN: "About", IsActive: true})
	if err != nil {
		t.Fatalf("Update keeping own slug returned error: %v", err)
	}
	if !updated.IsActive || updated.TitleEN != "About" {
		t.Fatalf("update not applied: %+v", updated)
	}
}

func TestPageDeleteCascades(t *testing.T) {
	gdb := setupServiceTestDB(t)
	pages := NewPageService(gdb)
	sections := NewSectionService(gdb)
	ctx := context.Background()

	page := mustCreatePage(t, pages, PageInput{Slug: "temp", TitleUK: "Тимчасова", IsActive: true})
	other := mustCreatePage(t, pages, PageInput{Slug: "keep", TitleUK: "Лишається", IsActive: true})

	section, err := sections.Create(ctx, page.ID, SectionInput{SectionType: "gallery"})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	if _, err := sections.CreateItem(ctx, section.ID, SectionItemInput{TitleUK: "Фото"}); err != nil {
		t.Fatalf("failed to create item: %v", err)
	}
	kept, err := sections.Create(ctx, other.ID, SectionInput{SectionType: "text"})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	if _, err := sections.CreateItem(ctx, kept.ID, SectionItemInput{TitleUK: "Картка"}); err != nil {
		t.Fatalf("failed to create item: %v", err)
	}

	if err := pages.Delete(ctx, page.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := pages.Delete(ctx, page.ID); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound on second delete, got %v", err)
	}

	var sectionCount, itemCount int64
	gdb.Model(&db.PageSection{}).Count(&sectionCount)
	gdb.Model(&db.SectionItem{}).Count(&itemCount)
	if sectionCount != 1 || itemCount != 1 {
		t.Fatalf("expected only the other page's children to remain, got %d sections and %d items", sectionCount, itemCount)
	}

	mustCreatePage(t, pages, PageInput{Slug: "temp", TitleUK: "Знову"})
}
