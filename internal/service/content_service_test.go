package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/regionportal/cms/internal/db"
)

func TestContentSaveDerivesSectionForFixedSlugs(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContentService(gdb)
	ctx := context.Background()

	saved, err := svc.Save(ctx, "economy-energy", ContentInput{Section: "general", ContentUK: "<p>Енергія</p>"})
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved.Section != db.ContentSectionEconomy {
		t.Fatalf("expected section derived from slug, got %q", saved.Section)
	}
	if saved.TitleUK != "Енергетика" || saved.TitleEN != "Energy" {
		t.Fatalf("expected registry titles, got %q / %q", saved.TitleUK, saved.TitleEN)
	}

	again, err := svc.Save(ctx, "economy-energy", ContentInput{TitleUK: "Енергетика регіону", ChartData: json.RawMessage(`{"kw": 10}`)})
	if err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}
	if again.ID != saved.ID {
		t.Fatalf("expected the singleton to be updated in place")
	}

	var count int64
	gdb.Model(&db.PageContent{}).Where("slug = ?", "economy-energy").Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one row, got %d", count)
	}

	if _, err := svc.Save(ctx, "custom-note", ContentInput{TitleUK: "Нотатка", Section: "sports"}); !errors.Is(err, ErrContentSectionInvalid) {
		t.Fatalf("expected ErrContentSectionInvalid, got %v", err)
	}
	if _, err := svc.Save(ctx, "custom-note", ContentInput{}); !errors.Is(err, ErrTitleMissing) {
		t.Fatalf("expected ErrTitleMissing, got %v", err)
	}
	if _, err := svc.Save(ctx, "Bad Slug", ContentInput{TitleUK: "x"}); !errors.Is(err, ErrSlugInvalid) {
		t.Fatalf("expected ErrSlugInvalid, got %v", err)
	}
}

func TestContentListFiltersBySection(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContentService(gdb)
	ctx := context.Background()

	for _, slug := range []string{"investment-parks", "about-tourism", "about-education"} {
		if _, err := svc.Save(ctx, slug, ContentInput{}); err != nil {
			t.Fatalf("Save(%s) returned error: %v", slug, err)
		}
	}
	if _, err := svc.Save(ctx, "news", ContentInput{TitleUK: "Новини"}); err != nil {
		t.Fatalf("Save(news) returned error: %v", err)
	}

	all, err := svc.List(ctx, "", ListOptions{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	want := []string{"about-education", "about-tourism", "investment-parks", "news"}
	if len(all.Items) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(all.Items))
	}
	for i, item := range all.Items {
		if item.Slug != want[i] {
			t.Fatalf("position %d: expected %s, got %s", i, want[i], item.Slug)
		}
	}

	about, err := svc.List(ctx, "about", ListOptions{})
	if err != nil {
		t.Fatalf("List(about) returned error: %v", err)
	}
	if len(about.Items) != 2 {
		t.Fatalf("expected 2 about records, got %d", len(about.Items))
	}

	unknown, err := svc.List(ctx, "weather", ListOptions{})
	if err != nil {
		t.Fatalf("List(weather) returned error: %v", err)
	}
	if len(unknown.Items) != 0 {
		t.Fatalf("expected no records for unknown section, got %d", len(unknown.Items))
	}

	if _, err := svc.GetBySlug(ctx, "missing"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
	if err := svc.Delete(ctx, "news"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(ctx, "news"); !errors.Is(err, ErrContentNotFound) {
		t.Fatalf("expected ErrContentNotFound, got %v", err)
	}
}

func TestEnsureSingletonsIsIdempotent(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewContentService(gdb)
	ctx := context.Background()

	if _, err := svc.Save(ctx, "about-summary", ContentInput{TitleUK: "Власний заголовок"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	created, err := svc.EnsureSingletons(ctx)
	if err != nil {
		t.Fatalf("EnsureSingletons returned error: %v", err)
	}
	if created != len(db.FixedContentPages)-1 {
		t.Fatalf("expected %d new rows, got %d", len(db.FixedContentPages)-1, created)
	}

	created, err = svc.EnsureSingletons(ctx)
	if err != nil {
		t.Fatalf("second EnsureSingletons returned error: %v", err)
	}
	if created != 0 {
		t.Fatalf("expected no new rows, got %d", created)
	}

	summary, err := svc.GetBySlug(ctx, "about-summary")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if summary.TitleUK != "Власний заголовок" {
		t.Fatalf("existing row should be untouched, got %q", summary.TitleUK)
	}
}
