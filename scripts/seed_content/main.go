package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/regionportal/cms/internal/config"
	"github.com/regionportal/cms/internal/db"
	"github.com/regionportal/cms/internal/service"
	"gorm.io/gorm"
)

func main() {
	demo := flag.Bool("demo", false, "also create demo pages and catalog items when the tables are empty")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	ctx := context.Background()
	created, err := service.NewContentService(gdb).EnsureSingletons(ctx)
	if err != nil {
		log.Fatalf("failed to seed legacy pages: %v", err)
	}
	fmt.Printf("legacy pages: %d created\n", created)

	if !*demo {
		return
	}
	if err := seedDemoPages(ctx, gdb); err != nil {
		log.Fatalf("failed to seed demo pages: %v", err)
	}
	if err := seedDemoCatalog(ctx, gdb); err != nil {
		log.Fatalf("failed to seed demo catalog: %v", err)
	}
	fmt.Println("demo content ready")
}

// seedDemoPages 只在没有任何页面时创建一组示例页面。
func seedDemoPages(ctx context.Context, gdb *gorm.DB) error {
	var count int64
	if err := gdb.WithContext(ctx).Model(&db.Page{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("pages already exist, skipping")
		return nil
	}

	pages := service.NewPageService(gdb)
	sections := service.NewSectionService(gdb)

	page, err := pages.Create(ctx, service.PageInput{
		TitleUK:       "Про регіон",
		TitleEN:       "About the region",
		DescriptionUK: "Коротко про регіон",
		DescriptionEN: "The region at a glance",
		IsActive:      true,
		ShowInMenu:    true,
		MenuCategory:  db.MenuCategoryAbout,
	})
	if err != nil {
		return err
	}

	if _, err := sections.Create(ctx, page.ID, service.SectionInput{
		SectionType: string(db.SectionTypeHero),
		TitleUK:     "Ласкаво просимо",
		TitleEN:     "Welcome",
	}); err != nil {
		return err
	}

	stats, err := sections.Create(ctx, page.ID, service.SectionInput{
		SectionType: string(db.SectionTypeStats),
		TitleUK:     "Цифри",
		TitleEN:     "Key figures",
		Order:       1,
	})
	if err != nil {
		return err
	}

	figures := []service.SectionItemInput{
		{TitleUK: "1,2 млн", TitleEN: "1.2M", DescriptionUK: "мешканців", DescriptionEN: "residents"},
		{TitleUK: "12", TitleEN: "12", DescriptionUK: "індустріальних парків", DescriptionEN: "industrial parks", Order: 1},
	}
	for _, figure := range figures {
		if _, err := sections.CreateItem(ctx, stats.ID, figure); err != nil {
			return err
		}
	}

	_, err = sections.Create(ctx, page.ID, service.SectionInput{
		SectionType: string(db.SectionTypeChart),
		TitleUK:     "Структура економіки",
		TitleEN:     "Economy structure",
		ChartData:   []byte(`{"labels":["Industry","Agriculture","Services"],"values":[38,22,40]}`),
		Order:       2,
	})
	return err
}

// seedDemoCatalog 只在目录为空时创建两个示例条目。
func seedDemoCatalog(ctx context.Context, gdb *gorm.DB) error {
	var count int64
	if err := gdb.WithContext(ctx).Model(&db.CatalogItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		fmt.Println("catalog items already exist, skipping")
		return nil
	}

	catalog := service.NewCatalogService(gdb)
	items := []service.CatalogItemInput{
		{
			TitleUK:            "Індустріальний парк «Північ»",
			TitleEN:            "North Industrial Park",
			ShortDescriptionUK: "Ділянка 40 га з підведеними мережами",
			ShortDescriptionEN: "A 40 ha greenfield site with utilities",
			ContentEN:          "**Ready** for investors.",
			Format:             service.TextFormatMarkdown,
			IsActive:           true,
		},
		{
			TitleUK:  "Логістичний хаб",
			TitleEN:  "Logistics hub",
			IsActive: false,
		},
	}
	for _, input := range items {
		if _, err := catalog.Create(ctx, input); err != nil {
			return err
		}
	}
	return nil
}
