package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const defaultDatabasePath = "data/portal.db"

// Models 列出由 AutoMigrate 管理的全部模型。
func Models() []any {
	return []any{
		&User{},
		&Page{},
		&PageSection{},
		&SectionItem{},
		&PageContent{},
		&CatalogItem{},
		&CatalogGalleryImage{},
	}
}

// Open 连接 databasePath 处的 sqlite 数据库并执行自动迁移。
// databasePath 为空时将回退到默认值 data/portal.db。
func Open(databasePath string) (*gorm.DB, error) {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = defaultDatabasePath
	}

	if err := ensureParentDir(path); err != nil {
		return nil, err
	}

	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// Migrate 为所有模型创建或更新数据表。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(Models()...); err != nil {
		return err
	}

	// 补齐引入菜单分类之前写入的旧数据
	return gdb.Model(&Page{}).
		Where("menu_category = '' OR menu_category IS NULL").
		Update("menu_category", MenuCategoryNone).Error
}

func ensureParentDir(path string) error {
	if strings.HasPrefix(path, "file:") {
		return nil
	}

	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
