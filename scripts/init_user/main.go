package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/regionportal/cms/internal/config"
	"github.com/regionportal/cms/internal/db"
)

func main() {
	username := flag.String("username", "admin", "admin username")
	password := flag.String("password", "", "admin password (required)")
	flag.Parse()

	if strings.TrimSpace(*password) == "" {
		log.Fatal("-password is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}

	// 用户已存在时直接退出
	var count int64
	if err := gdb.Model(&db.User{}).Where("username = ?", strings.TrimSpace(*username)).Count(&count).Error; err != nil {
		log.Fatalf("failed to check users: %v", err)
	}
	if count > 0 {
		fmt.Printf("user %q already exists\n", *username)
		return
	}

	if err := db.EnsureUser(gdb, *username, *password); err != nil {
		log.Fatalf("failed to create user: %v", err)
	}
	fmt.Printf("admin user %q created\n", *username)
}
