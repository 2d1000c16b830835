package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/regionportal/cms/internal/config"
	"github.com/regionportal/cms/internal/db"
	portalmail "github.com/regionportal/cms/internal/mail"
	"github.com/regionportal/cms/internal/media"
	"github.com/regionportal/cms/internal/router"
	"github.com/regionportal/cms/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("failed to load .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	setupLogger(cfg)
	gin.SetMode(cfg.GinMode)

	if err := run(cfg); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.AppConfig) error {
	// 初始化数据库
	gdb, err := db.Open(cfg.DatabasePath)
	if err != nil {
		return err
	}
	slog.Info("database ready", "path", cfg.DatabasePath)

	if err := db.EnsureUser(gdb, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		return err
	}

	library, err := media.New(context.Background(), cfg)
	if err != nil {
		return err
	}
	slog.Info("media storage ready", "backend", cfg.MediaBackend)

	var sender portalmail.Sender
	if cfg.MailConfigured() {
		sender = portalmail.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Password)
	} else {
		slog.Warn("SMTP_HOST is not set, contact messages will fail")
	}
	contact := service.NewContactService(sender, cfg.SMTP.From, cfg.ContactRecipients, cfg.ContactFallbackRecipients)
	if len(contact.Recipients()) == 0 {
		slog.Warn("no contact recipients configured")
	}

	// 设置并运行 Gin 服务器
	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           router.SetupRouter(gdb, cfg, library, contact),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case <-quit:
	}

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	slog.Info("server stopped")
	return nil
}

func setupLogger(cfg config.AppConfig) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if strings.EqualFold(cfg.LogFormat, "json") {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}
