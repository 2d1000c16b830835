package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/config"
	"github.com/regionportal/cms/internal/handler"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/media"
	"github.com/regionportal/cms/internal/ratelimit"
	"github.com/regionportal/cms/internal/service"
	"gorm.io/gorm"
)

const sessionName = "portal_session"

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(gdb *gorm.DB, cfg config.AppConfig, library *media.Library, contact *service.ContactService) *gin.Engine {
	r := gin.New()
	// 只信任已配置代理的 X-Forwarded-For，联系表单限流按真实对端计数
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		slog.Error("invalid trusted proxies, trusting none", "error", err)
		_ = r.SetTrustedProxies(nil)
	}
	r.Use(gin.Recovery(), requestLogger())

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSAllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language"},
			ExposeHeaders:    []string{"Content-Language", "X-Total-Count", "X-Total-Pages"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))
	r.Use(handler.LocaleMiddleware())

	if cfg.MediaBackend != config.MediaBackendS3 && cfg.MediaRoot != "" {
		r.Static(cfg.MediaURLPath, cfg.MediaRoot)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/healthz", healthCheck(gdb))

	api := handler.NewAPI(gdb, library, contact)
	contactLimit := ratelimit.PerMinute(cfg.ContactRatePerMinute)

	public := r.Group("/api")
	{
		public.GET("/pages/", api.ListPages)
		public.GET("/pages/:slug/", api.GetPage)

		public.GET("/catalog/catalog-items/", api.ListCatalogItems)
		public.GET("/catalog/catalog-items/:slug/", api.GetCatalogItem)

		public.GET("/content/", api.ListContent)
		public.GET("/content/:slug/", api.GetContent)

		public.POST("/contact/", contactLimit.Middleware(rateLimitMessage), api.SubmitContact)
	}

	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.POST("/logout", api.Logout)

		auth := admin.Group("/api")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/me", api.CurrentUser)

			auth.GET("/pages", api.AdminListPages)
			auth.POST("/pages", api.AdminCreatePage)
			auth.GET("/pages/:id", api.AdminGetPage)
			auth.PUT("/pages/:id", api.AdminUpdatePage)
			auth.DELETE("/pages/:id", api.AdminDeletePage)
			auth.POST("/pages/:id/sections", api.AdminCreateSection)

			auth.PUT("/sections/:id", api.AdminUpdateSection)
			auth.DELETE("/sections/:id", api.AdminDeleteSection)
			auth.POST("/sections/:id/items", api.AdminCreateSectionItem)

			auth.PUT("/section-items/:id", api.AdminUpdateSectionItem)
			auth.DELETE("/section-items/:id", api.AdminDeleteSectionItem)

			auth.GET("/catalog-items", api.AdminListCatalogItems)
			auth.POST("/catalog-items", api.AdminCreateCatalogItem)
			auth.GET("/catalog-items/:id", api.AdminGetCatalogItem)
			auth.PUT("/catalog-items/:id", api.AdminUpdateCatalogItem)
			auth.DELETE("/catalog-items/:id", api.AdminDeleteCatalogItem)
			auth.POST("/catalog-items/:id/gallery", api.AdminAddGalleryImage)

			auth.PUT("/gallery/:id", api.AdminUpdateGalleryImage)
			auth.DELETE("/gallery/:id", api.AdminDeleteGalleryImage)

			auth.GET("/content", api.AdminListContent)
			auth.PUT("/content/:slug", api.AdminSaveContent)
			auth.DELETE("/content/:slug", api.AdminDeleteContent)

			auth.POST("/uploads", api.UploadMedia)
		}
	}

	return r
}

func rateLimitMessage(c *gin.Context) string {
	language := locale.Negotiate(c.Query("lang"), c.GetHeader("Accept-Language"))
	return locale.T(language, locale.MsgRateLimited)
}

func healthCheck(gdb *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := gdb.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			slog.Error("health check failed", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// requestLogger 为每个请求输出一行结构化日志
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		}
		switch {
		case status >= http.StatusInternalServerError:
			slog.Error("request", attrs...)
		case status >= http.StatusBadRequest:
			slog.Warn("request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}
