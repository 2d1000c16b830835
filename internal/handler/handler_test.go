package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/db"
	portalmail "github.com/regionportal/cms/internal/mail"
	"github.com/regionportal/cms/internal/media"
	"github.com/regionportal/cms/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testBaseURL = "http://cms.test"

type recordingSender struct {
	sent []portalmail.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg portalmail.Message) error {
	r.sent = append(r.sent, msg)
	return r.err
}

func setupHandlerTest(t *testing.T) (*API, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	store, err := media.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create media store: %v", err)
	}
	library := media.NewLibrary(store, media.NewLocalResolver(testBaseURL, "/media"))

	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return NewAPI(gdb, library, nil), gdb
}

func newTestEngine(api *API) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("test-secret"))))
	r.Use(LocaleMiddleware())

	r.GET("/api/pages/", api.ListPages)
	r.GET("/api/pages/:slug/", api.GetPage)
	r.GET("/api/catalog/catalog-items/", api.ListCatalogItems)
	r.GET("/api/catalog/catalog-items/:slug/", api.GetCatalogItem)
	r.GET("/api/content/", api.ListContent)
	r.GET("/api/content/:slug/", api.GetContent)
	r.POST("/api/contact/", api.SubmitContact)

	r.POST("/admin/login", api.Login)
	r.POST("/admin/logout", api.Logout)

	auth := r.Group("/admin/api", AuthRequired())
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

	return r
}

func performRequest(t *testing.T, r http.Handler, method, target string, body any, cookies []*http.Cookie, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode body %q: %v", w.Body.String(), err)
	}
}

func mustCreatePage(t *testing.T, gdb *gorm.DB, input service.PageInput) *db.Page {
	t.Helper()
	page, err := service.NewPageService(gdb).Create(context.Background(), input)
	if err != nil {
		t.Fatalf("failed to create page %q: %v", input.TitleUK, err)
	}
	return page
}

func mustCreateSection(t *testing.T, gdb *gorm.DB, pageID uint, input service.SectionInput) *db.PageSection {
	t.Helper()
	section, err := service.NewSectionService(gdb).Create(context.Background(), pageID, input)
	if err != nil {
		t.Fatalf("failed to create section %q: %v", input.TitleUK, err)
	}
	return section
}

func performRawRequest(r http.Handler, method, target, contentType string, body io.Reader, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
