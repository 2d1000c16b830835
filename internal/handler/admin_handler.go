package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/db"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/service"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type loginPayload struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// Login 校验账号密码并建立后台会话
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBind(&payload); err != nil {
		respondMessage(c, http.StatusBadRequest, locale.MsgInvalidPayload)
		return
	}

	user, err := db.Authenticate(a.db.WithContext(c.Request.Context()), payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			respondMessage(c, http.StatusUnauthorized, locale.MsgInvalidCredentials)
			return
		}
		a.serverError(c, "failed to authenticate", err)
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		a.serverError(c, "failed to save session", err)
		return
	}

	slog.Info("admin logged in", "username", user.Username)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username})
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		a.serverError(c, "failed to clear session", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CurrentUser 返回当前登录的用户
func (a *API) CurrentUser(c *gin.Context) {
	session := sessions.Default(c)
	c.JSON(http.StatusOK, gin.H{
		"id":       session.Get("user_id"),
		"username": session.Get("username"),
	})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			respondMessage(c, http.StatusUnauthorized, locale.MsgUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// respondAdminError 将后台写操作的服务层错误映射为状态码
func (a *API) respondAdminError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPageNotFound),
		errors.Is(err, service.ErrSectionNotFound),
		errors.Is(err, service.ErrSectionItemNotFound),
		errors.Is(err, service.ErrCatalogItemNotFound),
		errors.Is(err, service.ErrGalleryImageNotFound),
		errors.Is(err, service.ErrContentNotFound):
		respondMessage(c, http.StatusNotFound, locale.MsgNotFound)
	case errors.Is(err, service.ErrSlugTaken):
		respondMessage(c, http.StatusConflict, locale.MsgSlugTaken)
	case errors.Is(err, service.ErrSlugInvalid):
		respondMessage(c, http.StatusBadRequest, locale.MsgSlugInvalid)
	case errors.Is(err, service.ErrTitleMissing),
		errors.Is(err, service.ErrMenuCategoryInvalid),
		errors.Is(err, service.ErrOrderNegative),
		errors.Is(err, service.ErrSectionTypeInvalid),
		errors.Is(err, service.ErrSectionFieldRequired),
		errors.Is(err, service.ErrChartDataInvalid),
		errors.Is(err, service.ErrGalleryImageMissing),
		errors.Is(err, service.ErrContentSectionInvalid):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		a.serverError(c, "admin write failed", err)
	}
}
