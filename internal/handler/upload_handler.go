package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/media"
)

const maxUploadBytes = 64 << 20

// UploadMedia 保存 multipart 中的 "file" 字段，并返回应写入实体的引用。
// 可选的 "kind" 字段取值为 image、video 或 file。
func (a *API) UploadMedia(c *gin.Context) {
	if a.media == nil {
		a.serverError(c, "media storage is not configured", errors.New("nil media library"))
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	kind, err := media.ParseKind(c.PostForm("kind"))
	if err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, locale.MsgInvalidPayload)
		return
	}

	file, err := header.Open()
	if err != nil {
		a.serverError(c, "failed to open upload", err)
		return
	}
	defer file.Close()

	ctx := c.Request.Context()
	saved, err := a.media.Save(ctx, kind, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrContentTypeInvalid), errors.Is(err, media.ErrImageUnreadable):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			a.serverError(c, "failed to store upload", err)
		}
		return
	}

	slog.Info("media uploaded", "reference", saved.Reference, "content_type", saved.ContentType, "size", header.Size)
	c.JSON(http.StatusCreated, gin.H{
		"reference":    saved.Reference,
		"url":          a.mediaURL(ctx, saved.Reference),
		"content_type": saved.ContentType,
		"width":        saved.Width,
		"height":       saved.Height,
	})
}
