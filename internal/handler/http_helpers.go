package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/regionportal/cms/internal/locale"
	"github.com/regionportal/cms/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

// respondMessage writes a localized error body for key.
func respondMessage(c *gin.Context, status int, key string) {
	respondError(c, status, locale.T(requestLanguage(c), key))
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondMessage(c, http.StatusBadRequest, locale.MsgInvalidPayload)
		return false
	}
	return true
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// idParam parses :id and answers 400 itself when it is malformed.
func idParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondMessage(c, http.StatusBadRequest, locale.MsgInvalidID)
		return 0, false
	}
	return id, true
}

func parsePositiveInt(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

// listOptions reads ?page and ?page_size. Without ?page the full list is used.
func listOptions(c *gin.Context) service.ListOptions {
	page := parsePositiveInt(c.Query("page"), 0)
	if page == 0 {
		return service.ListOptions{}
	}
	return service.ListOptions{
		Page:     page,
		PageSize: parsePositiveInt(c.Query("page_size"), 0),
	}
}

// setTotalHeaders exposes list totals without changing the array body.
func setTotalHeaders(c *gin.Context, opts service.ListOptions, total int64, totalPages int) {
	if !opts.Paginated() {
		return
	}
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-Total-Pages", strconv.Itoa(totalPages))
}

// parseBoolQuery returns nil when key is absent or not a boolean.
func parseBoolQuery(c *gin.Context, key string) *bool {
	raw, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	value, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return nil
	}
	return &value
}
