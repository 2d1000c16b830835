package service

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Input formats accepted for rich text fields.
const (
	TextFormatHTML     = "html"
	TextFormatMarkdown = "markdown"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	richTextPolicy = buildRichTextPolicy()
	embedPolicy    = buildEmbedPolicy()

	httpsSrcPattern = regexp.MustCompile(`^https://`)
)

func buildRichTextPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("p", "span", "div", "table", "td", "th")
	policy.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	return policy
}

// buildEmbedPolicy keeps iframes served over https and drops everything else,
// including scripts.
func buildEmbedPolicy() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("iframe")
	policy.AllowAttrs("src").Matching(httpsSrcPattern).OnElements("iframe")
	policy.AllowAttrs("title", "width", "height", "allow", "allowfullscreen", "frameborder", "loading", "referrerpolicy").OnElements("iframe")
	return policy
}

// RenderRichText converts admin input to safe HTML. Markdown input is
// rendered first; everything passes through the UGC policy.
func RenderRichText(input, format string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", nil
	}

	if strings.EqualFold(strings.TrimSpace(format), TextFormatMarkdown) {
		var buf bytes.Buffer
		if err := markdownEngine.Convert([]byte(trimmed), &buf); err != nil {
			return "", err
		}
		trimmed = buf.String()
	}

	return strings.TrimSpace(richTextPolicy.Sanitize(trimmed)), nil
}

// SanitizeEmbed reduces third-party embed markup to https iframes.
func SanitizeEmbed(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(embedPolicy.Sanitize(trimmed))
}
