package locale

import (
	"strings"

	"golang.org/x/text/language"
)

const (
	LanguageUkrainian = "uk"
	LanguageEnglish   = "en"
)

type Preference struct {
	Language string
	HTMLLang string
}

// matcher's first tag is the fallback for unmatched requests.
var matcher = language.NewMatcher([]language.Tag{
	language.Ukrainian,
	language.English,
})

func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	if trimmed == "ua" || trimmed == LanguageUkrainian || strings.HasPrefix(trimmed, "uk-") {
		return LanguageUkrainian
	}
	if trimmed == LanguageEnglish || strings.HasPrefix(trimmed, "en-") {
		return LanguageEnglish
	}
	return ""
}

// LanguageFromAcceptLanguage matches an Accept-Language header against the
// supported languages. It returns "" when nothing matches with confidence.
func LanguageFromAcceptLanguage(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return ""
	}
	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return ""
	}
	if index == 1 {
		return LanguageEnglish
	}
	return LanguageUkrainian
}

// Negotiate picks the response language: explicit query value, then the
// Accept-Language header, then Ukrainian.
func Negotiate(query, acceptLanguage string) string {
	if lang := NormalizeLanguage(query); lang != "" {
		return lang
	}
	if lang := LanguageFromAcceptLanguage(acceptLanguage); lang != "" {
		return lang
	}
	return LanguageUkrainian
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageEnglish {
		return Preference{Language: LanguageEnglish, HTMLLang: "en"}
	}
	return Preference{Language: LanguageUkrainian, HTMLLang: "uk"}
}
