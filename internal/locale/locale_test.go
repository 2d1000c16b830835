package locale

import "testing"

func TestNormalizeLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "uk", want: LanguageUkrainian},
		{input: "uk-UA", want: LanguageUkrainian},
		{input: "UA", want: LanguageUkrainian},
		{input: "en", want: LanguageEnglish},
		{input: "en_US", want: LanguageEnglish},
		{input: "fr", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := NormalizeLanguage(tc.input); got != tc.want {
			t.Fatalf("NormalizeLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestLanguageFromAcceptLanguage(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{input: "uk-UA,uk;q=0.9", want: LanguageUkrainian},
		{input: "en-US,en;q=0.9", want: LanguageEnglish},
		{input: "de-DE,en;q=0.5", want: LanguageEnglish},
		{input: "ja", want: ""},
		{input: "", want: ""},
	}

	for _, tc := range cases {
		if got := LanguageFromAcceptLanguage(tc.input); got != tc.want {
			t.Fatalf("LanguageFromAcceptLanguage(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}

func TestNegotiate(t *testing.T) {
	if got := Negotiate("en", "uk-UA"); got != LanguageEnglish {
		t.Fatalf("query should win, got %q", got)
	}
	if got := Negotiate("", "en-GB,en;q=0.8"); got != LanguageEnglish {
		t.Fatalf("expected header language en, got %q", got)
	}
	if got := Negotiate("xx", ""); got != LanguageUkrainian {
		t.Fatalf("expected fallback uk, got %q", got)
	}
}

func TestPreferenceForLanguage(t *testing.T) {
	pref := PreferenceForLanguage("en")
	if pref.Language != LanguageEnglish || pref.HTMLLang != "en" {
		t.Fatalf("unexpected preference %+v", pref)
	}

	fallback := PreferenceForLanguage("")
	if fallback.Language != LanguageUkrainian {
		t.Fatalf("expected fallback language %q, got %q", LanguageUkrainian, fallback.Language)
	}
}

func TestPick(t *testing.T) {
	if got := Pick("en", "english", "ukrainian"); got != "english" {
		t.Fatalf("Pick(en) = %q, want %q", got, "english")
	}
	if got := Pick("uk", "english", "ukrainian"); got != "ukrainian" {
		t.Fatalf("Pick(uk) = %q, want %q", got, "ukrainian")
	}
	if got := Pick("en", "", "ukrainian"); got != "ukrainian" {
		t.Fatalf("Pick(en) with empty english = %q, want %q", got, "ukrainian")
	}
}

func TestT(t *testing.T) {
	if got := T("en", MsgNotFound); got != "Not found." {
		t.Fatalf("T(en) = %q", got)
	}
	if got := T("uk", MsgNotFound); got != "Не знайдено." {
		t.Fatalf("T(uk) = %q", got)
	}
	if got := T("en", "missing_key"); got != "missing_key" {
		t.Fatalf("unknown key should pass through, got %q", got)
	}
}
