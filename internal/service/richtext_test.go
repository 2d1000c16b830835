package service

import (
	"strings"
	"testing"
)

func TestRenderRichText(t *testing.T) {
	out, err := RenderRichText(`<p>Текст <a href="javascript:alert(1)">link</a></p>`, TextFormatHTML)
	if err != nil {
		t.Fatalf("RenderRichText returned error: %v", err)
	}
	if strings.Contains(out, "javascript") {
		t.Fatalf("expected javascript link to be removed, got %q", out)
	}
	if !strings.Contains(out, "Текст") {
		t.Fatalf("expected text to survive, got %q", out)
	}

	md, err := RenderRichText("# Title\n\n- one\n- two", "Markdown")
	if err != nil {
		t.Fatalf("RenderRichText returned error: %v", err)
	}
	if !strings.Contains(md, "<h1") || !strings.Contains(md, "<li>one</li>") {
		t.Fatalf("expected markdown to render, got %q", md)
	}

	empty, err := RenderRichText("   ", "")
	if err != nil || empty != "" {
		t.Fatalf("expected empty output, got %q, %v", empty, err)
	}
}

func TestSanitizeEmbed(t *testing.T) {
	kept := SanitizeEmbed(`<iframe src="https://www.google.com/maps/embed?pb=1" width="600" allowfullscreen></iframe>`)
	if !strings.Contains(kept, `src="https://www.google.com/maps/embed?pb=1"`) {
		t.Fatalf("expected https iframe to be kept, got %q", kept)
	}

	insecure := SanitizeEmbed(`<iframe src="http://example.org/x"></iframe>`)
	if strings.Contains(insecure, "src=") {
		t.Fatalf("expected http src to be dropped, got %q", insecure)
	}

	overlay := SanitizeEmbed(`<iframe src="https://www.youtube.com/embed/abc" style="position:fixed;inset:0;z-index:9999" width="560"></iframe>`)
	if strings.Contains(overlay, "style") || !strings.Contains(overlay, `width="560"`) {
		t.Fatalf("expected style to be dropped and width kept, got %q", overlay)
	}

	if got := SanitizeEmbed(`<script src="https://evil.example/x.js"></script><div>text</div>`); strings.Contains(got, "script") {
		t.Fatalf("expected script to be removed, got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		input string
		max   int
		want  string
	}{
		{input: "About the Region", max: 100, want: "about-the-region"},
		{input: "  Hello,   World!  ", max: 100, want: "hello-world"},
		{input: "a_b c", max: 100, want: "a-b-c"},
		{input: "long title here", max: 10, want: "long-title"},
		{input: "", max: 100, want: ""},
	}

	for _, tc := range cases {
		if got := Slugify(tc.input, tc.max); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}

	if got := Slugify("Київ", 100); !IsValidSlug(got, 100) {
		t.Fatalf("expected transliterated slug, got %q", got)
	}
}

func TestIsValidSlug(t *testing.T) {
	valid := []string{"about", "economy-main", "a1-b2"}
	invalid := []string{"", "-lead", "trail-", "dou--ble", "Upper", "with space", "кирилиця"}

	for _, slug := range valid {
		if !IsValidSlug(slug, 100) {
			t.Fatalf("expected %q to be valid", slug)
		}
	}
	for _, slug := range invalid {
		if IsValidSlug(slug, 100) {
			t.Fatalf("expected %q to be invalid", slug)
		}
	}
	if IsValidSlug("abcdef", 5) {
		t.Fatalf("expected length limit to apply")
	}
}
