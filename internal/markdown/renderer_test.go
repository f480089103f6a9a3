package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-portfolio/locale"
)

func TestRenderBasicMarkdown(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("# Dự án\n\nMột đoạn **mô tả**.")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<strong>mô tả</strong>") {
		t.Fatalf("unexpected output: %s", html)
	}
}

func TestRenderGFMTable(t *testing.T) {
	r := NewRenderer()

	html, err := r.Render("| a | b |\n|---|---|\n| 1 | 2 |")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Fatalf("GFM table not rendered: %s", html)
	}
}

func TestRenderLocalizedFollowsFallbackChain(t *testing.T) {
	r := NewRenderer()

	html, err := r.RenderLocalized(locale.Value{VI: "nội dung *việt*"}, locale.English)
	if err != nil {
		t.Fatalf("RenderLocalized() error = %v", err)
	}
	if !strings.Contains(html, "<em>việt</em>") {
		t.Fatalf("fallback content not rendered: %s", html)
	}

	empty, err := r.RenderLocalized(locale.Value{}, locale.Vietnamese)
	if err != nil {
		t.Fatalf("RenderLocalized() error = %v", err)
	}
	if empty != "" {
		t.Fatalf("empty value rendered %q", empty)
	}
}
