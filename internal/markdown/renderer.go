package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/goliatone/go-portfolio/locale"
)

// Renderer turns markdown descriptions into HTML for the public site.
// It is stateless, so a single instance can be shared across requests
// without locking.
type Renderer struct {
	engine goldmark.Markdown
}

// NewRenderer constructs a renderer with GFM extensions enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		engine: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts a markdown source into HTML.
func (r *Renderer) Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := r.engine.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("markdown: render: %w", err)
	}
	return buf.String(), nil
}

// RenderLocalized resolves the display string for the requested language
// first, then renders it. Empty content renders to an empty string.
func (r *Renderer) RenderLocalized(value locale.Value, lang locale.Language) (string, error) {
	source := value.Resolve(lang)
	if source == "" {
		return "", nil
	}
	return r.Render(source)
}
