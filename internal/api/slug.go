package api

import (
	"strings"

	goslug "github.com/goliatone/go-slug"

	"github.com/goliatone/go-portfolio/editor"
	"github.com/goliatone/go-portfolio/locale"
)

// applyProjectSlug derives a project slug at save time when the VI slug
// slot is empty but a VI title exists, overriding whatever was queued
// for the slug field. Each slot derives from its own title, with the EN
// slot reusing the VI-derived slug when no EN title is present.
func (c *Client) applyProjectSlug(session *editor.Session, payload map[string]string) {
	title, err := session.Localized("title")
	if err != nil {
		return
	}
	slug, err := session.Localized("slug")
	if err != nil {
		return
	}

	if slug.VI != "" || title.VI == "" {
		return
	}

	derived := locale.Value{VI: slugify(title.VI)}
	derived.EN = derived.VI
	if title.EN != "" {
		derived.EN = slugify(title.EN)
	}

	// The substitution rule is literal: diacritics survive. Flag slugs
	// that are not URL-safe but never rewrite them.
	for _, slot := range []string{derived.VI, derived.EN} {
		if !goslug.IsValid(slot) {
			c.logger.Warn("derived slug is not URL-safe", "slug", slot)
		}
	}

	wire, err := derived.WireString()
	if err != nil {
		return
	}
	payload["slug"] = wire
}

// slugify lowercases and swaps spaces for hyphens. Nothing else: no
// diacritic transliteration, no character filtering.
func slugify(title string) string {
	return strings.ReplaceAll(strings.ToLower(title), " ", "-")
}
