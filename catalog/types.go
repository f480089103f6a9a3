package catalog

import (
	"github.com/goliatone/go-portfolio/locale"
)

// Experience is one employment entry on the timeline.
type Experience struct {
	ID          int64        `json:"id,omitempty"`
	Title       locale.Value `json:"title"`
	Company     locale.Value `json:"company"`
	Description locale.Value `json:"description"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	IsCurrent   Flag         `json:"is_current"`
	SortOrder   Ordinal      `json:"sort_order"`
	IsActive    Flag         `json:"is_active"`
}

// Skill belongs to exactly one localized category; grouping by category
// is computed at display time, never stored.
type Skill struct {
	ID        int64        `json:"id,omitempty"`
	Name      locale.Value `json:"name"`
	Category  locale.Value `json:"category"`
	Level     Ordinal      `json:"level"`
	Icon      string       `json:"icon"`
	SortOrder Ordinal      `json:"sort_order"`
	IsActive  Flag         `json:"is_active"`
}

// Education is one school or training entry.
type Education struct {
	ID          int64        `json:"id,omitempty"`
	School      locale.Value `json:"school"`
	Degree      locale.Value `json:"degree"`
	Description locale.Value `json:"description"`
	StartDate   string       `json:"start_date"`
	EndDate     string       `json:"end_date"`
	SortOrder   Ordinal      `json:"sort_order"`
	IsActive    Flag         `json:"is_active"`
}

// Project carries one thumbnail plus an ordered gallery of image paths.
// Image paths are backend-relative; resolve them with ResolveAssetURL
// before display.
type Project struct {
	ID           int64        `json:"id,omitempty"`
	Title        locale.Value `json:"title"`
	Slug         locale.Value `json:"slug"`
	Description  locale.Value `json:"description"`
	Technologies StringList   `json:"technologies"`
	Thumbnail    string       `json:"thumbnail"`
	Gallery      StringList   `json:"gallery"`
	DemoURL      string       `json:"demo_url"`
	SourceURL    string       `json:"source_url"`
	Status       string       `json:"status"`
	IsFeatured   Flag         `json:"is_featured"`
	SortOrder    Ordinal      `json:"sort_order"`
	IsActive     Flag         `json:"is_active"`
}

// Certification is one credential entry.
type Certification struct {
	ID            int64        `json:"id,omitempty"`
	Name          locale.Value `json:"name"`
	Issuer        locale.Value `json:"issuer"`
	IssueDate     string       `json:"issue_date"`
	CredentialURL string       `json:"credential_url"`
	Image         string       `json:"image"`
	SortOrder     Ordinal      `json:"sort_order"`
	IsActive      Flag         `json:"is_active"`
}

// Settings holds the site-wide hero/contact content.
type Settings struct {
	SiteName locale.Value `json:"site_name"`
	Headline locale.Value `json:"headline"`
	Bio      locale.Value `json:"bio"`
	Email    string       `json:"email"`
	Location locale.Value `json:"location"`
	Avatar   string       `json:"avatar"`
}

// Site is the aggregate public content payload.
type Site struct {
	Settings       Settings        `json:"settings"`
	Experiences    []Experience    `json:"experiences"`
	Skills         []Skill         `json:"skills"`
	Educations     []Education     `json:"educations"`
	Projects       []Project       `json:"projects"`
	Certifications []Certification `json:"certifications"`
}
