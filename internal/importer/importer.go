package importer

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-portfolio/catalog"
	"github.com/goliatone/go-portfolio/editor"
	"github.com/goliatone/go-portfolio/internal/api"
	"github.com/goliatone/go-portfolio/internal/logging"
	"github.com/goliatone/go-portfolio/locale"
	"github.com/goliatone/go-portfolio/pkg/interfaces"
)

// Importer seeds portfolio entries from a directory of markdown files.
// Each file carries YAML frontmatter with per-language fields and uses
// its body as the Vietnamese description.
type Importer struct {
	client *api.Client
	logger interfaces.Logger
}

// New constructs an importer saving through the supplied client.
func New(client *api.Client, logger interfaces.Logger) *Importer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{client: client, logger: logger}
}

// FileError pairs a failed file with its cause.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// Report summarises one import run. Failures are collected per file so
// a bad document never aborts the rest of the batch.
type Report struct {
	Imported int
	Failures []FileError
}

type frontMatter struct {
	Kind          string   `yaml:"kind"`
	TitleVI       string   `yaml:"title_vi"`
	TitleEN       string   `yaml:"title_en"`
	SubtitleVI    string   `yaml:"subtitle_vi"`
	SubtitleEN    string   `yaml:"subtitle_en"`
	DescriptionEN string   `yaml:"description_en"`
	Tags          []string `yaml:"tags"`
	SortOrder     int      `yaml:"sort_order"`
	Active        *bool    `yaml:"active"`
	StartDate     string   `yaml:"start_date"`
	EndDate       string   `yaml:"end_date"`
}

// ImportDir walks the directory's .md files, building and saving one
// draft per document.
func (im *Importer) ImportDir(ctx context.Context, dir string) (*Report, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("importer: read dir %q: %w", dir, err)
	}

	report := &Report{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := im.importFile(ctx, path); err != nil {
			im.logger.Warn("import failed", "path", path, "error", err)
			report.Failures = append(report.Failures, FileError{Path: path, Err: err})
			continue
		}
		report.Imported++
	}

	im.logger.Info("import finished",
		"dir", dir,
		"imported", report.Imported,
		"failed", len(report.Failures),
	)
	return report, nil
}

func (im *Importer) importFile(ctx context.Context, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	session, err := BuildSession(source)
	if err != nil {
		return err
	}
	defer session.Close()

	if _, err := im.client.Save(ctx, session); err != nil {
		return err
	}
	return nil
}

// BuildSession parses one markdown document into a ready-to-save draft.
func BuildSession(source []byte) (*editor.Session, error) {
	var meta frontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return nil, fmt.Errorf("importer: parse frontmatter: %w", err)
	}

	kind, err := catalog.ParseKind(meta.Kind)
	if err != nil {
		return nil, err
	}

	session, err := editor.NewSession(kind)
	if err != nil {
		return nil, err
	}

	primary, secondary := titleFields(kind)
	if err := setPair(session, primary, meta.TitleVI, meta.TitleEN); err != nil {
		return nil, err
	}
	if secondary != "" {
		if err := setPair(session, secondary, meta.SubtitleVI, meta.SubtitleEN); err != nil {
			return nil, err
		}
	}

	if _, ok := session.Schema().Field("description"); ok {
		description := strings.TrimSpace(string(body))
		if err := setPair(session, "description", description, meta.DescriptionEN); err != nil {
			return nil, err
		}
	}

	if kind == catalog.KindProject && len(meta.Tags) > 0 {
		if err := session.SetStringList("technologies", meta.Tags); err != nil {
			return nil, err
		}
	}
	if meta.StartDate != "" {
		_ = session.SetScalar("start_date", meta.StartDate)
	}
	if meta.EndDate != "" {
		_ = session.SetScalar("end_date", meta.EndDate)
	}
	if err := session.SetScalar("sort_order", meta.SortOrder); err != nil {
		return nil, err
	}

	active := true
	if meta.Active != nil {
		active = *meta.Active
	}
	if err := session.SetScalar("is_active", active); err != nil {
		return nil, err
	}

	return session, nil
}

func setPair(session *editor.Session, name, vi, en string) error {
	if err := session.SetLocalized(name, locale.Vietnamese, vi); err != nil {
		return err
	}
	return session.SetLocalized(name, locale.English, en)
}

// titleFields maps the generic frontmatter slots onto each kind's
// localized fields.
func titleFields(kind catalog.Kind) (primary, secondary string) {
	switch kind {
	case catalog.KindExperience:
		return "title", "company"
	case catalog.KindSkill:
		return "name", "category"
	case catalog.KindEducation:
		return "school", "degree"
	case catalog.KindProject:
		return "title", ""
	case catalog.KindCertification:
		return "name", "issuer"
	default:
		return "title", ""
	}
}
